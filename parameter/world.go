package parameter

// Maze geometry
const (
	// CellSize is the edge length of one grid cell in world units
	CellSize = 1.2

	// WallHalfHeight is the vertical half extent of every wall box
	// Wall centers sit at the same height so walls span [0, 2*WallHalfHeight]
	WallHalfHeight = 1.2

	// EyeHeight is the Y of start/exit positions and the default listener height
	EyeHeight = 1.2

	// FloorY and FloorHalfY describe the floor slab
	FloorY     = -0.05
	FloorHalfY = 0.08

	// CeilingY is the center height of the ceiling slab
	CeilingY = 2.45

	// FloorMargin extends floor and ceiling past the wall bounds
	FloorMargin = 0.5
)

// Exit door proportions relative to CellSize
const (
	DoorWidthFactor = 0.7
	DoorDepthFactor = 0.16
	DoorHeight      = 2.1
	// DoorInset keeps the door face off the neighbouring wall
	DoorInset = 0.02
)

// Geometric tolerances
const (
	// PlaneEpsilon is the minimum distance for a reflection plane to count
	PlaneEpsilon = 1e-4

	// SegmentEpsilon trims segment endpoints in occlusion tests
	SegmentEpsilon = 1e-4

	// ParallelEpsilon treats a segment axis as parallel to the slab
	ParallelEpsilon = 1e-8
)

// Occlusion attenuation
const (
	// OcclusionGainStep is the gain multiplier per blocking wall
	OcclusionGainStep = 0.5

	// OcclusionMaxHits caps the number of walls that attenuate gain
	OcclusionMaxHits = 3

	// OcclusionDefaultAbsorb is used for walls with no material
	OcclusionDefaultAbsorb = 0.4

	// OcclusionMinLowpass is the floor of the low-pass multiplier
	OcclusionMinLowpass = 0.25

	// DefaultReflect is used for reflection planes of walls with no material
	DefaultReflect = 0.5
)
