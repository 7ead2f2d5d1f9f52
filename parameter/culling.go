package parameter

import "math"

// Camera frustum
const (
	CameraNear = 0.05
	CameraFar  = 80.0
	// CameraFovY is the default vertical field of view in radians (70 degrees)
	CameraFovY = 70 * math.Pi / 180
)

// Visibility culling grid
const (
	// CullMinCellSize is the smallest allowed grid cell
	CullMinCellSize = 0.5

	// SceneGridMinCell and SceneGridCellFactor size the scene grid from CellSize
	SceneGridMinCell    = 1.0
	SceneGridCellFactor = 1.5

	// CullMaxSteps bounds BFS radius in grid cells
	CullMaxSteps = 48

	// CullMaxQueue stops BFS once this many cells were queued
	CullMaxQueue = 512
)
