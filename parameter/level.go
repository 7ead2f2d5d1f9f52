package parameter

// Maze generator defaults
const (
	MazeDefaultCols = 21
	MazeDefaultRows = 21
	MazeMinDim      = 5

	// MazeConnectorAttemptFactor bounds connector attempts per requested connector
	MazeConnectorAttemptFactor = 12
)
