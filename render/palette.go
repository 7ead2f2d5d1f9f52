package render

// Palette
var (
	ColorBackground = RGB{16, 17, 26}
	ColorText       = RGB{192, 202, 245}
	ColorTextDim    = RGB{86, 95, 137}
	ColorWarning    = RGB{224, 175, 104}

	ColorFloor     = RGB{20, 22, 32}
	ColorFloorSeen = RGB{30, 33, 48}
	ColorFloorLit  = RGB{52, 58, 90}
	ColorWall      = RGB{24, 26, 38}
	ColorWallSeen  = RGB{44, 48, 70}
	ColorWallLit   = RGB{122, 162, 247}

	ColorPlayer     = RGB{255, 255, 255}
	ColorKey        = RGB{255, 199, 119}
	ColorBeaconDark = RGB{115, 122, 162}
	ColorBeaconLit  = RGB{158, 206, 106}
	ColorDoor       = RGB{247, 118, 142}
	ColorDoorOpen   = RGB{115, 218, 202}
)
