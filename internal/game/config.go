package game

// Chunking: the rendered track is uploaded as ChunkSize x ChunkSize textures.
const ChunkSize = 256

// Font atlas layout (built from basicfont 7x13: printable ASCII, 32 cols x 3 rows).
const (
	FontFirst  = 32
	FontLast   = 126
	FontCellW  = 7
	FontCellH  = 13
	FontCols   = 32
	FontRows   = 3
	FontAtlasW = FontCellW * FontCols // 224
	FontAtlasH = FontCellH * FontRows // 39
)

// Skid marks.
const (
	MaxSkidMarks    = 4096
	MaxSpriteRender = MaxSkidMarks
	SkidLifetime    = 6.0   // seconds until a mark has faded
	SkidMinSpeed    = 120.0 // px/s
	SkidSize        = 4.0
	SkidSpacing     = 3.0 // px between marks from one wheel
)

// Camera shake when the car hits the screen edge.
const (
	BumpShakeIntensity = 5.0
	BumpShakeDuration  = 0.25
)

// Finish line flash after a lap.
const FinishFlashTime = 0.6
