package msdftext

// Vec2 represents a 2D vector for positions and sizes.
type Vec2 struct {
	X, Y float32
}

// Bounds is an axis-aligned rectangle stored as edges.
// Y grows upward: Bottom is the smaller coordinate.
type Bounds struct {
	Left, Bottom, Right, Top float32
}

// Width returns Right - Left.
func (b Bounds) Width() float32 {
	return b.Right - b.Left
}

// Height returns Top - Bottom.
func (b Bounds) Height() float32 {
	return b.Top - b.Bottom
}

// Vertex is one emitted corner of a glyph quad.
// Memory layout is eight tightly packed float32 values, matching the
// vertex attribute layout of the OpenGL backend.
type Vertex struct {
	Pos      [3]float32 // Position (x, y, z); z is always 0
	Color    [3]float32 // RGB tint
	TexCoord [2]float32 // Texture coordinates (u, v)
}

// AttributesPerVertex is the number of float32 values per Vertex.
const AttributesPerVertex = 8

// Color constants (RGBA packed as 0xAABBGGRR for OpenGL compatibility)
const (
	ColorWhite   uint32 = 0xFFFFFFFF
	ColorBlack   uint32 = 0xFF000000
	ColorRed     uint32 = 0xFF0000FF
	ColorGreen   uint32 = 0xFF00FF00
	ColorBlue    uint32 = 0xFFFF0000
	ColorYellow  uint32 = 0xFF00FFFF
	ColorCyan    uint32 = 0xFFFFFF00
	ColorMagenta uint32 = 0xFFFF00FF
	ColorGray    uint32 = 0xFF808080
)

// RGBA creates a packed color from individual components (0-255).
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// RGBAf creates a packed color from float components (0.0-1.0).
func RGBAf(r, g, b, a float32) uint32 {
	return RGBA(
		uint8(clampf(r, 0, 1)*255),
		uint8(clampf(g, 0, 1)*255),
		uint8(clampf(b, 0, 1)*255),
		uint8(clampf(a, 0, 1)*255),
	)
}

// UnpackRGBA extracts RGBA components from a packed color.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// tint converts a packed color to the float RGB triple stored in vertices.
// Alpha is dropped; the shader owns coverage.
func tint(c uint32) [3]float32 {
	r, g, b, _ := UnpackRGBA(c)
	return [3]float32{float32(r) / 255, float32(g) / 255, float32(b) / 255}
}

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
