package msdftext

// Face is the interface for a single font that can lay out text.
// It provides methods for measuring text and generating rendering quads.
//
// *Font implements Face. Text helpers such as TruncateText accept a Face
// so they can be driven by other implementations, e.g. mock fonts in tests.
type Face interface {
	// HasGlyph returns true if the font has a glyph for the given rune.
	// This is useful for checking character support before layout.
	HasGlyph(r rune) bool

	// MeasureText returns the pen advance (X) and line height (Y) of the
	// given text at the specified scale.
	MeasureText(text string, scale float32) (Vec2, error)

	// GlyphQuads generates quads for rendering the given text.
	// Each quad contains screen coordinates and texture coordinates.
	GlyphQuads(text string, x, y, scale float32) ([]Quad, error)

	// LineHeight returns the line height at the specified scale.
	LineHeight(scale float32) float32
}

var _ Face = (*Font)(nil)
