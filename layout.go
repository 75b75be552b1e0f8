package msdftext

import "fmt"

// MissingGlyphError is returned when the text contains a character that has
// no entry in the glyph table. The whole layout call fails.
type MissingGlyphError struct {
	Char  rune
	Index int // Rune index within the text
}

func (e *MissingGlyphError) Error() string {
	return fmt.Sprintf("msdftext: no glyph for %q (%U) at index %d", e.Char, e.Char, e.Index)
}

// Quad is the screen and texture rectangle of one printing glyph.
// (X0, Y0) is the bottom-left corner and (X1, Y1) the top-right.
type Quad struct {
	X0, Y0 float32
	X1, Y1 float32

	U0, V0 float32
	U1, V1 float32
}

// LayoutOption configures a Layout call.
type LayoutOption func(*layoutConfig)

type layoutConfig struct {
	color [3]float32
}

// WithColor sets the per-vertex tint. The default is white.
func WithColor(c uint32) LayoutOption {
	return func(cfg *layoutConfig) { cfg.color = tint(c) }
}

// Layout converts text into vertices for a non-indexed triangle list, six
// per printing glyph, in text order.
//
// The pen starts at (x, y). Each character c is drawn at the current pen
// position, then the pen moves right by
// FontSize * (advance(c) + kerning(prev, c)) * scale, where prev is the
// character before c (NoPrev for the first). The kerning of a pair is
// therefore added after the second character of the pair has been drawn:
// in "AV" the quad of 'V' sits at the unkerned advance of 'A', and
// kerning(A, V) shifts whatever follows. y is never
// changed; newlines are not interpreted. Empty text yields no vertices.
// Zero or negative scale is not an error and produces collapsed or mirrored
// quads. A character missing from the font fails the call with a
// *MissingGlyphError.
func Layout(text string, x, y, scale float32, font *Font, opts ...LayoutOption) ([]Vertex, error) {
	cfg := layoutConfig{color: tint(ColorWhite)}
	for _, opt := range opts {
		opt(&cfg)
	}

	quads, _, err := font.appendQuads(nil, text, x, y, scale)
	if err != nil || len(quads) == 0 {
		return nil, err
	}

	verts := make([]Vertex, 0, 6*len(quads))
	for _, q := range quads {
		verts = appendQuadVertices(verts, q, cfg.color)
	}
	return verts, nil
}

// appendQuadVertices emits the two triangles of q:
// (x1,y1) (x1,y0) (x0,y1) and (x1,y0) (x0,y0) (x0,y1).
func appendQuadVertices(dst []Vertex, q Quad, color [3]float32) []Vertex {
	return append(dst,
		Vertex{Pos: [3]float32{q.X1, q.Y1, 0}, Color: color, TexCoord: [2]float32{q.U1, q.V1}},
		Vertex{Pos: [3]float32{q.X1, q.Y0, 0}, Color: color, TexCoord: [2]float32{q.U1, q.V0}},
		Vertex{Pos: [3]float32{q.X0, q.Y1, 0}, Color: color, TexCoord: [2]float32{q.U0, q.V1}},

		Vertex{Pos: [3]float32{q.X1, q.Y0, 0}, Color: color, TexCoord: [2]float32{q.U1, q.V0}},
		Vertex{Pos: [3]float32{q.X0, q.Y0, 0}, Color: color, TexCoord: [2]float32{q.U0, q.V0}},
		Vertex{Pos: [3]float32{q.X0, q.Y1, 0}, Color: color, TexCoord: [2]float32{q.U0, q.V1}},
	)
}

// GlyphQuads generates one quad per printing glyph of text.
// It follows the same pen rules as Layout.
func (f *Font) GlyphQuads(text string, x, y, scale float32) ([]Quad, error) {
	quads, _, err := f.appendQuads(nil, text, x, y, scale)
	if err != nil {
		return nil, err
	}
	return quads, nil
}

// MeasureText returns the pen advance of text (X) and the line height (Y)
// at the specified scale.
func (f *Font) MeasureText(text string, scale float32) (Vec2, error) {
	_, pen, err := f.appendQuads(nil, text, 0, 0, scale)
	if err != nil {
		return Vec2{}, err
	}
	return Vec2{X: pen, Y: f.LineHeight(scale)}, nil
}

// appendQuads walks text once, appending quads to dst, and returns the
// final pen x.
func (f *Font) appendQuads(dst []Quad, text string, x, y, scale float32) ([]Quad, float32, error) {
	size := f.atlas.FontSize
	aw, ah := f.atlas.Width, f.atlas.Height

	idx := 0
	prev := NoPrev
	for _, c := range text {
		g, ok := f.glyphs[c]
		if !ok {
			if verbose() {
				logger.Debug("missing glyph", "char", string(c), "code", fmt.Sprintf("%U", c), "index", idx)
			}
			return nil, x, &MissingGlyphError{Char: c, Index: idx}
		}

		if geom := g.Geometry; geom != nil {
			ab, pb := geom.AtlasBounds, geom.PlaneBounds
			dst = append(dst, Quad{
				X0: x + size*pb.Left*scale,
				Y0: y + size*pb.Bottom*scale,
				X1: x + size*pb.Right*scale,
				Y1: y + size*pb.Top*scale,

				U0: ab.Left / aw,
				V0: ab.Bottom / ah,
				U1: (ab.Left + ab.Width()) / aw,
				V1: (ab.Bottom + ab.Height()) / ah,
			})
		}

		x += size * (g.Advance + f.kerning.Lookup(prev, c)) * scale
		prev = c
		idx++
	}
	return dst, x, nil
}
