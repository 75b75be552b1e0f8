package msdftext

import (
	"errors"
	"fmt"
	"maps"
)

// NoPrev is the "no previous character" sentinel used for kerning lookups
// at the start of a line. It kerns to zero against everything.
const NoPrev rune = -1

// AtlasMetric describes the atlas texture and the em size it was baked at.
type AtlasMetric struct {
	// FontSize is the reference em size in atlas pixels. Plane bounds and
	// advances are in em units and are multiplied by FontSize.
	FontSize float32

	// Width and Height are the atlas texture dimensions in pixels.
	Width, Height float32

	// DistanceRange is the distance field range in atlas pixels.
	// Zero when the metadata does not state it.
	DistanceRange float32

	// Type is the atlas type as reported by the generator ("msdf", "mtsdf", ...).
	Type string
}

// FontMetrics holds the optional vertical metrics block, in em units.
type FontMetrics struct {
	EmSize             float32
	LineHeight         float32
	Ascender           float32
	Descender          float32
	UnderlineY         float32
	UnderlineThickness float32
}

// GlyphGeometry is the visible part of a glyph.
type GlyphGeometry struct {
	AtlasBounds Bounds // Atlas pixels, bottom-origin
	PlaneBounds Bounds // Em units, relative to the pen position on the baseline
}

// GlyphMetric is one entry of the glyph table.
type GlyphMetric struct {
	Char    rune
	Advance float32 // Em units

	// Geometry is nil for glyphs without ink, such as space.
	Geometry *GlyphGeometry
}

// Printable reports whether the glyph emits a quad.
func (g GlyphMetric) Printable() bool {
	return g.Geometry != nil
}

// KerningPair is an ordered character pair.
type KerningPair struct {
	Prev, Next rune
}

// KerningTable maps ordered pairs to an additional advance in em units.
// Pairs absent from the table kern to zero.
type KerningTable map[KerningPair]float32

// Lookup returns the kerning adjustment between prev and next.
func (t KerningTable) Lookup(prev, next rune) float32 {
	if prev == NoPrev {
		return 0
	}
	return t[KerningPair{Prev: prev, Next: next}]
}

// Font bundles the atlas metric, glyph table and kerning table of one
// loaded atlas. A Font is immutable after NewFont returns and may be used
// from any number of goroutines.
type Font struct {
	atlas   AtlasMetric
	metrics FontMetrics
	glyphs  map[rune]GlyphMetric
	kerning KerningTable
}

// Font validation errors.
var (
	ErrInvalidAtlas   = errors.New("msdftext: font size and atlas dimensions must be positive")
	ErrUnknownKerning = errors.New("msdftext: kerning pair references a character with no glyph")
)

// NewFont validates and copies the given tables into a Font.
// Glyph geometry is copied as well, so later changes by the caller are not observed.
func NewFont(atlas AtlasMetric, metrics FontMetrics, glyphs map[rune]GlyphMetric, kerning KerningTable) (*Font, error) {
	if !(atlas.FontSize > 0) || !(atlas.Width > 0) || !(atlas.Height > 0) {
		return nil, ErrInvalidAtlas
	}

	f := &Font{
		atlas:   atlas,
		metrics: metrics,
		glyphs:  make(map[rune]GlyphMetric, len(glyphs)),
		kerning: make(KerningTable, len(kerning)),
	}
	for r, g := range glyphs {
		g.Char = r
		if g.Geometry != nil {
			geom := *g.Geometry
			g.Geometry = &geom
		}
		f.glyphs[r] = g
	}
	for pair := range kerning {
		if _, ok := f.glyphs[pair.Prev]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKerning, pair.Prev)
		}
		if _, ok := f.glyphs[pair.Next]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKerning, pair.Next)
		}
	}
	maps.Copy(f.kerning, kerning)
	return f, nil
}

// Atlas returns the atlas metric.
func (f *Font) Atlas() AtlasMetric {
	return f.atlas
}

// Metrics returns the vertical metrics. All fields are zero when the
// metadata had no metrics block.
func (f *Font) Metrics() FontMetrics {
	return f.metrics
}

// Glyph returns the glyph for r.
// The returned Geometry must not be modified.
func (f *Font) Glyph(r rune) (GlyphMetric, bool) {
	g, ok := f.glyphs[r]
	return g, ok
}

// HasGlyph returns true if the font has a glyph for the given rune.
func (f *Font) HasGlyph(r rune) bool {
	_, ok := f.glyphs[r]
	return ok
}

// NumGlyphs returns the size of the glyph table.
func (f *Font) NumGlyphs() int {
	return len(f.glyphs)
}

// Kerning returns the kerning adjustment between prev and next in em units.
func (f *Font) Kerning(prev, next rune) float32 {
	return f.kerning.Lookup(prev, next)
}

// NumKerningPairs returns the size of the kerning table.
func (f *Font) NumKerningPairs() int {
	return len(f.kerning)
}

// LineHeight returns the line height at the specified scale.
// Falls back to one em when the metadata has no line height.
func (f *Font) LineHeight(scale float32) float32 {
	lh := f.metrics.LineHeight
	if lh <= 0 {
		lh = 1
	}
	return f.atlas.FontSize * lh * scale
}
