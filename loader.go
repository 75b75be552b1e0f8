package msdftext

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// ParseError reports malformed or incomplete atlas metadata.
type ParseError struct {
	Path  string // File name, empty when reading from a stream
	Field string // JSON location of the problem, e.g. "glyphs[3].advance"
	Err   error
}

func (e *ParseError) Error() string {
	msg := "msdftext: parse"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Field != "" {
		msg += ": " + e.Field
	}
	return msg + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	errMissing    = errors.New("required field missing")
	errIncomplete = errors.New("atlasBounds and planeBounds must appear together")
	errDuplicate  = errors.New("duplicate glyph")
	errTrailing   = errors.New("trailing data after metadata")
)

// JSON shapes as written by msdf-atlas-gen. Pointers distinguish absent
// fields from zero values.

type jsonBounds struct {
	Left   *float32 `json:"left"`
	Bottom *float32 `json:"bottom"`
	Right  *float32 `json:"right"`
	Top    *float32 `json:"top"`
}

type jsonAtlas struct {
	Type          string   `json:"type"`
	DistanceRange float32  `json:"distanceRange"`
	Size          *float32 `json:"size"`
	Width         *float32 `json:"width"`
	Height        *float32 `json:"height"`
	YOrigin       string   `json:"yOrigin"`
}

type jsonMetrics struct {
	EmSize             float32 `json:"emSize"`
	LineHeight         float32 `json:"lineHeight"`
	Ascender           float32 `json:"ascender"`
	Descender          float32 `json:"descender"`
	UnderlineY         float32 `json:"underlineY"`
	UnderlineThickness float32 `json:"underlineThickness"`
}

type jsonGlyph struct {
	Unicode     *int32      `json:"unicode"`
	Advance     *float32    `json:"advance"`
	AtlasBounds *jsonBounds `json:"atlasBounds"`
	PlaneBounds *jsonBounds `json:"planeBounds"`
}

type jsonKerning struct {
	Unicode1 *int32   `json:"unicode1"`
	Unicode2 *int32   `json:"unicode2"`
	Advance  *float32 `json:"advance"`
}

type jsonFont struct {
	Atlas   *jsonAtlas    `json:"atlas"`
	Metrics jsonMetrics   `json:"metrics"`
	Glyphs  []jsonGlyph   `json:"glyphs"`
	Kerning []jsonKerning `json:"kerning"`
}

// LoadFile reads atlas metadata from a JSON file.
func LoadFile(path string) (*Font, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return load(f, path)
}

// Load reads atlas metadata in the msdf-atlas-gen JSON layout.
// Glyphs may omit atlasBounds and planeBounds (whitespace); kerning pairs
// not listed kern to zero. Any problem is reported as a *ParseError.
func Load(r io.Reader) (*Font, error) {
	return load(r, "")
}

func load(r io.Reader, path string) (*Font, error) {
	fail := func(field string, err error) (*Font, error) {
		return nil, &ParseError{Path: path, Field: field, Err: err}
	}

	var raw jsonFont
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return fail("", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fail("", errTrailing)
	}

	if raw.Atlas == nil {
		return fail("atlas", errMissing)
	}
	switch {
	case raw.Atlas.Size == nil:
		return fail("atlas.size", errMissing)
	case raw.Atlas.Width == nil:
		return fail("atlas.width", errMissing)
	case raw.Atlas.Height == nil:
		return fail("atlas.height", errMissing)
	}
	atlas := AtlasMetric{
		FontSize:      *raw.Atlas.Size,
		Width:         *raw.Atlas.Width,
		Height:        *raw.Atlas.Height,
		DistanceRange: raw.Atlas.DistanceRange,
		Type:          raw.Atlas.Type,
	}
	topOrigin := false
	switch raw.Atlas.YOrigin {
	case "", "bottom":
	case "top":
		topOrigin = true
	default:
		return fail("atlas.yOrigin", fmt.Errorf("unknown origin %q", raw.Atlas.YOrigin))
	}

	if raw.Glyphs == nil {
		return fail("glyphs", errMissing)
	}
	glyphs := make(map[rune]GlyphMetric, len(raw.Glyphs))
	for i, jg := range raw.Glyphs {
		field := fmt.Sprintf("glyphs[%d]", i)
		if jg.Unicode == nil {
			return fail(field+".unicode", errMissing)
		}
		if jg.Advance == nil {
			return fail(field+".advance", errMissing)
		}
		r := rune(*jg.Unicode)
		if !utf8.ValidRune(r) {
			return fail(field+".unicode", invalidCodePoint(r))
		}
		if _, dup := glyphs[r]; dup {
			return fail(field+".unicode", fmt.Errorf("%w %q", errDuplicate, r))
		}

		g := GlyphMetric{Char: r, Advance: *jg.Advance}
		switch {
		case jg.AtlasBounds == nil && jg.PlaneBounds == nil:
		case jg.AtlasBounds == nil || jg.PlaneBounds == nil:
			return fail(field, errIncomplete)
		default:
			ab, err := jg.AtlasBounds.bounds()
			if err != nil {
				return fail(field+".atlasBounds", err)
			}
			pb, err := jg.PlaneBounds.bounds()
			if err != nil {
				return fail(field+".planeBounds", err)
			}
			if topOrigin {
				ab = Bounds{Left: ab.Left, Bottom: atlas.Height - ab.Bottom, Right: ab.Right, Top: atlas.Height - ab.Top}
				pb = Bounds{Left: pb.Left, Bottom: -pb.Bottom, Right: pb.Right, Top: -pb.Top}
			}
			g.Geometry = &GlyphGeometry{AtlasBounds: ab, PlaneBounds: pb}
		}
		glyphs[r] = g
	}

	kerning := make(KerningTable, len(raw.Kerning))
	for i, jk := range raw.Kerning {
		field := fmt.Sprintf("kerning[%d]", i)
		switch {
		case jk.Unicode1 == nil:
			return fail(field+".unicode1", errMissing)
		case jk.Unicode2 == nil:
			return fail(field+".unicode2", errMissing)
		case jk.Advance == nil:
			return fail(field+".advance", errMissing)
		}
		prev, next := rune(*jk.Unicode1), rune(*jk.Unicode2)
		if !utf8.ValidRune(prev) {
			return fail(field+".unicode1", invalidCodePoint(prev))
		}
		if !utf8.ValidRune(next) {
			return fail(field+".unicode2", invalidCodePoint(next))
		}
		kerning[KerningPair{Prev: prev, Next: next}] = *jk.Advance
	}

	metrics := FontMetrics(raw.Metrics)
	font, err := NewFont(atlas, metrics, glyphs, kerning)
	if err != nil {
		return fail("", err)
	}

	logger.Debug("font loaded",
		"path", path,
		"type", atlas.Type,
		"size", atlas.FontSize,
		"atlas", fmt.Sprintf("%gx%g", atlas.Width, atlas.Height),
		"glyphs", font.NumGlyphs(),
		"kerning", font.NumKerningPairs())
	return font, nil
}

func (b *jsonBounds) bounds() (Bounds, error) {
	if b.Left == nil || b.Bottom == nil || b.Right == nil || b.Top == nil {
		return Bounds{}, errMissing
	}
	return Bounds{Left: *b.Left, Bottom: *b.Bottom, Right: *b.Right, Top: *b.Top}, nil
}

// invalidCodePoint reports a code point that is negative (NoPrev among
// them), a surrogate or beyond U+10FFFF.
func invalidCodePoint(r rune) error {
	return fmt.Errorf("invalid code point %d", r)
}
