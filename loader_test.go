package msdftext_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-theft-auto/msdftext"
)

const sampleJSON = `{
  "atlas": {"type": "msdf", "distanceRange": 4, "size": 32, "width": 256, "height": 128, "yOrigin": "bottom"},
  "metrics": {"emSize": 1, "lineHeight": 1.25, "ascender": 0.9, "descender": -0.25, "underlineY": -0.1, "underlineThickness": 0.05},
  "glyphs": [
    {"unicode": 32, "advance": 0.25},
    {"unicode": 65, "advance": 0.6,
     "planeBounds": {"left": -0.02, "bottom": -0.1, "right": 0.62, "top": 0.8},
     "atlasBounds": {"left": 10.5, "bottom": 20.5, "right": 30.5, "top": 50.5}},
    {"unicode": 86, "advance": 0.58,
     "planeBounds": {"left": 0, "bottom": -0.1, "right": 0.58, "top": 0.8},
     "atlasBounds": {"left": 40.5, "bottom": 20.5, "right": 60.5, "top": 50.5}}
  ],
  "kerning": [
    {"unicode1": 65, "unicode2": 86, "advance": -0.07}
  ]
}`

func TestLoad(t *testing.T) {
	font, err := msdftext.Load(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantAtlas := msdftext.AtlasMetric{FontSize: 32, Width: 256, Height: 128, DistanceRange: 4, Type: "msdf"}
	if diff := cmp.Diff(wantAtlas, font.Atlas()); diff != "" {
		t.Errorf("atlas (-want +got):\n%s", diff)
	}

	wantMetrics := msdftext.FontMetrics{EmSize: 1, LineHeight: 1.25, Ascender: 0.9, Descender: -0.25, UnderlineY: -0.1, UnderlineThickness: 0.05}
	if diff := cmp.Diff(wantMetrics, font.Metrics()); diff != "" {
		t.Errorf("metrics (-want +got):\n%s", diff)
	}

	if n := font.NumGlyphs(); n != 3 {
		t.Errorf("expected 3 glyphs, got %d", n)
	}

	space, ok := font.Glyph(' ')
	if !ok {
		t.Fatal("space glyph missing")
	}
	if space.Printable() || space.Advance != 0.25 {
		t.Errorf("space = %+v, want non-printing with advance 0.25", space)
	}

	a, ok := font.Glyph('A')
	if !ok || !a.Printable() {
		t.Fatalf("'A' = %+v, want printable", a)
	}
	wantGeom := msdftext.GlyphGeometry{
		AtlasBounds: msdftext.Bounds{Left: 10.5, Bottom: 20.5, Right: 30.5, Top: 50.5},
		PlaneBounds: msdftext.Bounds{Left: -0.02, Bottom: -0.1, Right: 0.62, Top: 0.8},
	}
	if diff := cmp.Diff(wantGeom, *a.Geometry); diff != "" {
		t.Errorf("'A' geometry (-want +got):\n%s", diff)
	}

	if k := font.Kerning('A', 'V'); k != -0.07 {
		t.Errorf("kerning A,V = %v, want -0.07", k)
	}
	if k := font.Kerning('V', 'A'); k != 0 {
		t.Errorf("unlisted pair V,A = %v, want 0", k)
	}
	if k := font.Kerning(msdftext.NoPrev, 'A'); k != 0 {
		t.Errorf("line start kerning = %v, want 0", k)
	}

	if lh := font.LineHeight(2); lh != 32*1.25*2 {
		t.Errorf("LineHeight(2) = %v, want %v", lh, 32*1.25*2)
	}
}

func TestLoadWithoutKerningOrMetrics(t *testing.T) {
	src := `{"atlas": {"size": 48, "width": 64, "height": 64},
	         "glyphs": [{"unicode": 120, "advance": 0.5}, {"unicode": 121, "advance": 0.5}]}`

	font, err := msdftext.Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n := font.NumKerningPairs(); n != 0 {
		t.Errorf("expected empty kerning table, got %d pairs", n)
	}
	if k := font.Kerning('x', 'y'); k != 0 {
		t.Errorf("kerning = %v, want 0", k)
	}
	if lh := font.LineHeight(1); lh != 48 {
		t.Errorf("LineHeight without metrics = %v, want one em (48)", lh)
	}
}

func TestLoadTopOrigin(t *testing.T) {
	src := `{"atlas": {"size": 32, "width": 100, "height": 100, "yOrigin": "top"},
	         "glyphs": [{"unicode": 65, "advance": 0.6,
	                     "planeBounds": {"left": 0, "bottom": 0.1, "right": 0.5, "top": -0.7},
	                     "atlasBounds": {"left": 10, "bottom": 40, "right": 20, "top": 10}}]}`

	font, err := msdftext.Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	a, _ := font.Glyph('A')
	want := msdftext.GlyphGeometry{
		AtlasBounds: msdftext.Bounds{Left: 10, Bottom: 60, Right: 20, Top: 90},
		PlaneBounds: msdftext.Bounds{Left: 0, Bottom: -0.1, Right: 0.5, Top: 0.7},
	}
	if diff := cmp.Diff(want, *a.Geometry); diff != "" {
		t.Errorf("converted geometry (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{"malformed", `{"atlas": `, ""},
		{"no atlas", `{"glyphs": []}`, "atlas"},
		{"no size", `{"atlas": {"width": 1, "height": 1}, "glyphs": []}`, "atlas.size"},
		{"no width", `{"atlas": {"size": 1, "height": 1}, "glyphs": []}`, "atlas.width"},
		{"no height", `{"atlas": {"size": 1, "width": 1}, "glyphs": []}`, "atlas.height"},
		{"bad origin", `{"atlas": {"size": 1, "width": 1, "height": 1, "yOrigin": "middle"}, "glyphs": []}`, "atlas.yOrigin"},
		{"zero width", `{"atlas": {"size": 1, "width": 0, "height": 1}, "glyphs": []}`, ""},
		{"no glyphs", `{"atlas": {"size": 1, "width": 1, "height": 1}}`, "glyphs"},
		{"no unicode", `{"atlas": {"size": 1, "width": 1, "height": 1}, "glyphs": [{"advance": 1}]}`, "glyphs[0].unicode"},
		{"no advance", `{"atlas": {"size": 1, "width": 1, "height": 1}, "glyphs": [{"unicode": 65}]}`, "glyphs[0].advance"},
		{"duplicate", `{"atlas": {"size": 1, "width": 1, "height": 1},
		  "glyphs": [{"unicode": 65, "advance": 1}, {"unicode": 65, "advance": 1}]}`, "glyphs[1].unicode"},
		{"atlas bounds only", `{"atlas": {"size": 1, "width": 1, "height": 1},
		  "glyphs": [{"unicode": 65, "advance": 1, "atlasBounds": {"left": 0, "bottom": 0, "right": 1, "top": 1}}]}`, "glyphs[0]"},
		{"partial bounds", `{"atlas": {"size": 1, "width": 1, "height": 1},
		  "glyphs": [{"unicode": 65, "advance": 1,
		    "atlasBounds": {"left": 0, "bottom": 0, "right": 1},
		    "planeBounds": {"left": 0, "bottom": 0, "right": 1, "top": 1}}]}`, "glyphs[0].atlasBounds"},
		{"kerning missing advance", `{"atlas": {"size": 1, "width": 1, "height": 1},
		  "glyphs": [{"unicode": 65, "advance": 1}], "kerning": [{"unicode1": 65, "unicode2": 65}]}`, "kerning[0].advance"},
		{"kerning unknown glyph", `{"atlas": {"size": 1, "width": 1, "height": 1},
		  "glyphs": [{"unicode": 65, "advance": 1}], "kerning": [{"unicode1": 65, "unicode2": 66, "advance": 0.1}]}`, ""},
		{"trailing data", `{"atlas": {"size": 1, "width": 1, "height": 1}, "glyphs": []} {"atlas": {}}`, ""},
		{"trailing garbage", `{"atlas": {"size": 1, "width": 1, "height": 1}, "glyphs": []} x`, ""},
		{"negative unicode", `{"atlas": {"size": 1, "width": 1, "height": 1}, "glyphs": [{"unicode": -1, "advance": 1}]}`, "glyphs[0].unicode"},
		{"surrogate unicode", `{"atlas": {"size": 1, "width": 1, "height": 1}, "glyphs": [{"unicode": 55296, "advance": 1}]}`, "glyphs[0].unicode"},
		{"unicode out of range", `{"atlas": {"size": 1, "width": 1, "height": 1}, "glyphs": [{"unicode": 1114112, "advance": 1}]}`, "glyphs[0].unicode"},
		{"kerning negative unicode1", `{"atlas": {"size": 1, "width": 1, "height": 1},
		  "glyphs": [{"unicode": 65, "advance": 1}], "kerning": [{"unicode1": -1, "unicode2": 65, "advance": 0.1}]}`, "kerning[0].unicode1"},
		{"kerning surrogate unicode2", `{"atlas": {"size": 1, "width": 1, "height": 1},
		  "glyphs": [{"unicode": 65, "advance": 1}], "kerning": [{"unicode1": 65, "unicode2": 57343, "advance": 0.1}]}`, "kerning[0].unicode2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			font, err := msdftext.Load(strings.NewReader(tt.src))
			if font != nil {
				t.Error("expected nil font")
			}
			var pe *msdftext.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if pe.Field != tt.field {
				t.Errorf("field = %q, want %q (%v)", pe.Field, tt.field, err)
			}
		})
	}
}

func TestLoadErrorsWrapFontValidation(t *testing.T) {
	src := `{"atlas": {"size": 1, "width": 1, "height": 1},
	         "glyphs": [{"unicode": 65, "advance": 1}],
	         "kerning": [{"unicode1": 66, "unicode2": 65, "advance": 0.1}]}`

	_, err := msdftext.Load(strings.NewReader(src))
	if !errors.Is(err, msdftext.ErrUnknownKerning) {
		t.Errorf("expected ErrUnknownKerning, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	font, err := msdftext.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !font.HasGlyph('V') {
		t.Error("expected glyph 'V'")
	}

	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = msdftext.LoadFile(path)
	var pe *msdftext.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Path != path {
		t.Errorf("error path = %q, want %q", pe.Path, path)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := msdftext.LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
