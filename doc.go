/*
Package msdftext lays out text from a multi-channel signed distance field
(MSDF) font atlas into textured quads ready for GPU upload.

# Overview

An atlas is described by a JSON file in the layout written by msdf-atlas-gen:
the atlas texture size and the em size it was baked at, one entry per glyph
(advance, plus atlas and plane bounds for glyphs that have ink) and a list
of kerning pairs. Load parses it into an immutable *Font. Layout walks a
string once and emits six vertices (two triangles) per visible glyph.

# Quick Start

	font, err := msdftext.LoadFile("font.json")
	if err != nil {
	    return err
	}
	verts, err := msdftext.Layout("Hello", 10, 900, 0.8, font)
	if err != nil {
	    return err // *msdftext.MissingGlyphError for unsupported characters
	}

	buf := msdftext.AcquireVertexBuffer()
	defer msdftext.ReleaseVertexBuffer(buf)
	buf.Add(verts...)
	renderer.Upload(buf.Floats()) // backend/opengl

# Units

Plane bounds, advances and kerning are in em units. They are multiplied by
the atlas font size and the caller's scale to get pixels:

	x0 = penX + fontSize * planeBounds.Left * scale
	penX += fontSize * (advance + kerning(prev, c)) * scale

Atlas bounds are in atlas pixels with the origin at the bottom and are
divided by the atlas size to get texture coordinates. Metadata written with
yOrigin "top" is converted on load.

# Vertex layout

Each Vertex is eight float32 values: position (x, y, 0), RGB tint and
texture coordinate (u, v). The corners of a glyph are emitted in the order
(x1,y1) (x1,y0) (x0,y1) (x1,y0) (x0,y0) (x0,y1), where (x0,y0) is the
bottom-left corner. Draw them as a non-indexed triangle list.

# Concurrency

A *Font is never modified after loading. Layout, GlyphQuads and MeasureText
allocate their own output and may run concurrently on the same Font.
*/
package msdftext
