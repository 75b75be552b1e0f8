package msdftext

import "sync"

// vertexBufferPool provides reuse of VertexBuffer storage.
// Text that is laid out again every frame then avoids reallocating.
var vertexBufferPool = sync.Pool{
	New: func() any {
		return &VertexBuffer{
			data: make([]float32, 0, 6*AttributesPerVertex*64),
		}
	},
}

// AcquireVertexBuffer gets an empty VertexBuffer from the pool.
// Call ReleaseVertexBuffer when done to return it.
func AcquireVertexBuffer() *VertexBuffer {
	vb := vertexBufferPool.Get().(*VertexBuffer)
	vb.Clear()
	return vb
}

// ReleaseVertexBuffer returns a VertexBuffer to the pool for reuse.
func ReleaseVertexBuffer(vb *VertexBuffer) {
	if vb != nil {
		vertexBufferPool.Put(vb)
	}
}

// VertexBuffer accumulates vertices as a flat float32 slice in upload order:
// position (3), color (3), texture coordinate (2).
type VertexBuffer struct {
	data []float32
}

// Clear resets the buffer. Retains allocated capacity.
func (vb *VertexBuffer) Clear() {
	vb.data = vb.data[:0]
}

// Add appends vertices.
func (vb *VertexBuffer) Add(verts ...Vertex) {
	vb.data = AppendFloats(vb.data, verts)
}

// Floats returns the packed attributes. The slice is only valid until the
// next Add, Clear or release.
func (vb *VertexBuffer) Floats() []float32 {
	return vb.data
}

// VertexCount returns the number of vertices for the draw call.
func (vb *VertexBuffer) VertexCount() int {
	return len(vb.data) / AttributesPerVertex
}

// AppendFloats appends the attributes of verts to dst.
func AppendFloats(dst []float32, verts []Vertex) []float32 {
	dst = growFloats(dst, len(verts)*AttributesPerVertex)
	for _, v := range verts {
		dst = append(dst,
			v.Pos[0], v.Pos[1], v.Pos[2],
			v.Color[0], v.Color[1], v.Color[2],
			v.TexCoord[0], v.TexCoord[1],
		)
	}
	return dst
}

func growFloats(s []float32, n int) []float32 {
	if cap(s)-len(s) >= n {
		return s
	}
	grown := make([]float32, len(s), len(s)+n)
	copy(grown, s)
	return grown
}
