package capture

import "github.com/kataras/meshgrab/pkg/webgl"

// Vertex is a single captured position.
type Vertex struct {
	X, Y, Z float32
}

// Mesh is the geometry captured from one triangle draw call. It owns its
// vertices; nothing in it refers back to GPU state.
type Mesh struct {
	Vertices []Vertex
}

// Len returns the number of vertices.
func (m Mesh) Len() int {
	return len(m.Vertices)
}

// Triangles returns the number of complete triangles. Trailing vertices that
// do not form a full triangle are not counted.
func (m Mesh) Triangles() int {
	return len(m.Vertices) / 3
}

// AttributeBinding describes a vertex attribute slot that looks like a raw
// position stream.
type AttributeBinding struct {
	Buffer     webgl.Buffer
	Size       int
	Type       webgl.Enum
	Normalized bool
	Stride     int
	Offset     int
}
