package objexport

import (
	"github.com/chewxy/math32"

	"github.com/kataras/meshgrab/pkg/capture"
)

// Summary describes an export for display.
type Summary struct {
	Meshes   int
	Vertices int
	Faces    int

	// Min and Max bound all vertices. Both are zero when there are none.
	Min, Max capture.Vertex
}

// Summarize counts meshes, vertices and faces and computes the bounding box.
func Summarize(meshes []capture.Mesh) Summary {
	s := Summary{Meshes: len(meshes)}
	lo := capture.Vertex{X: math32.Inf(1), Y: math32.Inf(1), Z: math32.Inf(1)}
	hi := capture.Vertex{X: math32.Inf(-1), Y: math32.Inf(-1), Z: math32.Inf(-1)}

	for _, m := range meshes {
		s.Vertices += m.Len()
		s.Faces += m.Triangles()
		for _, v := range m.Vertices {
			lo.X, hi.X = math32.Min(lo.X, v.X), math32.Max(hi.X, v.X)
			lo.Y, hi.Y = math32.Min(lo.Y, v.Y), math32.Max(hi.Y, v.Y)
			lo.Z, hi.Z = math32.Min(lo.Z, v.Z), math32.Max(hi.Z, v.Z)
		}
	}

	if s.Vertices > 0 {
		s.Min, s.Max = lo, hi
	}
	return s
}

// Size returns the extent of the bounding box.
func (s Summary) Size() capture.Vertex {
	return capture.Vertex{X: s.Max.X - s.Min.X, Y: s.Max.Y - s.Min.Y, Z: s.Max.Z - s.Min.Z}
}
