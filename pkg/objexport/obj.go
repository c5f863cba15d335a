// Package objexport turns captured meshes into a Wavefront OBJ document and
// hands it to whatever persists the file.
package objexport

import (
	"io"
	"strconv"
	"strings"

	"github.com/kataras/meshgrab/pkg/capture"
)

// MIMEType is the content type of the produced artifact.
const MIMEType = "text/plain"

// ToOBJ renders meshes as one OBJ document. Each mesh becomes a group named
// mesh_<index> holding its vertices and one face per consecutive vertex
// triple; face indices are 1-based and global across groups. Meshes without
// vertices produce no group but still consume their index.
func ToOBJ(meshes []capture.Mesh) string {
	var sb strings.Builder

	offset := 0
	for i, m := range meshes {
		if len(m.Vertices) == 0 {
			continue
		}

		sb.WriteString("o mesh_")
		sb.WriteString(strconv.Itoa(i))
		sb.WriteByte('\n')

		for _, v := range m.Vertices {
			sb.WriteString("v ")
			sb.WriteString(formatCoord(v.X))
			sb.WriteByte(' ')
			sb.WriteString(formatCoord(v.Y))
			sb.WriteByte(' ')
			sb.WriteString(formatCoord(v.Z))
			sb.WriteByte('\n')
		}

		// Trailing vertices that do not close a triangle get no face.
		for t := 0; t+3 <= len(m.Vertices); t += 3 {
			a := offset + t + 1
			sb.WriteString("f ")
			sb.WriteString(strconv.Itoa(a))
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(a + 1))
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(a + 2))
			sb.WriteByte('\n')
		}

		offset += len(m.Vertices)
	}

	return sb.String()
}

// Encode writes the OBJ form of meshes to w.
func Encode(w io.Writer, meshes []capture.Mesh) error {
	_, err := io.WriteString(w, ToOBJ(meshes))
	return err
}

// formatCoord prints the shortest decimal that reads back as the same float32.
func formatCoord(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
