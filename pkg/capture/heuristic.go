package capture

import (
	"fmt"

	"github.com/kataras/meshgrab/pkg/webgl"
)

// positionComponents is the component count of an xyz position.
const positionComponents = 3

// MatchPositionAttribute reports whether an attribute layout has the
// structural signature of a plain, non-interleaved position buffer: three
// floats per vertex, tightly packed, starting at the beginning of the buffer.
//
// This is a heuristic. Interleaved or offset layouts are real position data in
// many renderers but they are deliberately rejected; the returned reason names
// the first field that failed.
func MatchPositionAttribute(size int, typ webgl.Enum, stride, offset int) (bool, string) {
	switch {
	case size != positionComponents:
		return false, fmt.Sprintf("component count %d, want %d", size, positionComponents)
	case typ != webgl.Float:
		return false, fmt.Sprintf("component type 0x%04X, want FLOAT", uint32(typ))
	case stride != 0:
		return false, fmt.Sprintf("stride %d, want 0", stride)
	case offset != 0:
		return false, fmt.Sprintf("offset %d, want 0", offset)
	}
	return true, "tightly packed 3 x FLOAT"
}
