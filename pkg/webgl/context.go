// Package webgl describes the slice of the WebGL rendering API that meshgrab
// observes. The real implementation lives in the browser; Go code receives the
// calls as a stream (see pkg/trace) and drives any Context implementation with them.
package webgl

// Enum mirrors a GLenum value.
type Enum uint32

// GL enum values used by the capture pipeline. They match the WebGL constants.
const (
	ArrayBuffer        Enum = 0x8892 // ARRAY_BUFFER
	ElementArrayBuffer Enum = 0x8893 // ELEMENT_ARRAY_BUFFER

	StaticDraw  Enum = 0x88E4
	DynamicDraw Enum = 0x88E8
	StreamDraw  Enum = 0x88E0

	Byte         Enum = 0x1400
	UnsignedByte Enum = 0x1401
	Short        Enum = 0x1402
	Float        Enum = 0x1406

	Points        Enum = 0x0000
	Lines         Enum = 0x0001
	LineStrip     Enum = 0x0003
	Triangles     Enum = 0x0004
	TriangleStrip Enum = 0x0005
	TriangleFan   Enum = 0x0006
)

// Buffer is an opaque handle to a GPU buffer object. The host owns its
// lifetime; meshgrab only uses it as a lookup key.
type Buffer uint32

// NoBuffer is the null binding.
const NoBuffer Buffer = 0

// Context is the capability set of a rendering context that the capture
// layer wraps.
type Context interface {
	BindBuffer(target Enum, buffer Buffer)
	BufferData(target Enum, data BufferData, usage Enum)
	VertexAttribPointer(index uint32, size int, typ Enum, normalized bool, stride, offset int)
	DrawArrays(mode Enum, first, count int)
}
