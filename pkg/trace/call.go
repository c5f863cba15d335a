// Package trace reads and writes GL call streams: one JSON object per line,
// each naming the call in its "op" field. The in-page shim produces this
// format and replay feeds it to any webgl.Context.
package trace

import (
	"fmt"

	"github.com/kataras/meshgrab/pkg/webgl"
)

// Op names.
const (
	OpBindBuffer          = "bindBuffer"
	OpBufferData          = "bufferData"
	OpVertexAttribPointer = "vertexAttribPointer"
	OpDrawArrays          = "drawArrays"
)

// Payload kinds of a bufferData call.
const (
	KindFloat32 = "f32"
	KindBytes   = "bytes"
)

// Call is one recorded invocation. Only the fields of its Op are meaningful.
type Call struct {
	Op string `json:"op"`

	Target webgl.Enum   `json:"target,omitempty"`
	Buffer webgl.Buffer `json:"buffer,omitempty"`

	Usage webgl.Enum `json:"usage,omitempty"`
	Kind  string     `json:"kind,omitempty"` // KindFloat32 or KindBytes
	F32   []float32  `json:"f32,omitempty"`
	Bytes []byte     `json:"bytes,omitempty"`

	Index      uint32     `json:"index,omitempty"`
	Size       int        `json:"size,omitempty"`
	Type       webgl.Enum `json:"type,omitempty"`
	Normalized bool       `json:"normalized,omitempty"`
	Stride     int        `json:"stride,omitempty"`
	Offset     int        `json:"offset,omitempty"`

	Mode  webgl.Enum `json:"mode,omitempty"`
	First int        `json:"first,omitempty"`
	Count int        `json:"count,omitempty"`
}

// BindBuffer records Context.BindBuffer.
func BindBuffer(target webgl.Enum, buffer webgl.Buffer) Call {
	return Call{Op: OpBindBuffer, Target: target, Buffer: buffer}
}

// BufferFloats records Context.BufferData with a Float32Array payload.
func BufferFloats(target webgl.Enum, data []float32, usage webgl.Enum) Call {
	return Call{Op: OpBufferData, Target: target, Kind: KindFloat32, F32: data, Usage: usage}
}

// BufferBytes records Context.BufferData with an untyped payload.
func BufferBytes(target webgl.Enum, data []byte, usage webgl.Enum) Call {
	return Call{Op: OpBufferData, Target: target, Kind: KindBytes, Bytes: data, Usage: usage}
}

// VertexAttribPointer records Context.VertexAttribPointer.
func VertexAttribPointer(index uint32, size int, typ webgl.Enum, normalized bool, stride, offset int) Call {
	return Call{
		Op:         OpVertexAttribPointer,
		Index:      index,
		Size:       size,
		Type:       typ,
		Normalized: normalized,
		Stride:     stride,
		Offset:     offset,
	}
}

// DrawArrays records Context.DrawArrays.
func DrawArrays(mode webgl.Enum, first, count int) Call {
	return Call{Op: OpDrawArrays, Mode: mode, First: first, Count: count}
}

// Payload returns the BufferData payload of a bufferData call, typed by Kind.
// Without a Kind the present field decides, and a call carrying neither is an
// empty float upload.
func (c Call) Payload() webgl.BufferData {
	switch {
	case c.Kind == KindBytes:
		return webgl.ByteArrayBuffer(c.Bytes)
	case c.Kind == "" && c.F32 == nil && c.Bytes != nil:
		return webgl.ByteArrayBuffer(c.Bytes)
	}
	return webgl.Float32ArrayBuffer(c.F32)
}

// Apply issues the call on gl.
func (c Call) Apply(gl webgl.Context) error {
	switch c.Op {
	case OpBindBuffer:
		gl.BindBuffer(c.Target, c.Buffer)
	case OpBufferData:
		gl.BufferData(c.Target, c.Payload(), c.Usage)
	case OpVertexAttribPointer:
		gl.VertexAttribPointer(c.Index, c.Size, c.Type, c.Normalized, c.Stride, c.Offset)
	case OpDrawArrays:
		gl.DrawArrays(c.Mode, c.First, c.Count)
	default:
		return fmt.Errorf("unknown op %q", c.Op)
	}
	return nil
}
