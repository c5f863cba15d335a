package webgl

import (
	"encoding/binary"
	"math"
)

// BufferData is a payload passed to Context.BufferData.
type BufferData interface {
	Bytes() []byte
}

// Float32ArrayBuffer is the Go side of a JavaScript Float32Array.
type Float32ArrayBuffer []float32

// Bytes returns the little-endian encoding of b.
func (b Float32ArrayBuffer) Bytes() []byte {
	out := make([]byte, len(b)*4)
	for i, f := range b {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

// ByteArrayBuffer is any untyped payload (Uint8Array, ArrayBuffer, ...).
type ByteArrayBuffer []byte

func (b ByteArrayBuffer) Bytes() []byte {
	return b
}
