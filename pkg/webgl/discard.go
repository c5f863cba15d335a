package webgl

// Discard is a Context that accepts every call and does nothing. It stands in
// for the browser's context when a recorded call stream is replayed in Go.
var Discard Context = discard{}

type discard struct{}

func (discard) BindBuffer(Enum, Buffer)                               {}
func (discard) BufferData(Enum, BufferData, Enum)                     {}
func (discard) VertexAttribPointer(uint32, int, Enum, bool, int, int) {}
func (discard) DrawArrays(Enum, int, int)                             {}
