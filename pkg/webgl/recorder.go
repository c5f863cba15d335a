package webgl

import "fmt"

// Call is one recorded Context invocation.
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

// Recorder is a Context that remembers every call it receives, in order.
// The zero value is ready to use.
type Recorder struct {
	Calls []Call
}

// BindBuffer records a bindBuffer call.
func (r *Recorder) BindBuffer(target Enum, buffer Buffer) {
	r.Calls = append(r.Calls, Call{"bindBuffer", []any{target, buffer}})
}

// BufferData records a bufferData call. The payload is kept, not copied.
func (r *Recorder) BufferData(target Enum, data BufferData, usage Enum) {
	r.Calls = append(r.Calls, Call{"bufferData", []any{target, data, usage}})
}

// VertexAttribPointer records a vertexAttribPointer call.
func (r *Recorder) VertexAttribPointer(index uint32, size int, typ Enum, normalized bool, stride, offset int) {
	r.Calls = append(r.Calls, Call{"vertexAttribPointer", []any{index, size, typ, normalized, stride, offset}})
}

// DrawArrays records a drawArrays call.
func (r *Recorder) DrawArrays(mode Enum, first, count int) {
	r.Calls = append(r.Calls, Call{"drawArrays", []any{mode, first, count}})
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
