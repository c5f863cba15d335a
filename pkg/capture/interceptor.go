package capture

import (
	"errors"

	"github.com/kataras/meshgrab/pkg/webgl"
)

// ErrNoContext is returned by Wrap when there is no rendering context to wrap.
var ErrNoContext = errors.New("capture: no rendering context")

// Interceptor is a webgl.Context decorator. Every call is forwarded unchanged
// to the wrapped context after the Session has seen it.
type Interceptor struct {
	inner   webgl.Context
	session *Session

	// OnCapture, when set, is called after a draw produced a mesh.
	OnCapture func(index int, m Mesh)
	// OnFault, when set, receives any panic raised while observing a call.
	// The call itself is still forwarded.
	OnFault func(op string, recovered any)
}

var _ webgl.Context = (*Interceptor)(nil)

// Wrap returns an Interceptor recording into s. Wrapping an Interceptor that
// already records into s returns it as is, so injecting twice never doubles
// the captures.
func Wrap(inner webgl.Context, s *Session) (*Interceptor, error) {
	if inner == nil {
		return nil, ErrNoContext
	}
	if s == nil {
		return nil, errors.New("capture: nil session")
	}
	if ic, ok := inner.(*Interceptor); ok && ic.session == s {
		return ic, nil
	}
	return &Interceptor{inner: inner, session: s}, nil
}

// Session returns the session the interceptor records into.
func (ic *Interceptor) Session() *Session {
	return ic.session
}

// Unwrap returns the wrapped context.
func (ic *Interceptor) Unwrap() webgl.Context {
	return ic.inner
}

func (ic *Interceptor) observe(op string, fn func()) {
	defer func() {
		if r := recover(); r != nil && ic.OnFault != nil {
			ic.OnFault(op, r)
		}
	}()
	fn()
}

// BindBuffer tracks the ARRAY_BUFFER binding and forwards the call.
func (ic *Interceptor) BindBuffer(target webgl.Enum, buffer webgl.Buffer) {
	ic.observe("bindBuffer", func() { ic.session.bind(target, buffer) })
	ic.inner.BindBuffer(target, buffer)
}

// BufferData snapshots Float32Array uploads to the bound buffer and forwards
// the call.
func (ic *Interceptor) BufferData(target webgl.Enum, data webgl.BufferData, usage webgl.Enum) {
	ic.observe("bufferData", func() { ic.session.upload(target, data) })
	ic.inner.BufferData(target, data, usage)
}

// VertexAttribPointer retains layouts that look like vertex positions and
// forwards the call.
func (ic *Interceptor) VertexAttribPointer(index uint32, size int, typ webgl.Enum, normalized bool, stride, offset int) {
	ic.observe("vertexAttribPointer", func() {
		ic.session.configure(index, size, typ, normalized, stride, offset)
	})
	ic.inner.VertexAttribPointer(index, size, typ, normalized, stride, offset)
}

// DrawArrays captures a TRIANGLES draw as one mesh and forwards the call.
func (ic *Interceptor) DrawArrays(mode webgl.Enum, first, count int) {
	ic.observe("drawArrays", func() {
		if m, i := ic.session.draw(mode, first, count); i >= 0 && ic.OnCapture != nil {
			ic.OnCapture(i, m)
		}
	})
	ic.inner.DrawArrays(mode, first, count)
}
