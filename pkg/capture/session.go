// Package capture reconstructs triangle geometry by watching the buffer,
// attribute and draw calls that a renderer issues. It never looks at shaders
// or scene state: a position stream is recognised purely by its layout.
package capture

import (
	"slices"
	"sync"

	"github.com/kataras/meshgrab/pkg/webgl"
)

// Session holds everything observed from one rendering context: the current
// ARRAY_BUFFER binding, the last float payload uploaded to each buffer, the
// candidate position attributes and the meshes captured so far.
//
// Meshes only accumulate. There is no reset; create a new Session instead.
// A Session is safe for concurrent use.
type Session struct {
	mu sync.RWMutex

	bound     webgl.Buffer
	snapshots map[webgl.Buffer][]float32

	slots   []uint32 // attribute slots in first-seen order
	attribs map[uint32]AttributeBinding

	meshes []Mesh
}

// NewSession returns an empty capture session.
func NewSession() *Session {
	return &Session{
		snapshots: make(map[webgl.Buffer][]float32),
		attribs:   make(map[uint32]AttributeBinding),
	}
}

// Stats is a point-in-time summary of a Session.
type Stats struct {
	Buffers    int `json:"buffers"`
	Attributes int `json:"attributes"`
	Meshes     int `json:"meshes"`
	Vertices   int `json:"vertices"`
}

// Stats returns counts of the retained state.
func (s *Session) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		Buffers:    len(s.snapshots),
		Attributes: len(s.attribs),
		Meshes:     len(s.meshes),
	}
	for _, m := range s.meshes {
		st.Vertices += len(m.Vertices)
	}
	return st
}

// Meshes returns the meshes captured so far, in capture order. The returned
// slice is a snapshot: later captures are not visible through it.
func (s *Session) Meshes() []Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.meshes)
}

// Snapshot returns the last float payload uploaded to buf.
func (s *Session) Snapshot(buf webgl.Buffer) ([]float32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.snapshots[buf]
	return data, ok
}

// Attribute returns the retained position candidate for slot.
func (s *Session) Attribute(slot uint32) (AttributeBinding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.attribs[slot]
	return b, ok
}

// Bound returns the buffer currently bound to ARRAY_BUFFER.
func (s *Session) Bound() webgl.Buffer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bound
}

func (s *Session) bind(target webgl.Enum, buf webgl.Buffer) {
	if target != webgl.ArrayBuffer {
		return
	}
	s.mu.Lock()
	s.bound = buf
	s.mu.Unlock()
}

func (s *Session) upload(target webgl.Enum, data webgl.BufferData) {
	if target != webgl.ArrayBuffer {
		return
	}
	floats, ok := data.(webgl.Float32ArrayBuffer)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bound == webgl.NoBuffer {
		return
	}
	s.snapshots[s.bound] = slices.Clone([]float32(floats))
}

// configure returns false with the heuristic's reason when the layout is not
// retained.
func (s *Session) configure(slot uint32, size int, typ webgl.Enum, normalized bool, stride, offset int) (bool, string) {
	ok, reason := MatchPositionAttribute(size, typ, stride, offset)
	if !ok {
		return false, reason
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bound == webgl.NoBuffer {
		return false, "no ARRAY_BUFFER bound"
	}
	if _, seen := s.attribs[slot]; !seen {
		s.slots = append(s.slots, slot)
	}
	s.attribs[slot] = AttributeBinding{
		Buffer:     s.bound,
		Size:       size,
		Type:       typ,
		Normalized: normalized,
		Stride:     stride,
		Offset:     offset,
	}
	return true, reason
}

// draw captures at most one mesh. It returns the new mesh and its index in
// the collection, or -1 when nothing was captured.
func (s *Session) draw(mode webgl.Enum, first, count int) (Mesh, int) {
	if mode != webgl.Triangles || first < 0 || count < 0 {
		return Mesh{}, -1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.slots {
		attr := s.attribs[slot]
		data, ok := s.snapshots[attr.Buffer]
		if !ok {
			continue
		}

		// Compare in whole vertices so huge first or count cannot overflow.
		avail := len(data) / attr.Size
		if first > avail || count > avail-first {
			continue
		}
		start := first * attr.Size
		end := start + count*attr.Size

		verts := make([]Vertex, 0, count)
		for i := start; i < end; i += attr.Size {
			verts = append(verts, Vertex{X: data[i], Y: data[i+1], Z: data[i+2]})
		}
		m := Mesh{Vertices: verts}
		s.meshes = append(s.meshes, m)
		return m, len(s.meshes) - 1
	}
	return Mesh{}, -1
}
