package trace

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kataras/meshgrab/pkg/capture"
	"github.com/kataras/meshgrab/pkg/webgl"
)

const sampleTrace = `{"op":"bindBuffer","target":34962,"buffer":1}
{"op":"bufferData","target":34962,"usage":35044,"f32":[0,0,0,1,0,0,0,1,0]}

{"op":"vertexAttribPointer","index":0,"size":3,"type":5126}
{"op":"drawArrays","mode":4,"first":0,"count":3}
`

func TestParseCall(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Call
		wantErr string
	}{
		{
			name: "bind",
			line: `{"op":"bindBuffer","target":34962,"buffer":7}`,
			want: BindBuffer(webgl.ArrayBuffer, 7),
		},
		{
			name: "unbind",
			line: `{"op":"bindBuffer","target":34962,"buffer":0}`,
			want: BindBuffer(webgl.ArrayBuffer, webgl.NoBuffer),
		},
		{
			name: "float upload",
			line: `{"op":"bufferData","target":34962,"usage":35044,"kind":"f32","f32":[1.5,-2]}`,
			want: BufferFloats(webgl.ArrayBuffer, []float32{1.5, -2}, webgl.StaticDraw),
		},
		{
			name: "byte upload",
			line: `{"op":"bufferData","target":34963,"usage":35044,"kind":"bytes","bytes":"AQID"}`,
			want: BufferBytes(webgl.ElementArrayBuffer, []byte{1, 2, 3}, webgl.StaticDraw),
		},
		{
			name: "attribute",
			line: `{"op":"vertexAttribPointer","index":1,"size":2,"type":5126,"normalized":true,"stride":16,"offset":8}`,
			want: VertexAttribPointer(1, 2, webgl.Float, true, 16, 8),
		},
		{
			name: "draw points",
			line: `{"op":"drawArrays","mode":0,"first":3,"count":9}`,
			want: DrawArrays(webgl.Points, 3, 9),
		},
		{
			name: "float upload without kind",
			line: `{"op":"bufferData","target":34962,"usage":35044,"f32":[1]}`,
			want: Call{Op: OpBufferData, Target: webgl.ArrayBuffer, Usage: webgl.StaticDraw, F32: []float32{1}},
		},
		{name: "unknown kind", line: `{"op":"bufferData","kind":"u16"}`, wantErr: `unknown payload kind "u16"`},
		{name: "unknown op", line: `{"op":"clear"}`, wantErr: `unknown op "clear"`},
		{name: "missing op", line: `{"target":1}`, wantErr: "missing op"},
		{name: "not json", line: `bindBuffer(1)`, wantErr: "decode call"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCall([]byte(tt.line))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPayload(t *testing.T) {
	assert.IsType(t, webgl.Float32ArrayBuffer{}, BufferFloats(webgl.ArrayBuffer, nil, webgl.StaticDraw).Payload())
	assert.IsType(t, webgl.Float32ArrayBuffer{}, Call{Op: OpBufferData}.Payload())
	assert.IsType(t, webgl.ByteArrayBuffer{}, BufferBytes(webgl.ArrayBuffer, nil, webgl.StaticDraw).Payload())
	assert.IsType(t, webgl.ByteArrayBuffer{}, Call{Op: OpBufferData, Bytes: []byte{}}.Payload())
	assert.Equal(t, webgl.ByteArrayBuffer{9}, BufferBytes(webgl.ArrayBuffer, []byte{9}, webgl.StaticDraw).Payload())
}

func TestEncodeDecode(t *testing.T) {
	calls := []Call{
		BindBuffer(webgl.ArrayBuffer, 2),
		BufferFloats(webgl.ArrayBuffer, []float32{0.25, 1, 2}, webgl.DynamicDraw),
		BufferBytes(webgl.ElementArrayBuffer, []byte{0, 1, 2}, webgl.StaticDraw),
		VertexAttribPointer(0, 3, webgl.Float, false, 0, 0),
		DrawArrays(webgl.Triangles, 0, 1),
	}

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, c := range calls {
		require.NoError(t, enc.Encode(c))
	}

	dec := NewDecoder(&buf)
	for i, want := range calls {
		got, err := dec.Next()
		require.NoError(t, err, "call %d", i)
		assert.Equal(t, want, got)
	}
	_, err := dec.Next()
	assert.Equal(t, io.EOF, err)
}

func TestDecoderReportsLine(t *testing.T) {
	dec := NewDecoder(strings.NewReader("{\"op\":\"bindBuffer\"}\n\n{\"op\":\"nope\"}\n"))

	_, err := dec.Next()
	require.NoError(t, err)
	_, err = dec.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestReplayMatchesDirectCalls(t *testing.T) {
	rec := &webgl.Recorder{}
	n, err := Replay(context.Background(), strings.NewReader(sampleTrace), rec)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	direct := &webgl.Recorder{}
	direct.BindBuffer(webgl.ArrayBuffer, 1)
	direct.BufferData(webgl.ArrayBuffer, webgl.Float32ArrayBuffer{0, 0, 0, 1, 0, 0, 0, 1, 0}, webgl.StaticDraw)
	direct.VertexAttribPointer(0, 3, webgl.Float, false, 0, 0)
	direct.DrawArrays(webgl.Triangles, 0, 3)
	assert.Equal(t, direct.Calls, rec.Calls)
}

func TestReplayThroughInterceptor(t *testing.T) {
	s := capture.NewSession()
	gl, err := capture.Wrap(webgl.Discard, s)
	require.NoError(t, err)

	_, err = Replay(context.Background(), strings.NewReader(sampleTrace), gl)
	require.NoError(t, err)

	meshes := s.Meshes()
	require.Len(t, meshes, 1)
	assert.Equal(t, []capture.Vertex{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}, meshes[0].Vertices)
}

func TestReplayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := Replay(ctx, strings.NewReader(sampleTrace), webgl.Discard)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}

func TestReplayStopsAtBadLine(t *testing.T) {
	rec := &webgl.Recorder{}
	n, err := Replay(context.Background(), strings.NewReader(sampleTrace+"{\"op\":\"clear\"}\n"), rec)
	require.Error(t, err)
	assert.Equal(t, 4, n)
	assert.Len(t, rec.Calls, 4)
}

// Replaying an encoded stream must capture what the direct calls capture,
// including empty uploads of either kind.
func TestEncodedReplayCapturesLikeDirectCalls(t *testing.T) {
	calls := []Call{
		BindBuffer(webgl.ArrayBuffer, 1),
		BufferFloats(webgl.ArrayBuffer, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, webgl.StaticDraw),
		VertexAttribPointer(0, 3, webgl.Float, false, 0, 0),
		BufferBytes(webgl.ArrayBuffer, []byte{}, webgl.StaticDraw),
		DrawArrays(webgl.Triangles, 0, 3),
		BindBuffer(webgl.ArrayBuffer, 2),
		BufferFloats(webgl.ArrayBuffer, []float32{}, webgl.StaticDraw),
		VertexAttribPointer(1, 3, webgl.Float, false, 0, 0),
		DrawArrays(webgl.Triangles, 0, 3),
	}

	direct := capture.NewSession()
	gl, err := capture.Wrap(webgl.Discard, direct)
	require.NoError(t, err)
	for _, c := range calls {
		require.NoError(t, c.Apply(gl))
	}

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, c := range calls {
		require.NoError(t, enc.Encode(c))
	}

	replayed := capture.NewSession()
	gl, err = capture.Wrap(webgl.Discard, replayed)
	require.NoError(t, err)
	n, err := Replay(context.Background(), &buf, gl)
	require.NoError(t, err)
	assert.Equal(t, len(calls), n)

	require.Len(t, direct.Meshes(), 2)
	assert.Equal(t, direct.Meshes(), replayed.Meshes())
	assert.Equal(t, direct.Stats(), replayed.Stats())
}
