package objexport

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kataras/meshgrab/pkg/capture"
	"github.com/kataras/meshgrab/pkg/webgl"
)

type memSaver struct {
	saves []savedFile
	err   error
}

type savedFile struct {
	name    string
	content string
	mime    string
}

func (m *memSaver) Save(filename string, content []byte, mimeType string) error {
	if m.err != nil {
		return m.err
	}
	m.saves = append(m.saves, savedFile{filename, string(content), mimeType})
	return nil
}

func sessionWithDraws(t *testing.T, counts ...int) *capture.Session {
	t.Helper()
	s := capture.NewSession()
	gl, err := capture.Wrap(webgl.Discard, s)
	require.NoError(t, err)

	gl.BindBuffer(webgl.ArrayBuffer, 1)
	gl.BufferData(webgl.ArrayBuffer, webgl.Float32ArrayBuffer(make([]float32, 3*64)), webgl.StaticDraw)
	gl.VertexAttribPointer(0, 3, webgl.Float, false, 0, 0)
	for _, n := range counts {
		gl.DrawArrays(webgl.Triangles, 0, n)
	}
	return s
}

func TestExportNothingCaptured(t *testing.T) {
	saver := &memSaver{}
	e := &Exporter{Session: capture.NewSession(), Saver: saver}

	art, err := e.Export(&Metadata{CatalogID: "C1"})
	assert.ErrorIs(t, err, ErrNothingCaptured)
	assert.Nil(t, art)
	assert.Empty(t, saver.saves)
}

func TestExportSavesOnce(t *testing.T) {
	saver := &memSaver{}
	e := &Exporter{Session: sessionWithDraws(t, 3, 6), Saver: saver}

	art, err := e.Export(&Metadata{CatalogID: "C2040", Name: "RP2040"})
	require.NoError(t, err)

	require.Len(t, saver.saves, 1)
	assert.Equal(t, "C2040 - RP2040.obj", saver.saves[0].name)
	assert.Equal(t, MIMEType, saver.saves[0].mime)
	assert.Equal(t, string(art.Content), saver.saves[0].content)
	assert.Equal(t, Summary{Meshes: 2, Vertices: 9, Faces: 3}, art.Summary)
	assert.Equal(t, []string{"f 1 2 3", "f 4 5 6", "f 7 8 9"}, faceLines(saver.saves[0].content))
}

func TestExportIsDeterministic(t *testing.T) {
	saver := &memSaver{}
	s := sessionWithDraws(t, 3, 4)
	e := &Exporter{Session: s, Saver: saver}

	_, err := e.Export(nil)
	require.NoError(t, err)
	_, err = e.Export(nil)
	require.NoError(t, err)

	require.Len(t, saver.saves, 2)
	assert.Equal(t, saver.saves[0], saver.saves[1])
	assert.Equal(t, DefaultFileName, saver.saves[0].name)
	assert.Equal(t, 2, s.Stats().Meshes, "export must not clear the session")
}

func TestExportSaverError(t *testing.T) {
	boom := errors.New("disk full")
	e := &Exporter{Session: sessionWithDraws(t, 3), Saver: &memSaver{err: boom}}

	_, err := e.Export(nil)
	assert.ErrorIs(t, err, boom)
}

func TestSaverFunc(t *testing.T) {
	var got string
	e := &Exporter{
		Session: sessionWithDraws(t, 3),
		Saver: SaverFunc(func(filename string, _ []byte, _ string) error {
			got = filename
			return nil
		}),
	}

	_, err := e.Export(&Metadata{Name: "cap"})
	require.NoError(t, err)
	assert.Equal(t, "cap.obj", got)
}

func TestDirSaver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	saver := DirSaver{Dir: dir}

	require.NoError(t, saver.Save("C1 - part.obj", []byte("o mesh_0\n"), MIMEType))

	data, err := os.ReadFile(filepath.Join(dir, "C1 - part.obj"))
	require.NoError(t, err)
	assert.Equal(t, "o mesh_0\n", string(data))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]capture.Mesh{
		{Vertices: []capture.Vertex{{X: -1, Y: 2, Z: 0}, {X: 3, Y: -4, Z: 5}, {X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}}},
		{Vertices: []capture.Vertex{{X: 0, Y: 0, Z: -2}, {X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0}}},
	})

	assert.Equal(t, 2, s.Meshes)
	assert.Equal(t, 7, s.Vertices)
	assert.Equal(t, 2, s.Faces)
	assert.Equal(t, capture.Vertex{X: -1, Y: -4, Z: -2}, s.Min)
	assert.Equal(t, capture.Vertex{X: 3, Y: 2, Z: 5}, s.Max)
	assert.Equal(t, capture.Vertex{X: 4, Y: 6, Z: 7}, s.Size())
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}
