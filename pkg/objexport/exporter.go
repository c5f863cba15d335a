package objexport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kataras/meshgrab/pkg/capture"
)

// ErrNothingCaptured is returned by Exporter.Export when no mesh has been
// captured yet. It is an expected outcome, not a failure: the user exported
// before the model was drawn.
var ErrNothingCaptured = errors.New("no mesh captured yet")

// Saver persists a finished artifact.
type Saver interface {
	Save(filename string, content []byte, mimeType string) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(filename string, content []byte, mimeType string) error

func (f SaverFunc) Save(filename string, content []byte, mimeType string) error {
	return f(filename, content, mimeType)
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Artifact is the result of one export.
type Artifact struct {
	FileName string
	Content  []byte
	Summary  Summary
}

// Exporter reads the meshes of a capture session and saves them as one OBJ
// file. It never clears the session, so exporting twice without new draws
// produces identical content.
type Exporter struct {
	Session *capture.Session
	Saver   Saver
	Logger  Logger
}

// Export saves everything captured so far. Meshes captured while the export
// runs are not included.
func (e *Exporter) Export(meta *Metadata) (*Artifact, error) {
	meshes := e.Session.Meshes()
	e.logInfo("Exporting %d captured mesh(es)...", len(meshes))
	if len(meshes) == 0 {
		return nil, ErrNothingCaptured
	}

	art := &Artifact{
		FileName: FileName(meta),
		Content:  []byte(ToOBJ(meshes)),
		Summary:  Summarize(meshes),
	}

	if err := e.Saver.Save(art.FileName, art.Content, MIMEType); err != nil {
		e.logError("Saving %s failed: %v", art.FileName, err)
		return nil, fmt.Errorf("save %s: %w", art.FileName, err)
	}
	e.logInfo("Saved %s (%d vertices, %d faces)", art.FileName, art.Summary.Vertices, art.Summary.Faces)

	return art, nil
}

func (e *Exporter) logInfo(f string, a ...any) {
	if e.Logger != nil {
		e.Logger.Infof(f, a...)
	}
}

func (e *Exporter) logError(f string, a ...any) {
	if e.Logger != nil {
		e.Logger.Errorf(f, a...)
	}
}

// DirSaver writes artifacts into a local directory, creating it on demand.
type DirSaver struct {
	Dir string
}

// Save writes content to Dir/filename.
func (d DirSaver) Save(filename string, content []byte, _ string) error {
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", d.Dir, err)
	}

	destPath := filepath.Join(d.Dir, filepath.Base(filename))
	if err := os.WriteFile(destPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write file %q: %w", destPath, err)
	}
	return nil
}
