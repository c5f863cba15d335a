package meshgrab

import (
	"github.com/kataras/meshgrab/pkg/bridge"
	"github.com/kataras/meshgrab/pkg/capture"
	"github.com/kataras/meshgrab/pkg/objexport"
	"github.com/kataras/meshgrab/pkg/webgl"
)

// Bridge ties one capture session to its exporter. Install wraps the
// rendering context, Post delivers page messages.
type Bridge struct {
	Session    *capture.Session
	Dispatcher *bridge.Dispatcher

	logger Logger
	notice string
}

// NewBridge creates a bridge saving exports through saver.
func NewBridge(saver objexport.Saver, logger Logger) *Bridge {
	b := &Bridge{Session: capture.NewSession(), logger: logger}
	b.Dispatcher = &bridge.Dispatcher{
		Exporter: &objexport.Exporter{Session: b.Session, Saver: saver, Logger: logger},
		Notifier: bridge.NotifierFunc(func(msg string) { b.notice = msg }),
		Logger:   logger,
	}
	return b
}

// Install wraps gl with the capture layer. If that fails the error is logged
// and gl is returned unwrapped: rendering must go on without capture.
func (b *Bridge) Install(gl webgl.Context) webgl.Context {
	ic, err := capture.Wrap(gl, b.Session)
	if err != nil {
		if b.logger != nil {
			b.logger.Errorf("Installing capture hook failed: %v", err)
		}
		return gl
	}
	return ic
}

// Post delivers a page message. It returns the saved artifact, or the notice
// shown to the user when nothing was captured. Unknown messages return all
// zero values. Post must not be called concurrently.
func (b *Bridge) Post(msg []byte) (*objexport.Artifact, string, error) {
	b.notice = ""
	art, err := b.Dispatcher.Handle(msg)
	return art, b.notice, err
}
