package bridge

import (
	"errors"

	"github.com/kataras/meshgrab/pkg/objexport"
)

// NothingCapturedNotice is shown when an export is requested before any mesh
// was captured.
const NothingCapturedNotice = "No mesh captured yet — rotate/zoom the 3D model and click Export again."

// Exporter saves the captured geometry.
type Exporter interface {
	Export(meta *objexport.Metadata) (*objexport.Artifact, error)
}

// Notifier surfaces a message to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// Dispatcher routes decoded messages to the exporter.
type Dispatcher struct {
	Exporter Exporter
	Notifier Notifier
	Logger   objexport.Logger
}

// Handle decodes and dispatches one wire message. Malformed and unknown
// messages are dropped without error. An export with nothing captured notifies
// the user and returns a nil artifact and a nil error.
func (d *Dispatcher) Handle(data []byte) (*objexport.Artifact, error) {
	msg, err := Decode(data)
	if err != nil {
		return nil, nil
	}
	return d.Dispatch(msg)
}

// Dispatch runs msg.
func (d *Dispatcher) Dispatch(msg Message) (*objexport.Artifact, error) {
	switch m := msg.(type) {
	case ExportRequest:
		d.logInfo("Received export request")
		art, err := d.Exporter.Export(m.Meta)
		if errors.Is(err, objexport.ErrNothingCaptured) {
			d.logWarn("Nothing captured yet")
			if d.Notifier != nil {
				d.Notifier.Notify(NothingCapturedNotice)
			}
			return nil, nil
		}
		return art, err
	}
	return nil, nil
}

func (d *Dispatcher) logInfo(f string, a ...any) {
	if d.Logger != nil {
		d.Logger.Infof(f, a...)
	}
}

func (d *Dispatcher) logWarn(f string, a ...any) {
	if d.Logger != nil {
		d.Logger.Warnf(f, a...)
	}
}
