// Package bridge carries export requests from the page that hosts the viewer
// to the exporter. Messages are JSON objects discriminated by their "type"
// field; anything that is not a known message is ignored by the Dispatcher.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kataras/meshgrab/pkg/objexport"
)

// TypeExportOBJ is the discriminator of an ExportRequest.
const TypeExportOBJ = "EASYEDA_EXPORT_OBJ"

// ErrUnknownMessage is returned by Decode for messages without a known type.
var ErrUnknownMessage = errors.New("bridge: unknown message type")

// Message is one of the bridge message variants. The set is closed: the only
// implementation is ExportRequest.
type Message interface {
	Type() string
	isMessage()
}

// ExportRequest asks for everything captured so far to be saved.
type ExportRequest struct {
	// Meta names the exported file. Nil is valid.
	Meta *objexport.Metadata
}

func (ExportRequest) Type() string { return TypeExportOBJ }
func (ExportRequest) isMessage()   {}

type envelope struct {
	Type string              `json:"type"`
	Meta *objexport.Metadata `json:"meta,omitempty"`
}

// Decode parses a wire message.
func Decode(data []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("bridge: decode message: %w", err)
	}

	switch env.Type {
	case TypeExportOBJ:
		return ExportRequest{Meta: env.Meta}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMessage, env.Type)
	}
}

// Encode produces the wire form of m.
func Encode(m Message) ([]byte, error) {
	switch m := m.(type) {
	case ExportRequest:
		return json.Marshal(envelope{Type: m.Type(), Meta: m.Meta})
	default:
		return nil, fmt.Errorf("%w %T", ErrUnknownMessage, m)
	}
}
