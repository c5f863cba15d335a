package trace

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kataras/meshgrab/pkg/webgl"
)

// MaxLineSize bounds a single call line. Large vertex uploads are inlined as
// JSON arrays, so lines get long.
const MaxLineSize = 64 << 20

// Decoder reads calls from a line-delimited stream.
type Decoder struct {
	sc   *bufio.Scanner
	line int
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &Decoder{sc: sc}
}

// Next returns the next call, or io.EOF at the end of the stream. Blank lines
// are skipped.
func (d *Decoder) Next() (Call, error) {
	for d.sc.Scan() {
		d.line++
		line := bytes.TrimSpace(d.sc.Bytes())
		if len(line) == 0 {
			continue
		}

		c, err := ParseCall(line)
		if err != nil {
			return Call{}, fmt.Errorf("line %d: %w", d.line, err)
		}
		return c, nil
	}
	if err := d.sc.Err(); err != nil {
		return Call{}, fmt.Errorf("line %d: %w", d.line+1, err)
	}
	return Call{}, io.EOF
}

// ParseCall decodes a single call object.
func ParseCall(data []byte) (Call, error) {
	var c Call
	if err := json.Unmarshal(data, &c); err != nil {
		return Call{}, fmt.Errorf("decode call: %w", err)
	}
	switch c.Op {
	case OpBufferData:
		if c.Kind != "" && c.Kind != KindFloat32 && c.Kind != KindBytes {
			return Call{}, fmt.Errorf("unknown payload kind %q", c.Kind)
		}
		return c, nil
	case OpBindBuffer, OpVertexAttribPointer, OpDrawArrays:
		return c, nil
	case "":
		return Call{}, fmt.Errorf("missing op")
	default:
		return Call{}, fmt.Errorf("unknown op %q", c.Op)
	}
}

// Encoder writes calls as a line-delimited stream.
type Encoder struct {
	enc *json.Encoder
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: json.NewEncoder(w)}
}

// Encode writes one call followed by a newline.
func (e *Encoder) Encode(c Call) error {
	return e.enc.Encode(c)
}

// Replay applies every call read from r to gl, in order, and returns how many
// were applied. It stops early when ctx is cancelled.
func Replay(ctx context.Context, r io.Reader, gl webgl.Context) (int, error) {
	dec := NewDecoder(r)
	n := 0
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		c, err := dec.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if err := c.Apply(gl); err != nil {
			return n, err
		}
		n++
	}
}
