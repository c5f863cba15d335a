package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kataras/meshgrab/pkg/objexport"
)

// ErrNoDocument is returned when a component has no editor document.
var ErrNoDocument = errors.New("no dataStr")

// MIME types of downloaded documents.
const (
	JSONMIMEType = "application/json"
	SVGMIMEType  = "image/svg+xml"
)

var (
	fileUnsafe = regexp.MustCompile(`[\\/:*?"<>|]`)
	fileSpaces = regexp.MustCompile(`\s+`)
	fileUnders = regexp.MustCompile(`_+`)
)

// FilePart turns s into one underscore-joined file name component. Unsafe
// characters and whitespace become underscores, runs of underscores collapse
// and edge underscores are trimmed. An empty result becomes "part".
func FilePart(s string) string {
	s = fileUnsafe.ReplaceAllString(s, "_")
	s = fileSpaces.ReplaceAllString(s, "_")
	s = fileUnders.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "part"
	}
	return s
}

// DocumentFileName returns "<code>_<name>_<kind>.<ext>".
func DocumentFileName(code, name, kind, ext string) string {
	return code + "_" + FilePart(name) + "_" + kind + "." + ext
}

// Download saves the symbol and footprint documents of code through saver as
// pretty-printed JSON and, with svg set, their SVG previews. A component
// without a document is skipped. It returns the saved file names in order.
func (c *Client) Download(ctx context.Context, code string, saver objexport.Saver, svg bool) ([]string, error) {
	svgs, err := c.GetSVGs(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("fetch svgs: %w", err)
	}

	name := code
	sym, hasSym := svgs.Find(DocTypeSymbol)
	if hasSym {
		if n := ModelNameFromSVG(sym.SVG); n != "" {
			name = n
		}
	}
	fp, hasFP := svgs.Find(DocTypeFootprint)

	var saved []string
	save := func(kind, ext, mime string, content []byte) error {
		fileName := DocumentFileName(code, name, kind, ext)
		if err := saver.Save(fileName, content, mime); err != nil {
			return fmt.Errorf("save %s: %w", fileName, err)
		}
		saved = append(saved, fileName)
		return nil
	}

	docs := []struct {
		kind  string
		entry *SVGEntry
	}{
		{"symbol", sym},
		{"footprint", fp},
	}
	for _, d := range docs {
		if d.entry == nil || d.entry.ComponentUUID == "" {
			continue
		}
		raw, err := c.GetDocument(ctx, d.entry.ComponentUUID)
		if errors.Is(err, ErrNoDocument) {
			continue
		}
		if err != nil {
			return saved, fmt.Errorf("fetch %s: %w", d.kind, err)
		}

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, raw, "", "  "); err != nil {
			return saved, fmt.Errorf("format %s: %w", d.kind, err)
		}
		if err := save(d.kind, "json", JSONMIMEType, pretty.Bytes()); err != nil {
			return saved, err
		}
	}

	if !svg {
		return saved, nil
	}
	if hasSym && sym.SVG != "" {
		if err := save("symbol", "svg", SVGMIMEType, []byte(sym.SVG)); err != nil {
			return saved, err
		}
	}
	if hasFP && fp.SVG != "" {
		if err := save("footprint", "svg", SVGMIMEType, []byte(fp.SVG)); err != nil {
			return saved, err
		}
	}
	return saved, nil
}
