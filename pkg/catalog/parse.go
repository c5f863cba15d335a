package catalog

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	viewerVersion = "6.5.51"
	viewerBase    = "https://easyeda.com/editor/" + viewerVersion + "/htm/editorpage15.html"
	svgNodePrefix = "SVGNODE~"
)

var (
	productCodeRe = regexp.MustCompile(`(?i)C\d{5,}`)
	cParaRe       = regexp.MustCompile(`c_para="([^"]*)"`)
)

// ExtractProductCode returns the LCSC product code (e.g. C48606318) found in
// a product page URL.
func ExtractProductCode(pageURL string) (string, error) {
	code := productCodeRe.FindString(pageURL)
	if code == "" {
		return "", fmt.Errorf("no LCSC product code (C followed by at least 5 digits) in %q", pageURL)
	}
	return strings.ToUpper(code), nil
}

// ModelNameFromSVG reads the part name out of a symbol preview. The c_para
// attribute is a backtick separated key`value list; "Manufacturer Part" wins
// over "name", which wins over "Value". It returns "" when none is present.
func ModelNameFromSVG(svg string) string {
	m := cParaRe.FindStringSubmatch(svg)
	if m == nil {
		return ""
	}

	var name, mp, val string
	parts := strings.Split(m[1], "`")
	for i := 0; i+1 < len(parts); i += 2 {
		switch parts[i] {
		case "Manufacturer Part":
			mp = parts[i+1]
		case "name":
			name = parts[i+1]
		case "Value":
			val = parts[i+1]
		}
	}

	for _, s := range []string{mp, name, val} {
		if s != "" {
			return s
		}
	}
	return ""
}

type svgNode struct {
	Attrs map[string]string `json:"attrs"`
}

// Find3DModel looks through the footprint shapes for the outline3D node.
func Find3DModel(ds *DataStr) (*Model3D, bool) {
	if ds == nil {
		return nil, false
	}

	for _, raw := range ds.Shape {
		var entry string
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		jsonPart, ok := strings.CutPrefix(entry, svgNodePrefix)
		if !ok {
			continue
		}

		var node svgNode
		if err := json.Unmarshal([]byte(jsonPart), &node); err != nil {
			continue
		}
		if node.Attrs["c_etype"] != "outline3D" || node.Attrs["uuid"] == "" {
			continue
		}

		title := node.Attrs["title"]
		if title == "" {
			title = ds.Head.CPara["3DModel"]
		}
		if title == "" {
			title = ds.Head.CPara["package"]
		}
		if title == "" {
			title = "model"
		}
		return &Model3D{UUID: node.Attrs["uuid"], Title: title}, true
	}

	return nil, false
}

// ViewerURL returns the EasyEDA 3D viewer page that loads the given model.
func ViewerURL(m Model3D) string {
	return fmt.Sprintf("%s?version=%s&url=/analyzer/api/3dmodel/%s/%s.obj",
		viewerBase, viewerVersion, m.UUID, encodeURIComponent(m.Title))
}

// encodeURIComponent escapes s the way the browser function of the same name
// does.
func encodeURIComponent(s string) string {
	r := strings.NewReplacer(
		"+", "%20",
		"%21", "!",
		"%27", "'",
		"%28", "(",
		"%29", ")",
		"%2A", "*",
	)
	return r.Replace(url.QueryEscape(s))
}
