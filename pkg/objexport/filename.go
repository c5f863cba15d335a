package objexport

import (
	"strings"
	"unicode"
)

// DefaultFileName is used when no metadata names the export.
const DefaultFileName = "easyeda_model.obj"

// Metadata describes the part being exported. Every field is optional.
type Metadata struct {
	CatalogID string `json:"lcsc,omitempty"`  // e.g. C48606318
	Name      string `json:"name,omitempty"`  // display name
	Model     string `json:"model,omitempty"` // 3D model identifier
}

// FileName derives the artifact file name from meta:
// "<CatalogID> - <Name>.obj", or whichever of the two is present, or
// DefaultFileName.
func FileName(meta *Metadata) string {
	if meta == nil {
		return DefaultFileName
	}

	id := SanitizeName(meta.CatalogID)
	name := SanitizeName(meta.Name)
	switch {
	case id != "" && name != "":
		return id + " - " + name + ".obj"
	case id != "":
		return id + ".obj"
	case name != "":
		return name + ".obj"
	}
	return DefaultFileName
}

// SanitizeName removes characters that are not allowed in file names on
// common filesystems (\ / : * ? " < > | and control characters), collapses
// runs of whitespace into one space and trims the result. Letters, digits,
// punctuation, spaces and brackets are kept.
func SanitizeName(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch {
		case strings.ContainsRune(`\/:*?"<>|`, r):
			continue
		case unicode.IsSpace(r):
			space = true
			continue
		case unicode.IsControl(r):
			continue
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}
