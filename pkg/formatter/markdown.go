package formatter

import (
	"fmt"
	"strings"

	"github.com/kataras/meshgrab/pkg/capture"
	"github.com/kataras/meshgrab/pkg/objexport"
)

// Report is everything known about one export.
type Report struct {
	FileName string
	Metadata *objexport.Metadata
	Calls    int // GL calls observed, zero when unknown
	Stats    capture.Stats
	Meshes   []capture.Mesh
}

// ReportFileName returns the name of the report written next to an OBJ file.
func ReportFileName(objName string) string {
	return strings.TrimSuffix(objName, ".obj") + ".md"
}

// ToMarkdown renders a capture report: the part, the capture session counters,
// the export totals and bounding box, and a per-mesh table. Meshes without
// vertices are listed with their index but marked as skipped, since they do
// not appear in the OBJ file.
func ToMarkdown(r Report) string {
	var sb strings.Builder

	title := r.FileName
	if title == "" {
		title = objexport.DefaultFileName
	}
	sb.WriteString(fmt.Sprintf("# Mesh Capture Report - %s\n\n", title))

	// Part
	if meta := r.Metadata; meta != nil {
		sb.WriteString("## Part\n\n")
		if meta.CatalogID != "" {
			sb.WriteString(fmt.Sprintf("- **LCSC**: %s\n", meta.CatalogID))
		}
		if meta.Name != "" {
			sb.WriteString(fmt.Sprintf("- **Name**: %s\n", meta.Name))
		}
		if meta.Model != "" {
			sb.WriteString(fmt.Sprintf("- **3D Model**: `%s`\n", meta.Model))
		}
		sb.WriteString("\n")
	}

	// Session
	sb.WriteString("## Capture Session\n\n")
	if r.Calls > 0 {
		sb.WriteString(fmt.Sprintf("- **GL Calls**: %d\n", r.Calls))
	}
	sb.WriteString(fmt.Sprintf("- **Buffers**: %d\n", r.Stats.Buffers))
	sb.WriteString(fmt.Sprintf("- **Position Attributes**: %d\n", r.Stats.Attributes))
	sb.WriteString(fmt.Sprintf("- **Meshes**: %d\n\n", r.Stats.Meshes))

	sum := objexport.Summarize(r.Meshes)
	sb.WriteString("## Geometry\n\n")
	sb.WriteString(fmt.Sprintf("- **Vertices**: %d\n", sum.Vertices))
	sb.WriteString(fmt.Sprintf("- **Faces**: %d\n", sum.Faces))
	if sum.Vertices > 0 {
		size := sum.Size()
		sb.WriteString(fmt.Sprintf("- **Min**: %s\n", formatVertex(sum.Min)))
		sb.WriteString(fmt.Sprintf("- **Max**: %s\n", formatVertex(sum.Max)))
		sb.WriteString(fmt.Sprintf("- **Size**: %g x %g x %g\n", size.X, size.Y, size.Z))
	}
	sb.WriteString("\n")

	// Meshes
	if len(r.Meshes) > 0 {
		sb.WriteString("## Meshes\n\n")
		sb.WriteString("| Object | Vertices | Faces | Note |\n")
		sb.WriteString("|--------|----------|-------|------|\n")
		for i, m := range r.Meshes {
			note := ""
			switch {
			case m.Len() == 0:
				note = "skipped (empty)"
			case m.Len()%3 != 0:
				note = fmt.Sprintf("%d trailing vertex(es) dropped", m.Len()%3)
			}
			sb.WriteString(fmt.Sprintf("| `mesh_%d` | %d | %d | %s |\n", i, m.Len(), m.Triangles(), note))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatVertex(v capture.Vertex) string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
