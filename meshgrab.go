package meshgrab

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kataras/meshgrab/pkg/bridge"
	"github.com/kataras/meshgrab/pkg/capture"
	"github.com/kataras/meshgrab/pkg/catalog"
	"github.com/kataras/meshgrab/pkg/formatter"
	"github.com/kataras/meshgrab/pkg/objexport"
	"github.com/kataras/meshgrab/pkg/trace"
	"github.com/kataras/meshgrab/pkg/webgl"
)

// Version is the meshgrab release.
const Version = "0.3.0"

// Options configures a replay.
type Options struct {
	TracePath string    // GL call trace file; "-" reads Trace
	Trace     io.Reader // used when TracePath is "" or "-"
	OutputDir string    // default "meshgrab-exports"

	Metadata      *objexport.Metadata // explicit metadata wins over a lookup
	ProductURL    string              // LCSC product URL or code
	CatalogLookup bool                // resolve ProductURL on the EasyEDA API
	CatalogURL    string              // API base, default catalog.DefaultBaseURL

	Report bool            // also save a markdown capture report next to the OBJ
	Saver  objexport.Saver // default objexport.DirSaver{OutputDir}
	Logger Logger          // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the replay output.
type Result struct {
	Calls    int            // GL calls replayed
	Stats    capture.Stats  // session state after replay
	Meshes   []capture.Mesh // captured meshes in draw order
	Metadata *objexport.Metadata
	Artifact *objexport.Artifact // nil when nothing was captured
	Report   string              // report file name, set when Options.Report
	Notice   string              // user-facing notice, set when nothing was captured
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

// Run replays a recorded GL call trace through the capture layer and exports
// the captured meshes as an OBJ file.
func Run(ctx context.Context, opts Options) (*Result, error) {
	// Apply defaults.
	if opts.OutputDir == "" {
		opts.OutputDir = "meshgrab-exports"
	}
	if opts.Saver == nil {
		opts.Saver = objexport.DirSaver{Dir: opts.OutputDir}
	}

	r := opts.Trace
	if opts.TracePath != "" && opts.TracePath != "-" {
		opts.logInfo("Opening trace %s...", opts.TracePath)
		f, err := os.Open(opts.TracePath)
		if err != nil {
			return nil, fmt.Errorf("open trace: %w", err)
		}
		defer f.Close()
		r = f
	}
	if r == nil {
		return nil, fmt.Errorf("no trace to replay")
	}

	b := NewBridge(opts.Saver, opts.Logger)
	gl := b.Install(webgl.Discard)

	opts.logInfo("Replaying GL calls...")
	n, err := trace.Replay(ctx, r, gl)
	if err != nil {
		return nil, fmt.Errorf("replay trace: %w", err)
	}
	stats := b.Session.Stats()
	opts.logInfo("Replayed %d call(s), captured %d mesh(es)", n, stats.Meshes)

	meta := resolveMetadata(ctx, &opts)

	req, err := bridge.Encode(bridge.ExportRequest{Meta: meta})
	if err != nil {
		return nil, fmt.Errorf("encode export request: %w", err)
	}
	art, notice, err := b.Post(req)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	result := &Result{
		Calls:    n,
		Stats:    stats,
		Meshes:   b.Session.Meshes(),
		Metadata: meta,
		Artifact: art,
		Notice:   notice,
	}

	if opts.Report && art != nil {
		name := formatter.ReportFileName(art.FileName)
		md := formatter.ToMarkdown(formatter.Report{
			FileName: art.FileName,
			Metadata: meta,
			Calls:    n,
			Stats:    stats,
			Meshes:   result.Meshes,
		})
		if err := opts.Saver.Save(name, []byte(md), "text/markdown"); err != nil {
			return nil, fmt.Errorf("save report: %w", err)
		}
		opts.logInfo("Saved report %s", name)
		result.Report = name
	}

	return result, nil
}

// resolveMetadata never fails: export proceeds without metadata when the
// lookup does not work out.
func resolveMetadata(ctx context.Context, opts *Options) *objexport.Metadata {
	if opts.Metadata != nil {
		return opts.Metadata
	}
	if opts.ProductURL == "" {
		return nil
	}

	code, err := catalog.ExtractProductCode(opts.ProductURL)
	if err != nil {
		opts.logWarn("%v", err)
		return nil
	}
	opts.logInfo("Product code: %s", code)

	if !opts.CatalogLookup {
		return &objexport.Metadata{CatalogID: code}
	}

	opts.logInfo("Looking up %s on the catalog...", code)
	meta, err := catalog.NewClient(opts.CatalogURL).Metadata(ctx, code)
	if err != nil {
		opts.logWarn("Catalog lookup failed: %v", err)
		return &objexport.Metadata{CatalogID: code}
	}
	opts.logInfo("Part: %s", meta.Name)
	return meta
}
