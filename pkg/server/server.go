// Package server is the live side of the page bridge. The in-page shim opens
// two websockets: /gl streams the observed GL calls (trace lines, several per
// frame allowed) and /bridge carries export requests and their replies.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kataras/meshgrab/pkg/bridge"
	"github.com/kataras/meshgrab/pkg/capture"
	"github.com/kataras/meshgrab/pkg/objexport"
	"github.com/kataras/meshgrab/pkg/trace"
	"github.com/kataras/meshgrab/pkg/webgl"
)

// Reply types sent back on /bridge.
const (
	TypeExportResult = "EASYEDA_EXPORT_RESULT"
	TypeNotice       = "EASYEDA_EXPORT_NOTICE"
	TypeError        = "EASYEDA_EXPORT_ERROR"
)

// Logger receives progress messages. A nil Logger means silent operation.
type Logger = objexport.Logger

// Options configures a Server.
type Options struct {
	Session *capture.Session
	Saver   objexport.Saver
	// AllowedOrigins restricts which pages may connect. Empty allows any.
	AllowedOrigins []string
	// Metadata, when set, supplies metadata for export requests that carry
	// none, e.g. from a catalog lookup.
	Metadata func(ctx context.Context) *objexport.Metadata
	// MaxFrameSize bounds one websocket message, default trace.MaxLineSize.
	// Larger messages close the connection.
	MaxFrameSize int64
	Logger       Logger
}

// Server serves the bridge endpoints for one capture session.
type Server struct {
	opts     Options
	gl       *capture.Interceptor
	exporter *objexport.Exporter
	upgrader websocket.Upgrader
}

// Reply is a message sent to the page on /bridge.
type Reply struct {
	Type     string `json:"type"`
	File     string `json:"file,omitempty"`
	Meshes   int    `json:"meshes,omitempty"`
	Vertices int    `json:"vertices,omitempty"`
	Faces    int    `json:"faces,omitempty"`
	Message  string `json:"message,omitempty"`
}

// New creates a server. The GL stream is replayed onto a discarding context
// wrapped by the capture layer.
func New(opts Options) (*Server, error) {
	if opts.Session == nil {
		opts.Session = capture.NewSession()
	}
	if opts.Saver == nil {
		return nil, errors.New("server: no saver")
	}
	if opts.MaxFrameSize <= 0 {
		opts.MaxFrameSize = trace.MaxLineSize
	}

	gl, err := capture.Wrap(webgl.Discard, opts.Session)
	if err != nil {
		return nil, err
	}

	s := &Server{
		opts:     opts,
		gl:       gl,
		exporter: &objexport.Exporter{Session: opts.Session, Saver: opts.Saver, Logger: opts.Logger},
	}
	gl.OnCapture = func(i int, m capture.Mesh) {
		s.logInfo("Captured mesh_%d (%d vertices)", i, m.Len())
	}
	gl.OnFault = func(op string, r any) {
		s.logError("Observing %s failed: %v", op, r)
	}
	s.upgrader.CheckOrigin = s.checkOrigin
	return s, nil
}

// Session returns the capture session fed by /gl.
func (s *Server) Session() *capture.Session {
	return s.opts.Session
}

// Handler returns the HTTP handler serving /gl, /bridge and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/gl", s.handleGL)
	mux.HandleFunc("/bridge", s.handleBridge)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logInfo("Listening on %s", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.opts.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || slices.Contains(s.opts.AllowedOrigins, origin)
}

func (s *Server) handleGL(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logWarn("GL upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.opts.MaxFrameSize)
	s.logInfo("GL stream connected from %s", r.RemoteAddr)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			s.logClosed("GL stream", err)
			return
		}
		s.applyFrame(msg)
	}
}

// applyFrame applies every call in one frame. A bad line is logged and the
// rest of the frame is dropped; the connection stays open.
func (s *Server) applyFrame(frame []byte) {
	dec := trace.NewDecoder(bytes.NewReader(frame))
	for {
		c, err := dec.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			s.logWarn("Dropping GL frame: %v", err)
			return
		}
		if err := c.Apply(s.gl); err != nil {
			s.logWarn("Dropping GL call: %v", err)
			return
		}
	}
}

func (s *Server) handleBridge(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logWarn("Bridge upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.opts.MaxFrameSize)
	s.logInfo("Bridge connected from %s", r.RemoteAddr)

	d := &bridge.Dispatcher{
		Exporter: exporterFunc(func(meta *objexport.Metadata) (*objexport.Artifact, error) {
			if meta == nil && s.opts.Metadata != nil {
				meta = s.opts.Metadata(r.Context())
			}
			return s.exporter.Export(meta)
		}),
		Notifier: bridge.NotifierFunc(func(msg string) {
			s.reply(conn, Reply{Type: TypeNotice, Message: msg})
		}),
		Logger: s.opts.Logger,
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			s.logClosed("Bridge", err)
			return
		}

		art, err := d.Handle(msg)
		switch {
		case err != nil:
			s.reply(conn, Reply{Type: TypeError, Message: err.Error()})
		case art != nil:
			s.reply(conn, Reply{
				Type:     TypeExportResult,
				File:     art.FileName,
				Meshes:   art.Summary.Meshes,
				Vertices: art.Summary.Vertices,
				Faces:    art.Summary.Faces,
			})
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.opts.Session.Stats()); err != nil {
		s.logWarn("Health reply failed: %v", err)
	}
}

func (s *Server) reply(conn *websocket.Conn, rep Reply) {
	if err := conn.WriteJSON(rep); err != nil {
		s.logWarn("Reply failed: %v", err)
	}
}

type exporterFunc func(meta *objexport.Metadata) (*objexport.Artifact, error)

func (f exporterFunc) Export(meta *objexport.Metadata) (*objexport.Artifact, error) {
	return f(meta)
}

func (s *Server) logClosed(what string, err error) {
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		s.logInfo("%s closed", what)
		return
	}
	s.logWarn("%s closed: %v", what, err)
}

func (s *Server) logInfo(f string, a ...any) {
	if s.opts.Logger != nil {
		s.opts.Logger.Infof(f, a...)
	}
}

func (s *Server) logWarn(f string, a ...any) {
	if s.opts.Logger != nil {
		s.opts.Logger.Warnf(f, a...)
	}
}

func (s *Server) logError(f string, a ...any) {
	if s.opts.Logger != nil {
		s.opts.Logger.Errorf(f, a...)
	}
}
