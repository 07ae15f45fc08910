// Package intake accepts parameter edits over HTTP and WebSocket, validates
// them and forwards them to the frame loop.
package intake

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/logging"
	"voxel-terrain/internal/noise"
)

// Sink receives validated updates. Send and SendBatch block until the
// updates are queued or ctx ends. A batch is folded in a single frame.
type Sink interface {
	Send(ctx context.Context, u config.Update) error
	SendBatch(ctx context.Context, updates []config.Update) error
}

// Publisher exposes the latest state the frame loop has rendered.
type Publisher interface {
	Published() config.State
	Generation() uint64
}

// Options configure a Server.
type Options struct {
	// Sampler computes heightmap previews. Defaults to OpenSimplex.
	Sampler noise.Sampler
	Logger  *zerolog.Logger
}

// Server serves the intake API.
type Server struct {
	sink    Sink
	pub     Publisher
	sampler noise.Sampler
	log     zerolog.Logger

	upgrader websocket.Upgrader
	schema   *jsonschema.Schema
}

// NewServer wires the API to sink and pub.
func NewServer(sink Sink, pub Publisher, opts Options) (*Server, error) {
	schema, err := compileUpdateSchema()
	if err != nil {
		return nil, err
	}
	s := &Server{
		sink:    sink,
		pub:     pub,
		sampler: opts.Sampler,
		log:     zerolog.Nop(),
		schema:  schema,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	if s.sampler == nil {
		s.sampler = noise.NewOpenSimplex()
	}
	if opts.Logger != nil {
		s.log = logging.Component(*opts.Logger, "intake")
	}
	return s, nil
}

// Handler returns the routed API with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health_check", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	for _, rt := range fieldRoutes {
		mux.HandleFunc("PUT "+rt.path+"/{value}", s.handleUpdate(rt.field))
	}
	mux.HandleFunc("PUT /api/render/fps/{value}", s.handleFPS)
	mux.HandleFunc("PUT /api/render/wireframe/{value}", s.handleWireframe)

	mux.Handle("GET /api/state", gzhttp.GzipHandler(http.HandlerFunc(s.handleState)))
	mux.Handle("GET /api/preset", gzhttp.GzipHandler(http.HandlerFunc(s.handleGetPreset)))
	mux.HandleFunc("PUT /api/preset", s.handlePutPreset)
	mux.HandleFunc("GET /api/terrain/heightmap.png", s.handleHeightmap)
	mux.HandleFunc("GET /api/ws", s.handleWS)

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodOptions},
		MaxAge:         3600,
	}).Handler(mux)
}

// ListenAndServe serves the API on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("intake listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}
