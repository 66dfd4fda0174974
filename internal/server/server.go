package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// State is the lifecycle state of a Server.
type State int32

const (
	StateStopped State = iota
	StateListening
)

func (s State) String() string {
	if s == StateListening {
		return "listening"
	}
	return "stopped"
}

// BindError reports that the listening address could not be bound.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string { return fmt.Sprintf("server: bind %s: %v", e.Addr, e.Err) }
func (e *BindError) Unwrap() error { return e.Err }

// ListenerError reports that the listening socket failed while serving.
// It is the only error that ends the serving loop.
type ListenerError struct {
	Err error
}

func (e *ListenerError) Error() string { return fmt.Sprintf("server: listener failed: %v", e.Err) }
func (e *ListenerError) Unwrap() error { return e.Err }

// Server binds one address and dispatches every request to a handler.
// Failures inside a request never reach the loop; they are answered and
// logged by the handler stack.
type Server struct {
	addr    string
	logger  *slog.Logger
	httpSrv *http.Server

	mu    sync.Mutex
	ln    net.Listener
	state atomic.Int32
}

// New creates a Server for addr. Nothing is bound until Listen.
func New(addr string, handler http.Handler, logger *slog.Logger) *Server {
	return &Server{
		addr:   addr,
		logger: logger,
		httpSrv: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
	}
}

// Listen binds the configured address.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return &BindError{Addr: s.addr, Err: err}
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	s.state.Store(int32(StateListening))
	s.logger.Info("listening", slog.String("url", "http://"+ln.Addr().String()+"/"))
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// State reports whether the server is currently accepting requests.
func (s *Server) State() State {
	return State(s.state.Load())
}

// Serve accepts requests until Shutdown (returns nil) or until the
// listening socket fails (returns *ListenerError).
func (s *Server) Serve() error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln == nil {
		return errors.New("server: Serve called before Listen")
	}
	defer s.state.Store(int32(StateStopped))

	err := s.httpSrv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	s.logger.Error("server socket has shut down", slog.String("error", err.Error()))
	return &ListenerError{Err: err}
}

// ListenAndServe binds and serves.
func (s *Server) ListenAndServe() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown stops accepting and waits for the in-flight request to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
