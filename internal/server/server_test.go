package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/starford/sift/internal/index"
	"github.com/starford/sift/internal/testutil"
)

func startServer(t *testing.T, h *Handler) (*Server, string, <-chan error) {
	t.Helper()
	router := NewRouter(h, RouterOptions{Logger: testutil.Logger(t), Serial: true})
	srv := New("127.0.0.1:0", router, testutil.Logger(t))
	if err := srv.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve() }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv, "http://" + srv.Addr().String(), errCh
}

func call(t *testing.T, method, url string, body []byte) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(data)
}

func TestServer_BindFailure(t *testing.T) {
	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer occupied.Close()

	srv := New(occupied.Addr().String(), http.NotFoundHandler(), testutil.Logger(t))
	err = srv.Listen()
	var bindErr *BindError
	if !errors.As(err, &bindErr) {
		t.Fatalf("err = %v, want *BindError", err)
	}
	if bindErr.Addr != occupied.Addr().String() {
		t.Errorf("Addr = %q", bindErr.Addr)
	}
	if srv.State() != StateStopped {
		t.Errorf("state = %v, want stopped", srv.State())
	}
}

func TestServer_ServeBeforeListen(t *testing.T) {
	srv := New("127.0.0.1:0", http.NotFoundHandler(), testutil.Logger(t))
	if err := srv.Serve(); err == nil {
		t.Fatal("expected error")
	}
}

func TestServer_KeepsServingAfterRequestFailures(t *testing.T) {
	fake := &fakeSearcher{
		results: ranked(25),
		stats:   index.Stats{Documents: 4, Terms: 9},
		panicOn: "panic please",
	}
	h := NewHandler(fake, nil)
	failNext := true
	h.marshal = func(v any) ([]byte, error) {
		if failNext {
			failNext = false
			return nil, errors.New("simulated encoder failure")
		}
		return json.Marshal(v)
	}
	srv, base, errCh := startServer(t, h)

	if srv.State() != StateListening {
		t.Fatalf("state = %v, want listening", srv.State())
	}

	steps := []struct {
		method, path string
		body         []byte
		status       int
	}{
		{http.MethodPost, "/api/search", []byte("first"), http.StatusInternalServerError},
		{http.MethodGet, "/api/stats", nil, http.StatusOK},
		{http.MethodPost, "/api/search", []byte("panic please"), http.StatusInternalServerError},
		{http.MethodPost, "/api/search", []byte("after panic"), http.StatusOK},
		{http.MethodPost, "/api/search", []byte{0xff, 0xfe}, http.StatusBadRequest},
		{http.MethodGet, "/unknown", nil, http.StatusNotFound},
		{http.MethodGet, "/", nil, http.StatusOK},
	}
	for _, s := range steps {
		status, body := call(t, s.method, base+s.path, s.body)
		if status != s.status {
			t.Errorf("%s %s = %d (%q), want %d", s.method, s.path, status, body, s.status)
		}
	}

	_, body := call(t, http.MethodPost, base+"/api/search", []byte("q"))
	var hits []SearchHit
	if err := json.Unmarshal([]byte(body), &hits); err != nil || len(hits) != MaxResults {
		t.Errorf("final search = %d hits, err %v", len(hits), err)
	}

	select {
	case err := <-errCh:
		t.Fatalf("serve loop exited early: %v", err)
	default:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Errorf("Serve after Shutdown = %v, want nil", err)
	}
	if srv.State() != StateStopped {
		t.Errorf("state = %v, want stopped", srv.State())
	}
}

func TestServer_ListenerFailureStopsLoop(t *testing.T) {
	srv := New("127.0.0.1:0", http.NotFoundHandler(), testutil.Logger(t))
	if err := srv.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}
	// Simulate the OS tearing the socket down underneath the loop.
	srv.ln.Close()

	err := srv.Serve()
	var lnErr *ListenerError
	if !errors.As(err, &lnErr) {
		t.Fatalf("err = %v, want *ListenerError", err)
	}
	if srv.State() != StateStopped {
		t.Errorf("state = %v, want stopped", srv.State())
	}
}
