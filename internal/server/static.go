package server

import (
	_ "embed"
	"net/http"
)

var (
	//go:embed assets/index.html
	indexHTML []byte
	//go:embed assets/index.js
	indexJS []byte
)

// serveAsset returns a handler that writes a fixed embedded payload.
func serveAsset(body []byte, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		serveBytes(w, body, contentType)
	}
}
