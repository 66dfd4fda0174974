package server

import (
	"log/slog"
	"net/http"
	"strconv"
)

const (
	contentTypeJSON = "application/json"
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJS   = "text/javascript; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

// writeBody is the single exit point for every response. A failed write
// means the client went away; it is logged and dropped.
func writeBody(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Warn("write response failed", slog.Int("status", status), slog.String("error", err.Error()))
	}
}

func serveBadRequest(w http.ResponseWriter, message string) {
	writeBody(w, http.StatusBadRequest, contentTypeText, []byte("400: "+message))
}

func serveNotFound(w http.ResponseWriter, _ *http.Request) {
	writeBody(w, http.StatusNotFound, contentTypeText, []byte("404"))
}

func serveInternalError(w http.ResponseWriter) {
	writeBody(w, http.StatusInternalServerError, contentTypeText, []byte("500"))
}

func serveJSON(w http.ResponseWriter, body []byte) {
	writeBody(w, http.StatusOK, contentTypeJSON, body)
}

func serveBytes(w http.ResponseWriter, body []byte, contentType string) {
	writeBody(w, http.StatusOK, contentType, body)
}
