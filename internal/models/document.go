// Package models defines the domain types for sift.
package models

import (
	"strings"
	"time"
)

// Document is a corpus file after text extraction.
type Document struct {
	Path     string    `json:"path"`
	Title    string    `json:"title,omitempty"`
	Body     string    `json:"-"`
	Checksum string    `json:"checksum"`
	ModTime  time.Time `json:"mod_time"`
}

// Text returns the searchable text of the document. The title is counted
// once: it is only prepended when the body does not already carry it.
func (d Document) Text() string {
	title := strings.TrimSpace(d.Title)
	if title == "" || strings.Contains(d.Body, title) {
		return d.Body
	}
	return title + " " + d.Body
}

// DocumentMetadata is a lightweight representation returned by list operations.
type DocumentMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
