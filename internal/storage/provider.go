// Package storage defines the corpus file-system abstraction.
package storage

import "github.com/starford/sift/internal/models"

// Provider is the interface for read-only corpus access.
type Provider interface {
	// List returns metadata for every indexable file under dir (relative to corpus root).
	List(dir string) ([]models.DocumentMetadata, error)
	// Read returns the raw bytes of the file at path (relative to corpus root).
	Read(path string) ([]byte, error)
	// Accepts reports whether path has an indexable extension.
	Accepts(path string) bool
}
