package index

import "github.com/starford/sift/internal/models"

// Index is the read side the HTTP layer needs: ranked search plus the two
// size metrics.
type Index interface {
	// Search returns every matching document ordered best-first.
	Search(query string) ([]Result, error)
	DocumentCount() (int, error)
	// TermCount returns the number of distinct terms across the corpus.
	TermCount() (int, error)
}

// Store is an Index that can also be mutated by the corpus indexer.
type Store interface {
	Index
	UpsertDocument(doc models.Document, freq map[string]int) error
	DeleteDocument(path string) error
	AllChecksums() (map[string]string, error)
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
