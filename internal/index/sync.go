package index

import (
	"errors"
	"log/slog"

	"github.com/starford/sift/internal/apperr"
	"github.com/starford/sift/internal/checksum"
	"github.com/starford/sift/internal/lexer"
	"github.com/starford/sift/internal/models"
	"github.com/starford/sift/internal/parser"
	"github.com/starford/sift/internal/storage"
)

// Event kinds passed to EventCallback.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// EventCallback is called after each index mutation.
type EventCallback func(kind string, path string)

// Sync walks the corpus and brings the index up to date:
//   - new/changed files are parsed and upserted
//   - files removed from disk are deleted from the index
//
// Reading and parsing happen outside the lock; each document is applied
// with its own Update so readers are never blocked on disk I/O.
func Sync(shared *Shared, store storage.Provider, logger *slog.Logger, cb EventCallback) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	var checksums map[string]string
	if err := shared.Update(func(s Store) error {
		checksums, err = s.AllChecksums()
		return err
	}); err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		prev, known := checksums[m.Path]
		if known && prev == m.Checksum {
			continue
		}

		if err := indexFile(shared, store, m); err != nil {
			if errors.Is(err, apperr.ErrUnsupportedFormat) {
				logger.Debug("sync: skipped", slog.String("path", m.Path))
			} else {
				logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			}
			continue
		}
		logger.Debug("sync: indexed", slog.String("path", m.Path))
		if cb != nil {
			kind := EventCreated
			if known {
				kind = EventUpdated
			}
			cb(kind, m.Path)
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; ok {
			continue
		}
		if err := deleteFile(shared, p); err != nil {
			logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			continue
		}
		logger.Debug("sync: removed stale", slog.String("path", p))
		if cb != nil {
			cb(EventDeleted, p)
		}
	}

	return nil
}

// indexFile reads, parses and tokenises one file, then applies it under the lock.
// An empty Checksum in meta is computed from the file contents.
func indexFile(shared *Shared, store storage.Provider, meta models.DocumentMetadata) error {
	data, err := store.Read(meta.Path)
	if err != nil {
		return err
	}
	res, err := parser.Parse(meta.Path, data)
	if err != nil {
		return err
	}
	doc := models.Document{
		Path:     meta.Path,
		Title:    res.Title,
		Body:     res.Body,
		Checksum: meta.Checksum,
		ModTime:  meta.UpdatedAt,
	}
	if doc.Checksum == "" {
		doc.Checksum = checksum.Sum(data)
	}
	freq := lexer.TermFrequencies(doc.Text())
	return shared.Update(func(s Store) error {
		return s.UpsertDocument(doc, freq)
	})
}

func deleteFile(shared *Shared, path string) error {
	return shared.Update(func(s Store) error {
		return s.DeleteDocument(path)
	})
}
