package index

import (
	"fmt"
	"time"

	"github.com/starford/sift/internal/models"
)

// UpsertDocument replaces a document and its term frequencies within a transaction.
// Only the path, checksum and modification time of doc are stored.
func (db *DB) UpsertDocument(doc models.Document, freq map[string]int) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	total := 0
	for _, n := range freq {
		total += n
	}

	_, err = tx.Exec(`
		INSERT INTO documents (path, checksum, term_total, mod_time, indexed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			checksum   = excluded.checksum,
			term_total = excluded.term_total,
			mod_time   = excluded.mod_time,
			indexed_at = excluded.indexed_at
	`, doc.Path, doc.Checksum, total, doc.ModTime, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("index: upsert document: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM terms WHERE path = ?`, doc.Path); err != nil {
		return fmt.Errorf("index: clear terms: %w", err)
	}
	if len(freq) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO terms (path, term, freq) VALUES (?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare term insert: %w", err)
		}
		defer stmt.Close()
		for term, n := range freq {
			if _, err := stmt.Exec(doc.Path, term, n); err != nil {
				return fmt.Errorf("index: insert term: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeleteDocument removes a document and its terms.
func (db *DB) DeleteDocument(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM terms WHERE path = ?`, path); err != nil {
		return fmt.Errorf("index: delete terms: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM documents WHERE path = ?`, path); err != nil {
		return fmt.Errorf("index: delete document: %w", err)
	}
	return tx.Commit()
}

// AllChecksums returns path → checksum for every indexed document.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// DocumentCount returns the number of indexed documents.
func (db *DB) DocumentCount() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT count(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: document count: %w", err)
	}
	return n, nil
}

// TermCount returns the number of distinct terms.
func (db *DB) TermCount() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT count(DISTINCT term) FROM terms`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: term count: %w", err)
	}
	return n, nil
}
