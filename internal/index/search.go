package index

import (
	"fmt"
	"math"
	"sort"

	"github.com/starford/sift/internal/lexer"
)

// Result is one ranked hit.
type Result struct {
	Location string  `json:"location"`
	Score    float64 `json:"score"`
}

type posting struct {
	path  string
	freq  int
	total int
}

// Search ranks documents by TF-IDF over the query's terms. Documents that
// share no term with the query are omitted. Ties are broken by path.
func (db *DB) Search(query string) ([]Result, error) {
	terms := lexer.Tokenize(query)
	if len(terms) == 0 {
		return []Result{}, nil
	}

	n, err := db.DocumentCount()
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64)
	for _, term := range terms {
		postings, err := db.postings(term)
		if err != nil {
			return nil, err
		}
		if len(postings) == 0 {
			continue
		}
		idf := inverseDocumentFrequency(n, len(postings))
		for _, p := range postings {
			if p.total == 0 {
				continue
			}
			scores[p.path] += float64(p.freq) / float64(p.total) * idf
		}
	}

	out := make([]Result, 0, len(scores))
	for path, score := range scores {
		if score > 0 {
			out = append(out, Result{Location: path, Score: score})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Location < out[j].Location
	})
	return out, nil
}

// inverseDocumentFrequency is smoothed so a term present in every document
// still contributes a positive weight.
func inverseDocumentFrequency(docs, df int) float64 {
	if df < 1 {
		df = 1
	}
	return math.Log10(1 + float64(docs)/float64(df))
}

func (db *DB) postings(term string) ([]posting, error) {
	rows, err := db.conn.Query(`
		SELECT t.path, t.freq, d.term_total
		FROM terms t
		JOIN documents d ON d.path = t.path
		WHERE t.term = ?
	`, term)
	if err != nil {
		return nil, fmt.Errorf("index: postings: %w", err)
	}
	defer rows.Close()

	var out []posting
	for rows.Next() {
		var p posting
		if err := rows.Scan(&p.path, &p.freq, &p.total); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
