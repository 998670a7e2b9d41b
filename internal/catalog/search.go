// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/broepke/ortho-catalog/pkg/types"
)

// Candidate is a document returned by the fuzzy text index, with its
// position in rank order. IndexScore is 1 for the top-ranked candidate
// and falls off linearly toward 0 across the candidate set.
type Candidate struct {
	types.Document
	IndexScore float64
}

var wordRe = regexp.MustCompile(`[A-Za-z0-9]+`)

// ftsQuery turns free text into a safe FTS5 OR-query over its word
// tokens. Short tokens carry no signal and are dropped.
func ftsQuery(text string) string {
	var terms []string
	for _, w := range wordRe.FindAllString(text, -1) {
		if len(w) > 2 {
			terms = append(terms, `"`+w+`"`)
		}
	}
	return strings.Join(terms, " OR ")
}

// SearchDocuments runs a fuzzy full-text search over filename, title,
// author, and journal, returning up to limit candidates in rank order.
// The index is rebuilt implicitly by the documents triggers; callers own
// no cache.
func (s *Store) SearchDocuments(ctx context.Context, text string, limit int) ([]Candidate, error) {
	query := ftsQuery(text)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id, d.filename, d.file_path, d.size, d.title, d.author,
			d.year, d.journal, d.subspecialty, d.type
		 FROM documents_fts
		 JOIN documents d ON d.id = documents_fts.rowid
		 WHERE documents_fts MATCH ?
		 ORDER BY documents_fts.rank
		 LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching documents: %w", err)
	}
	defer rows.Close()

	docs, err := scanDocuments(rows)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, len(docs))
	for i, d := range docs {
		score := 1.0
		if len(docs) > 1 {
			score = 1.0 - float64(i)/float64(len(docs))
		}
		candidates[i] = Candidate{Document: d, IndexScore: score}
	}
	return candidates, nil
}
