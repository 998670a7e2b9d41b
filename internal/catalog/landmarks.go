// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/broepke/ortho-catalog/pkg/types"
)

// ReplaceLandmarks deletes all timeline entries and inserts the given set
// in one transaction. A full re-import always clears and rebuilds; there
// is no partial update path.
func (s *Store) ReplaceLandmarks(ctx context.Context, entries []types.TimelineEntry) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM landmarks`); err != nil {
		return 0, fmt.Errorf("clearing landmarks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO landmarks (year, author, journal, title, description, subspecialty, display_order, document_id, match_confidence)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range entries {
		e := &entries[i]
		res, err := stmt.ExecContext(ctx,
			e.Year, e.Author, e.Journal, e.Title, nullStr(e.Description),
			string(e.Subspecialty), e.DisplayOrder,
			nullInt64(e.MatchedDocumentID), nullFloat(e.MatchConfidence),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting landmark %q: %w", e.Title, err)
		}
		if id, err := res.LastInsertId(); err == nil {
			e.ID = id
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing landmarks: %w", err)
	}
	return len(entries), nil
}

// ListLandmarks returns timeline entries in subspecialty and display
// order. With unmatchedOnly set, only entries without a document link are
// returned.
func (s *Store) ListLandmarks(ctx context.Context, unmatchedOnly bool) ([]types.TimelineEntry, error) {
	query := `SELECT id, year, author, journal, title, description, subspecialty,
			display_order, document_id, match_confidence
		FROM landmarks`
	if unmatchedOnly {
		query += ` WHERE document_id IS NULL`
	}
	query += ` ORDER BY subspecialty, display_order`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing landmarks: %w", err)
	}
	defer rows.Close()

	var entries []types.TimelineEntry
	for rows.Next() {
		var (
			e    types.TimelineEntry
			desc sql.NullString
			sub  string
			doc  sql.NullInt64
			conf sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &e.Year, &e.Author, &e.Journal, &e.Title,
			&desc, &sub, &e.DisplayOrder, &doc, &conf); err != nil {
			return nil, fmt.Errorf("scanning landmark row: %w", err)
		}
		e.Description = desc.String
		e.Subspecialty = types.Subspecialty(sub)
		e.MatchedDocumentID = doc.Int64
		e.MatchConfidence = conf.Float64
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LinkLandmark records a match between a timeline entry and a catalog
// document.
func (s *Store) LinkLandmark(ctx context.Context, entryID, documentID int64, confidence float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE landmarks SET document_id = ?, match_confidence = ? WHERE id = ?`,
		documentID, confidence, entryID)
	if err != nil {
		return fmt.Errorf("linking landmark %d: %w", entryID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("linking landmark %d: no such entry", entryID)
	}
	return nil
}

func nullInt64(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}

func nullFloat(f float64) any {
	if f == 0 {
		return nil
	}
	return f
}
