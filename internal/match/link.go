// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"context"
	"fmt"
	"io"

	"github.com/broepke/ortho-catalog/pkg/types"
)

// Catalog is the store surface the bulk linker needs.
type Catalog interface {
	Index
	ListLandmarks(ctx context.Context, unmatchedOnly bool) ([]types.TimelineEntry, error)
	ListDocuments(ctx context.Context, sub types.Subspecialty) ([]types.Document, error)
	LinkLandmark(ctx context.Context, entryID, documentID int64, confidence float64) error
}

// LinkSummary aggregates one bulk matching run.
type LinkSummary struct {
	Attempted int
	Matched   int
	Linked    int
	ByBucket  map[types.ConfidenceLevel]int
	BySub     map[types.Subspecialty]int
}

// bucket assigns a match confidence to a reporting band.
func bucket(confidence float64) types.ConfidenceLevel {
	switch {
	case confidence >= 0.7:
		return types.ConfidenceHigh
	case confidence >= 0.5:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// LinkAll matches every unlinked timeline entry against the catalog and,
// when apply is set, persists links whose confidence clears the floor.
// Without apply it only reports what would be linked.
func LinkAll(ctx context.Context, store Catalog, cfg types.MatchConfig, apply bool, w io.Writer) (LinkSummary, error) {
	minConfidence := cfg.MinConfidence
	if minConfidence <= 0 {
		minConfidence = 0.4
	}

	entries, err := store.ListLandmarks(ctx, true)
	if err != nil {
		return LinkSummary{}, err
	}
	docs, err := store.ListDocuments(ctx, "")
	if err != nil {
		return LinkSummary{}, err
	}

	summary := LinkSummary{
		ByBucket: make(map[types.ConfidenceLevel]int),
		BySub:    make(map[types.Subspecialty]int),
	}
	for _, entry := range entries {
		summary.Attempted++

		result, ok, err := Best(ctx, entry, store, docs, cfg)
		if err != nil {
			return summary, err
		}
		if !ok || result.Confidence < minConfidence {
			fmt.Fprintf(w, "no match: %d %s (%s)\n", entry.Year, entry.Author, entry.Title)
			continue
		}
		summary.Matched++
		summary.ByBucket[bucket(result.Confidence)]++
		summary.BySub[entry.Subspecialty]++

		fmt.Fprintf(w, "match %.2f: %d %s (%s) -> document %d\n",
			result.Confidence, entry.Year, entry.Author, entry.Title, result.DocumentID)
		if !apply {
			continue
		}
		if err := store.LinkLandmark(ctx, entry.ID, result.DocumentID, result.Confidence); err != nil {
			return summary, err
		}
		summary.Linked++
	}

	fmt.Fprintf(w, "\nMatched %d of %d entries", summary.Matched, summary.Attempted)
	if apply {
		fmt.Fprintf(w, " (%d linked)", summary.Linked)
	}
	fmt.Fprintf(w, ": %d high, %d medium, %d low\n",
		summary.ByBucket[types.ConfidenceHigh],
		summary.ByBucket[types.ConfidenceMedium],
		summary.ByBucket[types.ConfidenceLow])
	for _, sub := range types.AllSubspecialties {
		if n := summary.BySub[sub]; n > 0 {
			fmt.Fprintf(w, "  %-20s %d\n", sub, n)
		}
	}
	return summary, nil
}
