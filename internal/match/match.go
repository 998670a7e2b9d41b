// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"context"
	"fmt"

	"github.com/broepke/ortho-catalog/internal/catalog"
	"github.com/broepke/ortho-catalog/pkg/types"
)

// Index is the fuzzy text index the first pass searches. The catalog
// store satisfies it; the index is owned and rebuilt by the caller, never
// by the matcher.
type Index interface {
	SearchDocuments(ctx context.Context, text string, limit int) ([]catalog.Candidate, error)
}

// Pass thresholds and signal weights. Pass 1 is broad-recall over the
// text index; pass 2 trades recall for precision by gating on the author
// and only runs when pass 1 found nothing convincing.
const (
	pass1Accept = 0.35
	pass2Accept = 0.5
	convincing  = 0.6

	yearExactWeight = 0.3
	yearNearWeight  = 0.1
	authorWeight    = 0.25
	journalWeight   = 0.2
	keywordWeight   = 0.25
	indexRankWeight = 0.2

	pass2YearNearWeight = 0.15
	pass2KeywordsStrong = 0.25
	pass2KeywordsWeak   = 0.1

	yearNearWindow = 2
)

// searchText joins the document fields the signals are checked against.
func searchText(d types.Document) string {
	return d.Filename + " " + d.Title + " " + d.Author + " " + d.Journal
}

// Best returns the highest-confidence catalog match for a timeline entry,
// or ok=false when no candidate clears the thresholds. docs is the full
// catalog, used only by the author-anchored second pass.
func Best(ctx context.Context, entry types.TimelineEntry, index Index, docs []types.Document, cfg types.MatchConfig) (types.MatchResult, bool, error) {
	limit := cfg.CandidateLimit
	if limit <= 0 {
		limit = 20
	}

	refKeywords := Keywords(entry.Title)

	var best types.MatchResult
	var found bool

	candidates, err := index.SearchDocuments(ctx, entry.Title, limit)
	if err != nil {
		return types.MatchResult{}, false, fmt.Errorf("searching index for %q: %w", entry.Title, err)
	}

	for _, c := range candidates {
		score := scoreCandidate(entry, c.Document, refKeywords)
		score += c.IndexScore * indexRankWeight
		if score > pass1Accept && (!found || score > best.Confidence) {
			best = types.MatchResult{EntryID: entry.ID, DocumentID: c.Document.ID, Confidence: score}
			found = true
		}
	}

	// Author+year is a low-recall, high-precision signal: when fuzzy title
	// search came up short, an author-gated scan over the whole catalog
	// still finds entries whose extracted titles diverged.
	if !found || best.Confidence < convincing {
		for _, d := range docs {
			if !authorMatches(entry.Author, d.Author, d.Filename) {
				continue
			}

			score := authorWeight
			switch {
			case d.Year == entry.Year && d.Year != 0:
				score += yearExactWeight
			case d.Year != 0 && absInt(d.Year-entry.Year) <= yearNearWindow:
				score += pass2YearNearWeight
			}
			if journalMatches(entry.Journal, searchText(d)) {
				score += journalWeight
			}

			docWords := keywordSet(searchText(d))
			matches := 0
			for _, k := range refKeywords {
				if docWords[k] {
					matches++
				}
			}
			switch {
			case matches >= 2:
				score += pass2KeywordsStrong
			case matches >= 1:
				score += pass2KeywordsWeak
			}

			if score > pass2Accept && (!found || score > best.Confidence) {
				best = types.MatchResult{EntryID: entry.ID, DocumentID: d.ID, Confidence: score}
				found = true
			}
		}
	}

	return best, found, nil
}

// scoreCandidate computes the pass-1 composite signal score, without the
// index-rank term.
func scoreCandidate(entry types.TimelineEntry, d types.Document, refKeywords []string) float64 {
	var score float64

	switch {
	case d.Year == entry.Year && d.Year != 0:
		score += yearExactWeight
	case d.Year != 0 && absInt(d.Year-entry.Year) <= yearNearWindow:
		score += yearNearWeight
	}

	text := searchText(d)
	if authorMatches(entry.Author, d.Author, d.Filename) {
		score += authorWeight
	}
	if journalMatches(entry.Journal, text) {
		score += journalWeight
	}
	score += overlapRatio(refKeywords, keywordSet(text)) * keywordWeight

	return score
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
