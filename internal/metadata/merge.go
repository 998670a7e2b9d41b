// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metadata combines per-source extraction results under a fixed
// priority policy and scores the completeness of the merged record.
//
// The canonical source order per field is: external lookup, then the
// filename field when it independently validates, then content
// extraction, then the unvalidated filename field as a last resort. A
// structurally validated filename encodes curated human naming and
// outranks the noisier content heuristics; an unvalidated one is only a
// fallback.
package metadata

import (
	"regexp"

	"github.com/broepke/ortho-catalog/internal/filename"
	"github.com/broepke/ortho-catalog/pkg/types"
)

var numericOnlyRe = regexp.MustCompile(`^\d+$`)

// validTitle reports whether a filename-derived title is usable on its
// own: longer than 5 chars and not purely numeric.
func validTitle(s string) bool {
	return len(s) > 5 && !numericOnlyRe.MatchString(s)
}

// Merge applies the source-priority policy per field. It is a total
// function of its inputs: every field of the result is decided in one
// pass, never partially merged.
func Merge(lookup, fromFilename, fromContent types.Metadata) types.Metadata {
	var m types.Metadata

	switch {
	case lookup.Author != "":
		m.Author = lookup.Author
	case filename.ValidAuthor(fromFilename.Author):
		m.Author = fromFilename.Author
	case fromContent.Author != "":
		m.Author = fromContent.Author
	default:
		m.Author = fromFilename.Author
	}

	switch {
	case lookup.Year != 0:
		m.Year = lookup.Year
	case fromFilename.Year != 0:
		m.Year = fromFilename.Year
	default:
		m.Year = fromContent.Year
	}

	switch {
	case lookup.Journal != "":
		m.Journal = lookup.Journal
	case fromFilename.Journal != "":
		m.Journal = fromFilename.Journal
	default:
		m.Journal = fromContent.Journal
	}

	switch {
	case lookup.Title != "":
		m.Title = lookup.Title
	case validTitle(fromFilename.Title):
		m.Title = fromFilename.Title
	case fromContent.Title != "":
		m.Title = fromContent.Title
	default:
		m.Title = fromFilename.Title
	}

	return m
}

const (
	fieldWeight = 0.25

	// titleScoreMinLen is the minimum title length that counts toward the
	// completeness score.
	titleScoreMinLen = 10

	highThreshold   = 0.7
	mediumThreshold = 0.4
)

// Score computes the extraction-completeness confidence for a merged
// record: 0.25 per present field, with the title counting only beyond a
// minimum length. The score measures how much was extracted, not whether
// it is right.
func Score(m types.Metadata) types.Confidence {
	score := 0.0
	if m.Author != "" {
		score += fieldWeight
	}
	if m.Year != 0 {
		score += fieldWeight
	}
	if m.Journal != "" {
		score += fieldWeight
	}
	if len(m.Title) > titleScoreMinLen {
		score += fieldWeight
	}

	level := types.ConfidenceLow
	switch {
	case score > highThreshold:
		level = types.ConfidenceHigh
	case score >= mediumThreshold:
		level = types.ConfidenceMedium
	}

	return types.Confidence{Score: score, Level: level}
}
