// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import "strings"

// Simple-variant weights. Title similarity always applies; the other
// signals only contribute weight when both sides carry the field, so a
// missing author or journal shrinks the denominator instead of dragging
// the score down.
const (
	simpleTitleWeight   = 0.5
	simpleAuthorWeight  = 0.25
	simpleYearWeight    = 0.15
	simpleYearNear      = 0.1
	simpleJournalWeight = 0.1
)

// SimpleFields is the reduced record shape the index-free score compares.
type SimpleFields struct {
	Title   string
	Author  string
	Year    int
	Journal string
}

// SimpleScore computes a normalized 0-1 similarity between a reference
// entry and a document without any text index: stemmed-keyword title
// overlap plus author/year/journal agreement, divided by the total weight
// of the signals that were actually comparable.
func SimpleScore(ref, doc SimpleFields) float64 {
	score := TitleSimilarity(ref.Title, doc.Title) * simpleTitleWeight
	weights := simpleTitleWeight

	if ref.Author != "" && doc.Author != "" {
		weights += simpleAuthorWeight
		refSurname := surnameOf(ref.Author)
		docAuthor := Normalize(doc.Author)
		if refSurname != "" && (strings.Contains(docAuthor, refSurname) || strings.Contains(refSurname, docAuthor)) {
			score += simpleAuthorWeight
		} else {
			score += TitleSimilarity(ref.Author, doc.Author) * simpleAuthorWeight
		}
	}

	if ref.Year != 0 && doc.Year != 0 {
		weights += simpleYearWeight
		switch {
		case ref.Year == doc.Year:
			score += simpleYearWeight
		case absInt(ref.Year-doc.Year) <= 1:
			score += simpleYearNear
		}
	}

	if ref.Journal != "" && doc.Journal != "" {
		weights += simpleJournalWeight
		refJ, docJ := Normalize(ref.Journal), Normalize(doc.Journal)
		if refJ == docJ || strings.Contains(refJ, docJ) || strings.Contains(docJ, refJ) {
			score += simpleJournalWeight
		}
	}

	return score / weights
}
