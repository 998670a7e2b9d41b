// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match links timeline entries to catalog documents with a
// weighted multi-signal similarity function. Two strategies exist: a
// two-pass matcher over the catalog's fuzzy text index, and a simpler
// index-free score for bulk linking.
package match

import (
	"regexp"
	"strings"

	"github.com/broepke/ortho-catalog/internal/journals"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]`)

// Normalize lowercases text and strips everything but letters, digits,
// and single spaces.
func Normalize(text string) string {
	s := nonAlnumRe.ReplaceAllString(strings.ToLower(text), "")
	return strings.Join(strings.Fields(s), " ")
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "in": true,
	"for": true, "and": true, "or": true, "to": true, "with": true,
	"by": true, "on": true, "at": true, "from": true, "as": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true,
	"must": true, "shall": true, "can": true, "need": true,
	"its": true, "their": true, "our": true, "your": true,
	"this": true, "that": true, "these": true, "those": true,
	"it": true, "vs": true, "using": true, "based": true,
}

// stemSuffixes are tried longest-first; the first matching suffix is
// stripped.
var stemSuffixes = []string{"tion", "ment", "ness", "ing", "ed", "ly", "s"}

// stem applies crude single-pass suffix stripping, enough to let
// "rupture" meet "ruptures" and "fixed" meet "fix".
func stem(word string) string {
	for _, suffix := range stemSuffixes {
		if strings.HasSuffix(word, suffix) && len(word) > len(suffix) {
			word = word[:len(word)-len(suffix)]
			break
		}
	}
	if strings.HasSuffix(word, "ies") {
		word = word[:len(word)-3] + "y"
	}
	return word
}

// Keywords returns the stemmed significant words of text, in order of
// first appearance, without duplicates.
func Keywords(text string) []string {
	seen := make(map[string]bool)
	var words []string
	for _, w := range strings.Fields(Normalize(text)) {
		if len(w) <= 2 || stopWords[w] {
			continue
		}
		s := stem(w)
		if !seen[s] {
			seen[s] = true
			words = append(words, s)
		}
	}
	return words
}

// keywordSet is Keywords as a membership set.
func keywordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range Keywords(text) {
		set[w] = true
	}
	return set
}

// TitleSimilarity is a Jaccard similarity over stemmed keyword sets:
// intersection size divided by union size.
func TitleSimilarity(a, b string) float64 {
	setA, setB := keywordSet(a), keywordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	matches := 0
	for w := range setA {
		if setB[w] {
			matches++
		}
	}
	union := len(setA) + len(setB) - matches
	return float64(matches) / float64(union)
}

// overlapRatio is the share of ref keywords present in the candidate set.
func overlapRatio(refKeywords []string, candidate map[string]bool) float64 {
	if len(refKeywords) == 0 {
		return 0
	}
	matches := 0
	for _, k := range refKeywords {
		if candidate[k] {
			matches++
		}
	}
	return float64(matches) / float64(len(refKeywords))
}

// surnameOf extracts the normalized first-author surname from a timeline
// author label such as "Maffulli" or "Rowe CR" or "Smith, J".
func surnameOf(author string) string {
	first := strings.SplitN(author, " ", 2)[0]
	first = strings.SplitN(first, ",", 2)[0]
	return Normalize(first)
}

// authorMatches reports whether the reference author's surname appears in
// the document's author field or filename.
func authorMatches(refAuthor, docAuthor, docFilename string) bool {
	surname := surnameOf(refAuthor)
	if len(surname) < 3 {
		return false
	}
	if docAuthor != "" && strings.Contains(Normalize(docAuthor), surname) {
		return true
	}
	return strings.Contains(Normalize(docFilename), surname)
}

// journalMatches reports whether the reference journal label and the
// document text identify the same journal, via direct containment or the
// alias table.
func journalMatches(refJournal, docText string) bool {
	refNorm := Normalize(refJournal)
	textNorm := Normalize(docText)
	if refNorm == "" || textNorm == "" {
		return false
	}
	if strings.Contains(textNorm, refNorm) {
		return true
	}

	if aliases, ok := journals.MatchAliases[refJournal]; ok {
		for _, alias := range aliases {
			if strings.Contains(textNorm, Normalize(alias)) {
				return true
			}
		}
	}

	// The reference label may itself be a variant of a known journal.
	for abbrev, aliases := range journals.MatchAliases {
		var labelMatches bool
		for _, alias := range aliases {
			an := Normalize(alias)
			if strings.Contains(refNorm, an) || strings.Contains(an, refNorm) {
				labelMatches = true
				break
			}
		}
		if !labelMatches {
			continue
		}
		if strings.Contains(textNorm, Normalize(abbrev)) {
			return true
		}
		for _, alias := range aliases {
			if strings.Contains(textNorm, Normalize(alias)) {
				return true
			}
		}
	}
	return false
}
