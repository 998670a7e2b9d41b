// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package content extracts bibliographic metadata from the page text of a
// source document using positional and lexical heuristics. Each field
// extractor is independent and reports absence rather than failing; the
// heuristics assume the text covers roughly the first two pages.
package content

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/broepke/ortho-catalog/internal/journals"
	"github.com/broepke/ortho-catalog/pkg/types"
)

const (
	authorScanLines = 80
	titleScanLines  = 40

	// yearScanChars bounds the frequency-count fallback for years.
	yearScanChars = 2000

	// Journal identifiers appear in page headers or footers depending on
	// the publisher, so the search window joins both ends of the text.
	journalHeadChars = 6000
	journalTailChars = 2500

	contentYearMin = 1950
)

// Extract runs all four field extractors over text.
func Extract(text string) types.Metadata {
	return types.Metadata{
		Author:  Author(text),
		Year:    Year(text),
		Journal: Journal(text),
		Title:   Title(text),
	}
}

// authorSkipWords rejects section headings, clinical vocabulary, anatomy,
// and institutional terms that pattern-match as names.
var authorSkipWords = map[string]bool{
	"abstract": true, "introduction": true, "background": true,
	"methods": true, "results": true, "discussion": true,
	"conclusion": true, "review": true, "article": true, "etiology": true,
	"overview": true, "summary": true,
	"clinical": true, "surgical": true, "management": true,
	"treatment": true, "diagnosis": true, "outcome": true,
	"evaluation": true, "comparison": true, "analysis": true,
	"reconstruction": true, "arthroplasty": true, "fracture": true,
	"injury": true, "technique": true, "posttraumatic": true,
	"combined": true,
	"shoulder": true, "elbow": true, "knee": true, "hip": true,
	"spine": true, "femoral": true, "valgus": true, "varus": true,
	"latissimus": true, "dorsi": true, "tendon": true, "ligament": true,
	"muscle": true, "bone": true, "joint": true,
	"distal": true, "proximal": true, "anterior": true, "posterior": true,
	"medial": true, "lateral": true,
	"orthopaedics": true, "orthopedics": true, "orthopaedic": true,
	"orthopedic": true,
	"university": true, "hospital": true, "center": true, "centre": true,
	"institute": true, "department": true,
	"permanente": true, "midlands": true, "association": true,
	"academy": true, "society": true, "college": true,
	"unit": true, "care": true, "health": true, "medical": true,
	"medicine": true, "surgery": true, "sciences": true,
	"ontario": true, "california": true, "boston": true, "london": true,
	"chicago": true, "mayo": true, "cleveland": true,
	"structure": true, "composition": true, "function": true,
	"basic": true, "science": true, "current": true,
	"update": true, "advances": true, "modern": true,
	"contemporary": true, "comprehensive": true, "guide": true,
}

var (
	// "FirstName M. LastName, MD" and credentialed variants, with an
	// optional middle initial.
	credentialedNameRe = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z]\.?)?\s+[A-Z][a-z]{2,}),?\s*(?:MD|M\.D\.|PhD|Ph\.D\.|DO|D\.O\.|FRCS|FACS)`)

	// "LastName, FirstName" at line start.
	lastFirstRe = regexp.MustCompile(`^([A-Z][a-z]{2,}),\s+[A-Z][a-z]+`)

	// A bare name alone on a line, possibly starred for affiliation.
	bareNameLineRe = regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z]\.?)?\s+[A-Z][a-z]{2,})\s*\*?\s*$`)

	etAlRe = regexp.MustCompile(`(?i)\s*et\s*al\.?\s*$`)
)

var institutionKeywords = []string{"department", "university", "hospital", "school of medicine"}

// Author scans the leading lines for a credentialed name, a
// "Lastname, Firstname" form, or a bare name directly above an
// institutional affiliation line. Returns the surname only.
func Author(text string) string {
	lines := headLines(text, authorScanLines)

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if len(line) < 5 || len(line) > 200 {
			continue
		}
		// Long lines without commas read like titles, not author blocks.
		if len(line) > 80 && !strings.Contains(line, ",") {
			continue
		}

		if m := credentialedNameRe.FindStringSubmatch(line); m != nil {
			if name := surname(m[1]); acceptAuthor(name) {
				return name
			}
		}

		if m := lastFirstRe.FindStringSubmatch(line); m != nil {
			if acceptAuthor(m[1]) {
				return m[1]
			}
		}

		if i+1 < len(lines) && hasInstitutionKeyword(lines[i+1]) {
			if m := bareNameLineRe.FindStringSubmatch(line); m != nil {
				if name := surname(m[1]); acceptAuthor(name) {
					return name
				}
			}
		}
	}
	return ""
}

func hasInstitutionKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range institutionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func acceptAuthor(name string) bool {
	return len(name) >= 3 && !authorSkipWords[strings.ToLower(name)]
}

// surname strips "et al" and credential suffixes, then keeps the final
// whitespace-delimited token.
func surname(name string) string {
	cleaned := strings.TrimSpace(etAlRe.ReplaceAllString(name, ""))
	for _, suffix := range journals.AuthorSuffixes {
		cleaned = strings.TrimSuffix(cleaned, suffix)
	}
	parts := strings.Fields(cleaned)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

var (
	copyrightYearRe = regexp.MustCompile(`(?i)(?:©|copyright|\(c\))\s*(\d{4})`)
	publishedYearRe = regexp.MustCompile(`(?i)(?:published|received|accepted)\s*:?\s*(?:\w+\s+)?(\d{4})`)
	volumeYearRe    = regexp.MustCompile(`(?i)(?:volume|vol\.?)\s*\d+[A-Za-z-]*\s*,?\s*(?:no\.?|issue)\s*\d+\s*,?\s*\w*\s*(\d{4})`)
	anyYearRe       = regexp.MustCompile(`\b(19[5-9]\d|20[0-9]\d)\b`)
)

// Year extracts the publication year, trying markers in decreasing
// reliability: copyright statement, published/received/accepted date,
// volume/issue line, then the most frequent plausible year in the leading
// text.
func Year(text string) int {
	currentYear := time.Now().Year()

	for _, re := range []*regexp.Regexp{copyrightYearRe, publishedYearRe, volumeYearRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			if y, err := strconv.Atoi(m[1]); err == nil && y >= contentYearMin && y <= currentYear {
				return y
			}
		}
	}

	head := text
	if len(head) > yearScanChars {
		head = head[:yearScanChars]
	}
	counts := make(map[int]int)
	for _, m := range anyYearRe.FindAllStringSubmatch(head, -1) {
		if y, err := strconv.Atoi(m[1]); err == nil && y >= contentYearMin && y <= currentYear {
			counts[y]++
		}
	}
	if len(counts) == 0 {
		return 0
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	// Most frequent year wins; earlier year breaks ties deterministically.
	sort.Slice(years, func(i, j int) bool {
		if counts[years[i]] != counts[years[j]] {
			return counts[years[i]] > counts[years[j]]
		}
		return years[i] < years[j]
	})
	return years[0]
}

// Journal searches the head and tail windows of the text against the
// priority-ordered alias table and returns the canonical abbreviation.
func Journal(text string) string {
	head := text
	if len(head) > journalHeadChars {
		head = head[:journalHeadChars]
	}
	tail := ""
	if len(text) > journalTailChars {
		tail = text[len(text)-journalTailChars:]
	}
	window := strings.ToLower(head + " " + tail)

	for _, alias := range journals.ContentAliases {
		for _, phrase := range alias.Phrases {
			if strings.Contains(window, phrase) {
				return alias.Abbrev
			}
		}
	}
	return ""
}

var titleSkipRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:abstract|introduction|background|methods|results|conclusion)`),
	regexp.MustCompile(`(?i)^(?:copyright|volume|issue|received|accepted|published|doi)`),
	regexp.MustCompile(`(?i)^(?:see discussions|researchgate|downloaded from|available at)`),
	regexp.MustCompile(`(?i)^(?:https?://|www\.)`),
	regexp.MustCompile(`(?i)^(?:review article|original article|case report|editorial)`),
	regexp.MustCompile(`^\d+\s*$`),
	regexp.MustCompile(`(?i)^page\s+\d+`),
	regexp.MustCompile(`(?i)citation`),
	regexp.MustCompile(`(?i)author\s+profiles?`),
}

var (
	authorLikeLineRe = regexp.MustCompile(`(?:MD|PhD|DO|FRCS|,\s*[A-Z]{2,3}$)`)
	specialCharRe    = regexp.MustCompile(`[/:@]`)
	upperStartRe     = regexp.MustCompile(`^[A-Z]`)
)

// Title returns the first plausible title line from the leading text:
// within 15-200 chars, not metadata, not author-like, not all uppercase,
// starting with a capital letter.
func Title(text string) string {
	for _, raw := range headLines(text, titleScanLines) {
		line := strings.TrimSpace(raw)
		if len(line) < 15 || len(line) > 200 {
			continue
		}
		if line == strings.ToUpper(line) && len(line) > 10 {
			continue
		}
		if authorLikeLineRe.MatchString(line) {
			continue
		}
		if matchesAny(titleSkipRes, line) {
			continue
		}
		if len(specialCharRe.FindAllString(line, -1)) > 2 {
			continue
		}
		if upperStartRe.MatchString(line) {
			return line
		}
	}
	return ""
}

func matchesAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func headLines(text string, n int) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}
