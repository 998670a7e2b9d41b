// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filename decodes bibliographic metadata from library filenames
// and generates canonical names from merged metadata. Parsing applies
// mutually exclusive pattern strategies in order; the first structural
// match wins.
package filename

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/broepke/ortho-catalog/internal/journals"
	"github.com/broepke/ortho-catalog/pkg/types"
)

const (
	yearMin = 1900
	yearMax = 2100
)

// invalidAuthorWords are capitalized tokens that look like surnames but
// are anatomical, clinical, or title vocabulary. Without the denylist a
// name like "Valgus_Osteotomy_..." reads "Valgus" as an author.
var invalidAuthorWords = map[string]bool{
	"valgus": true, "varus": true, "femoral": true, "tibial": true,
	"humeral": true, "radial": true, "ulnar": true,
	"distal": true, "proximal": true, "anterior": true, "posterior": true,
	"medial": true, "lateral": true,
	"periprosthetic": true, "intertrochanteric": true,
	"supracondylar": true, "subtrochanteric": true,
	"acute": true, "chronic": true, "surgical": true, "clinical": true,
	"primary": true, "revision": true,
	"total": true, "partial": true, "open": true, "closed": true,
	"stable": true, "unstable": true,
	"the": true, "a": true, "an": true, "new": true, "novel": true,
	"modern": true, "current": true, "recent": true,
	"very": true, "early": true, "late": true, "long": true, "short": true,
	"high": true, "low": true,
	"fracture": true, "fractures": true, "osteotomy": true,
	"arthroplasty": true, "arthroscopy": true,
	"reconstruction": true, "repair": true, "fixation": true,
	"replacement": true, "fusion": true,
	"comparison": true, "versus": true, "evaluation": true,
	"analysis": true, "review": true, "outcomes": true,
}

var (
	extensionRe      = regexp.MustCompile(`(?i)\.(pdf|pptx?|docx?)$`)
	downloadSuffixRe = regexp.MustCompile(`\.\d+$`)
	copySuffixRe     = regexp.MustCompile(`\s*\(\d+\)$`)
	authorShapeRe    = regexp.MustCompile(`^[A-Z][a-z]+$`)
	leadingAuthorRe  = regexp.MustCompile(`^([A-Z][a-z]+)`)

	// dashFormRe matches "YEAR - Author [et al] - JOURNAL - Title".
	dashFormRe = regexp.MustCompile(`(?i)^(\d{4})\s*-\s*([^-]+?)\s*(?:et\s*al\.?)?\s*-\s*([A-Za-z]+)\s*-\s*(.+)$`)
)

// ValidAuthor reports whether name has a plain capitalized-surname shape
// and is not on the denylist.
func ValidAuthor(name string) bool {
	if len(name) < 2 {
		return false
	}
	if !authorShapeRe.MatchString(name) {
		return false
	}
	return !invalidAuthorWords[strings.ToLower(name)]
}

func validYear(y int) bool { return y >= yearMin && y <= yearMax }

// Parse decodes candidate metadata from a filename alone. It is pure and
// deterministic; absent fields stay zero.
func Parse(name string) types.Metadata {
	// Download artifacts: trailing ".14"-style numeric suffixes and " (1)"
	// copy markers. The extension is stripped again afterwards because the
	// numeric suffix may have hidden it ("name.pdf.14").
	withoutExt := extensionRe.ReplaceAllString(downloadSuffixRe.ReplaceAllString(name, ""), "")
	cleaned := copySuffixRe.ReplaceAllString(withoutExt, "")

	var md types.Metadata

	if m := dashFormRe.FindStringSubmatch(cleaned); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil && validYear(y) {
			md.Year = y
		}
		if am := leadingAuthorRe.FindStringSubmatch(strings.TrimSpace(m[2])); am != nil && ValidAuthor(am[1]) {
			md.Author = am[1]
		}
		if canonical, ok := journals.KnownAbbrev(m[3]); ok {
			md.Journal = canonical
		}
		md.Title = strings.TrimSpace(m[4])
		return md
	}

	parts := strings.Split(cleaned, "_")
	switch {
	case len(parts) >= 4:
		md = parseStructured(cleaned, parts)
	case len(parts) >= 2:
		md = parsePartial(cleaned, parts)
	default:
		md.Title = collapseSpaces(strings.ReplaceAll(cleaned, "-", " "))
	}

	if md.Journal == "" {
		md.Journal = journals.FindInFilename(withoutExt)
	}
	return md
}

// parseStructured interprets a ≥4-segment underscore name as
// Year_Author_Journal_Title, or the legacy Author_Year_Journal_Title when
// the second segment is the valid year. All of author shape, year range,
// and known journal must hold; otherwise the whole name is title-only.
func parseStructured(cleaned string, parts []string) types.Metadata {
	author, year, journal := parts[0], parts[1], parts[2]
	if y, err := strconv.Atoi(parts[0]); err == nil && validYear(y) {
		year, author = parts[0], parts[1]
	}

	y, err := strconv.Atoi(year)
	journalCanonical, journalKnown := journals.KnownAbbrev(journal)

	if err == nil && validYear(y) && ValidAuthor(author) && journalKnown {
		return types.Metadata{
			Author:  author,
			Year:    y,
			Journal: journalCanonical,
			Title:   collapseSpaces(strings.ReplaceAll(strings.Join(parts[3:], " "), "-", " ")),
		}
	}
	// No partial structured extraction: the name falls back to title only.
	return types.Metadata{Title: underscoresToTitle(cleaned)}
}

// parsePartial best-effort extracts author+year from a 2-3 segment name,
// in either segment order.
func parsePartial(cleaned string, parts []string) types.Metadata {
	var md types.Metadata

	first, second := parts[0], parts[1]
	if y, err := strconv.Atoi(second); err == nil && validYear(y) && ValidAuthor(first) {
		md.Author, md.Year = first, y
	} else if y, err := strconv.Atoi(first); err == nil && validYear(y) && ValidAuthor(second) {
		md.Author, md.Year = second, y
	}

	if md.Year == 0 {
		md.Title = underscoresToTitle(cleaned)
		return md
	}
	if len(parts) > 2 {
		md.Title = collapseSpaces(strings.ReplaceAll(strings.Join(parts[2:], " "), "-", " "))
	}
	return md
}

func underscoresToTitle(s string) string {
	return collapseSpaces(strings.ReplaceAll(s, "_", " "))
}

var spacesRe = regexp.MustCompile(`\s+`)

func collapseSpaces(s string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}
