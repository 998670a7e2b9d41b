// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filename

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/broepke/ortho-catalog/internal/journals"
	"github.com/broepke/ortho-catalog/pkg/types"
)

const (
	unknownToken = "Unknown"
	untitled     = "Untitled"

	titleMaxLen      = 50
	titleBoundaryMin = 30
)

// minorWords stay lowercase in title case unless they open the title.
var minorWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true, "from": true,
	"as": true, "into": true, "through": true, "during": true,
	"before": true, "after": true, "above": true, "below": true,
	"between": true, "under": true, "vs": true, "vs.": true,
}

var (
	lowerUpperRe = regexp.MustCompile(`([a-z])([A-Z])`)
	acronymRe    = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)

	// Repairs for prepositions stuck to the preceding word, visible only
	// once camel-case splitting inserts a space before the next capital:
	// "Advancesin Management" -> "Advances in Management".
	stuckPrepositionRes = []*regexp.Regexp{
		regexp.MustCompile(`(\w+)in (?:[A-Z])`),
		regexp.MustCompile(`(\w+)of (?:[A-Z])`),
		regexp.MustCompile(`(\w+)and (?:[A-Z])`),
		regexp.MustCompile(`(\w+)the (?:[A-Z])`),
		regexp.MustCompile(`(\w+)for (?:[A-Z])`),
		regexp.MustCompile(`(\w+)with (?:[A-Z])`),
	}
	stuckPrepositions = []string{"in", "of", "and", "the", "for", "with"}
)

// splitCamelCase inserts word breaks at case transitions and repairs
// stuck-together prepositions preceding a capital letter.
func splitCamelCase(text string) string {
	result := lowerUpperRe.ReplaceAllString(text, "$1 $2")
	result = acronymRe.ReplaceAllString(result, "$1 $2")

	for i, re := range stuckPrepositionRes {
		prep := stuckPrepositions[i]
		result = re.ReplaceAllStringFunc(result, func(m string) string {
			head := m[:len(m)-len(prep)-2] // word before the stuck preposition
			tail := m[len(m)-1:]           // the capital that follows
			return head + " " + prep + " " + tail
		})
	}
	return result
}

// toTitleCase capitalizes major words; minor words stay lowercase except
// in first position.
func toTitleCase(text string) string {
	words := strings.Split(text, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		lower := strings.ToLower(word)
		if i == 0 || !minorWords[lower] {
			words[i] = strings.ToUpper(lower[:1]) + lower[1:]
		} else {
			words[i] = lower
		}
	}
	return strings.Join(words, " ")
}

// Generate builds the canonical filename Year_Author_Journal_Title from
// merged metadata. The result carries no extension; callers append one.
// Missing fields render as "Unknown" (title as "Untitled"). Generation is
// deterministic and idempotent under re-parsing for well-formed names.
func Generate(md types.Metadata) string {
	yearPart := unknownToken
	if md.Year != 0 {
		yearPart = strconv.Itoa(md.Year)
	}
	authorPart := md.Author
	if authorPart == "" {
		authorPart = unknownToken
	}
	journalPart := md.Journal
	if journalPart == "" {
		journalPart = unknownToken
	}

	titlePart := md.Title
	if titlePart == "" {
		titlePart = untitled
	}

	titlePart = splitCamelCase(titlePart)
	for char, replacement := range journals.FilenameReplacements {
		titlePart = strings.ReplaceAll(titlePart, char, replacement)
	}
	titlePart = collapseSpaces(titlePart)
	titlePart = toTitleCase(titlePart)

	// Truncate on rune boundaries so a multi-byte character at the limit
	// never leaves invalid UTF-8 in the filename.
	if runes := []rune(titlePart); len(runes) > titleMaxLen {
		titlePart = string(runes[:titleMaxLen])
		if lastSpace := strings.LastIndex(titlePart, " "); lastSpace > titleBoundaryMin {
			titlePart = titlePart[:lastSpace]
		}
	}

	return yearPart + "_" + authorPart + "_" + journalPart + "_" + titlePart
}
