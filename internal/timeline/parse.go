// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package timeline parses curated reference documents into structured
// chronological entries. The grammar is paragraph-oriented: a header line
// "YEAR - Author, Journal", an optional title paragraph, and an optional
// description paragraph.
package timeline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/broepke/ortho-catalog/pkg/types"
)

// headerRe matches "1954 - Verbiest, JBJS" with ASCII, en, or em dashes.
// Star decorations after the journal are stripped separately.
var headerRe = regexp.MustCompile(`^(\d{4})\s*[-–—]\s*([^,]+),\s*([A-Za-z0-9\s&]+)`)

// headerPrefixRe is the cheap "is this a header" test, always evaluated
// before consuming a line as title or description.
var headerPrefixRe = regexp.MustCompile(`^\d{4}\s*[-–—]`)

var (
	numericOnlyRe = regexp.MustCompile(`^\d+$`)
	decorationRe  = regexp.MustCompile(`[⭐\s]+$`)
)

const descriptionMinLen = 20

// parseState names the positions of the paragraph state machine.
type parseState int

const (
	awaitHeader parseState = iota
	haveHeader
	haveTitle
)

type header struct {
	year    int
	author  string
	journal string
}

func parseHeader(line string) (header, bool) {
	m := headerRe.FindStringSubmatch(line)
	if m == nil {
		return header{}, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return header{}, false
	}
	return header{
		year:    year,
		author:  strings.TrimSpace(m[2]),
		journal: decorationRe.ReplaceAllString(strings.TrimSpace(m[3]), ""),
	}, true
}

// Parse walks the paragraph sequence and produces entries in source order.
// A header immediately followed by another header is discarded (no title).
// Descriptions must be longer than descriptionMinLen and not purely
// numeric. DisplayOrder increments per emitted entry.
func Parse(paragraphs []string, subspecialty types.Subspecialty) []types.TimelineEntry {
	var entries []types.TimelineEntry

	state := awaitHeader
	var current header
	var title string
	displayOrder := 0

	emit := func(description string) {
		if title == "" || numericOnlyRe.MatchString(title) {
			return
		}
		entries = append(entries, types.TimelineEntry{
			Year:         current.year,
			Author:       current.author,
			Journal:      current.journal,
			Title:        title,
			Description:  description,
			Subspecialty: subspecialty,
			DisplayOrder: displayOrder,
		})
		displayOrder++
	}

	for _, para := range paragraphs {
		line := strings.TrimSpace(para)
		if line == "" {
			continue
		}

		// The header test runs first in every state so a new header is
		// never mis-consumed as a title or description.
		if h, ok := parseHeader(line); ok {
			if state == haveTitle {
				emit("")
			}
			current = h
			title = ""
			state = haveHeader
			continue
		}

		switch state {
		case awaitHeader:
			// Prose before the first header is ignored.
		case haveHeader:
			title = line
			state = haveTitle
		case haveTitle:
			if len(line) > descriptionMinLen && !numericOnlyRe.MatchString(line) && !headerPrefixRe.MatchString(line) {
				emit(line)
			} else {
				emit("")
			}
			state = awaitHeader
			title = ""
		}
	}

	if state == haveTitle {
		emit("")
	}

	return entries
}
