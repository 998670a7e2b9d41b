// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts the leading text of PDF documents with
// pluggable backends. Metadata heuristics only need the first pages, so
// extractors stop early instead of rendering whole files.
package pdftext

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// FirstPages is how many leading pages backends extract. Author, year,
// journal, and title all live on the first page or two of an article.
const FirstPages = 2

// Extractor pulls plain text from a PDF file. Different backends
// (pdftotext, a container image) implement this interface.
type Extractor interface {
	// ExtractText reads the PDF at path and returns its leading text.
	ExtractText(path string) (string, error)
}

// NewExtractor selects a backend by name. An empty name picks pdftotext.
func NewExtractor(backend string) (Extractor, error) {
	switch backend {
	case "", "pdftotext":
		return NewPdftotextExtractor()
	case "container":
		return NewContainerExtractor("")
	default:
		return nil, fmt.Errorf("unknown text backend %q", backend)
	}
}

// PdftotextExtractor shells out to the poppler pdftotext binary.
type PdftotextExtractor struct {
	binary string
}

// NewPdftotextExtractor verifies that pdftotext is on PATH before
// returning.
func NewPdftotextExtractor() (*PdftotextExtractor, error) {
	bin, err := exec.LookPath("pdftotext")
	if err != nil {
		return nil, fmt.Errorf("pdftotext not found on PATH: %w", err)
	}
	return &PdftotextExtractor{binary: bin}, nil
}

// ExtractText renders the first pages of the PDF to plain text.
func (p *PdftotextExtractor) ExtractText(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}

	out, err := exec.Command(p.binary, "-l", fmt.Sprint(FirstPages), "-q", path, "-").Output()
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", path, err)
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", fmt.Errorf("pdftotext produced empty output for %s", path)
	}
	return text, nil
}

// Preview returns the first n characters of text for review artifacts,
// collapsed to a single line.
func Preview(text string, n int) string {
	oneLine := strings.Join(strings.Fields(text), " ")
	if len(oneLine) > n {
		oneLine = oneLine[:n]
	}
	return oneLine
}
