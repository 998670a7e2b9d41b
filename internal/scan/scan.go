// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/broepke/ortho-catalog/internal/content"
	"github.com/broepke/ortho-catalog/internal/filename"
	"github.com/broepke/ortho-catalog/internal/metadata"
	"github.com/broepke/ortho-catalog/internal/pdftext"
	"github.com/broepke/ortho-catalog/pkg/types"
)

const (
	defaultWorkers = 4
	previewChars   = 200
)

// TitleLookup resolves a title against an external bibliographic source.
// ok is false when no trustworthy record was found.
type TitleLookup interface {
	Lookup(ctx context.Context, title string) (types.Metadata, bool, error)
}

// Scanner produces rename proposals for library files.
type Scanner struct {
	Root      string
	Workers   int
	Extractor pdftext.Extractor

	// Lookup is optional; nil disables external enrichment.
	Lookup TitleLookup
}

// Summary aggregates one scan run.
type Summary struct {
	Scanned      int
	TextFailures int
	ByLevel      map[types.ConfidenceLevel]int
	BySub        map[types.Subspecialty]int
}

// Scan infers metadata for every file concurrently and returns the
// proposals in library-path order. Text-extraction failures degrade to
// filename-only proposals rather than aborting the run.
func (s *Scanner) Scan(ctx context.Context, files []File, w io.Writer) ([]types.RenameProposal, Summary, error) {
	workers := s.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	type job struct {
		index int
		file  File
	}
	type outcome struct {
		index      int
		proposal   types.RenameProposal
		textFailed bool
	}

	jobs := make(chan job)
	results := make(chan outcome, len(files))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				proposal, textFailed := s.propose(ctx, j.file)
				results <- outcome{index: j.index, proposal: proposal, textFailed: textFailed}
			}
		}()
	}

	go func() {
		for i, f := range files {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			case jobs <- job{index: i, file: f}:
			}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	summary := Summary{
		ByLevel: make(map[types.ConfidenceLevel]int),
		BySub:   make(map[types.Subspecialty]int),
	}
	proposals := make([]types.RenameProposal, 0, len(files))
	for r := range results {
		proposals = append(proposals, r.proposal)
		summary.Scanned++
		if r.textFailed {
			summary.TextFailures++
		}
		summary.ByLevel[r.proposal.Confidence.Level]++
		summary.BySub[r.proposal.Subspecialty]++
		fmt.Fprintf(w, "%-6s %s -> %s\n",
			r.proposal.Confidence.Level, r.proposal.CurrentFilename, r.proposal.SuggestedName)
	}
	if err := ctx.Err(); err != nil {
		return nil, Summary{}, err
	}

	sort.Slice(proposals, func(i, j int) bool {
		return proposals[i].CurrentPath < proposals[j].CurrentPath
	})

	fmt.Fprintf(w, "\nScanned %d files: %d high, %d medium, %d low confidence (%d without page text)\n",
		summary.Scanned, summary.ByLevel[types.ConfidenceHigh],
		summary.ByLevel[types.ConfidenceMedium], summary.ByLevel[types.ConfidenceLow],
		summary.TextFailures)
	return proposals, summary, nil
}

// propose runs the full inference chain for one file: filename parse,
// page-text extraction, optional external lookup, merge, and canonical
// name generation.
func (s *Scanner) propose(ctx context.Context, f File) (types.RenameProposal, bool) {
	fromFilename := filename.Parse(f.Name)

	var fromContent types.Metadata
	var preview string
	var textFailed bool
	if s.Extractor != nil {
		text, err := s.Extractor.ExtractText(filepath.Join(s.Root, f.Path))
		if err != nil {
			textFailed = true
			preview = fmt.Sprintf("[text extraction failed: %v]", err)
		} else {
			fromContent = content.Extract(text)
			preview = pdftext.Preview(text, previewChars)
		}
	}

	var fromLookup types.Metadata
	if s.Lookup != nil {
		queryTitle := fromContent.Title
		if queryTitle == "" {
			queryTitle = fromFilename.Title
		}
		if md, ok, err := s.lookupTitle(ctx, queryTitle); err == nil && ok {
			fromLookup = md
		}
	}

	merged := metadata.Merge(fromLookup, fromFilename, fromContent)
	confidence := metadata.Score(merged)

	return types.RenameProposal{
		CurrentFilename: f.Name,
		CurrentPath:     f.Path,
		Subspecialty:    f.Subspecialty,
		Merged:          merged,
		FromFilename:    fromFilename,
		FromContent:     fromContent,
		FromLookup:      fromLookup,
		SuggestedName:   filename.Generate(merged) + strings.ToLower(filepath.Ext(f.Name)),
		Confidence:      confidence,
		Status:          types.StatusPending,
		TextPreview:     preview,
	}, textFailed
}

func (s *Scanner) lookupTitle(ctx context.Context, title string) (types.Metadata, bool, error) {
	if title == "" {
		return types.Metadata{}, false, nil
	}
	return s.Lookup.Lookup(ctx, title)
}
