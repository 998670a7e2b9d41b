// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/broepke/ortho-catalog/pkg/types"
)

// csvHeader is the review-spreadsheet column order. Status comes first so
// a reviewer can triage by editing the leftmost column.
var csvHeader = []string{
	"status", "confidence", "level", "subspecialty",
	"current_path", "suggested_filename",
	"author", "year", "journal", "title",
}

// WriteReviewCSV writes the spreadsheet-facing review artifact. It holds
// the decision columns only; the YAML detail file carries the full
// per-source breakdown.
func WriteReviewCSV(path string, proposals []types.RenameProposal) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating review CSV %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, p := range proposals {
		year := ""
		if p.Merged.Year != 0 {
			year = strconv.Itoa(p.Merged.Year)
		}
		record := []string{
			string(p.Status),
			fmt.Sprintf("%.2f", p.Confidence.Score),
			string(p.Confidence.Level),
			string(p.Subspecialty),
			p.CurrentPath,
			p.SuggestedName,
			p.Merged.Author,
			year,
			p.Merged.Journal,
			p.Merged.Title,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", p.CurrentPath, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing review CSV: %w", err)
	}
	return nil
}

// ReadReviewCSV reads back a reviewed spreadsheet. Only the status and
// path columns are consulted; everything else is display data.
func ReadReviewCSV(path string) (map[string]types.ProposalStatus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening review CSV %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing review CSV %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("review CSV %s is empty", path)
	}

	statusCol, pathCol := -1, -1
	for i, name := range records[0] {
		switch name {
		case "status":
			statusCol = i
		case "current_path":
			pathCol = i
		}
	}
	if statusCol < 0 || pathCol < 0 {
		return nil, fmt.Errorf("review CSV %s missing status or current_path column", path)
	}

	statuses := make(map[string]types.ProposalStatus, len(records)-1)
	for _, record := range records[1:] {
		if len(record) <= statusCol || len(record) <= pathCol {
			continue
		}
		statuses[record[pathCol]] = types.ProposalStatus(record[statusCol])
	}
	return statuses, nil
}

// reviewFile is the YAML detail artifact.
type reviewFile struct {
	Proposals []types.RenameProposal `yaml:"proposals"`
}

// WriteReviewYAML writes the full proposal records, including per-source
// metadata and text previews, for inspection and for the apply stage.
func WriteReviewYAML(path string, proposals []types.RenameProposal) error {
	data, err := yaml.Marshal(reviewFile{Proposals: proposals})
	if err != nil {
		return fmt.Errorf("marshalling proposals: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing review YAML %s: %w", path, err)
	}
	return nil
}

// ReadReviewYAML reads the proposal detail file back.
func ReadReviewYAML(path string) ([]types.RenameProposal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading review YAML %s: %w", path, err)
	}
	var rf reviewFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing review YAML %s: %w", path, err)
	}
	return rf.Proposals, nil
}

// MergeStatuses copies reviewer decisions from the CSV back onto the full
// proposal records, keyed by current path.
func MergeStatuses(proposals []types.RenameProposal, statuses map[string]types.ProposalStatus) {
	for i := range proposals {
		if status, ok := statuses[proposals[i].CurrentPath]; ok && status != "" {
			proposals[i].Status = status
		}
	}
}
