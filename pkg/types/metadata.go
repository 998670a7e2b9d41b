// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Metadata holds the four bibliographic fields the pipeline infers for a
// document. Zero values mean the field was not found. A Metadata value is
// created fresh by each extraction source and never mutated afterwards.
type Metadata struct {
	Author  string `json:"author,omitempty" yaml:"author,omitempty"`
	Year    int    `json:"year,omitempty" yaml:"year,omitempty"`
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
}

// IsEmpty reports whether no field was found.
func (m Metadata) IsEmpty() bool {
	return m.Author == "" && m.Year == 0 && m.Journal == "" && m.Title == ""
}

// ConfidenceLevel buckets a continuous extraction-completeness score.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Confidence is the completeness score for a merged metadata record.
// Score measures how many fields were extracted, not whether they are
// correct.
type Confidence struct {
	Score float64         `json:"score" yaml:"score"`
	Level ConfidenceLevel `json:"level" yaml:"level"`
}

// ProposalStatus tracks a rename proposal through review and application.
// The scan stage creates proposals as pending; human review flips them to
// approved or skip; the apply stage transitions approved records to a
// terminal applied, error, or skipped state.
type ProposalStatus string

const (
	StatusPending  ProposalStatus = "pending"
	StatusApproved ProposalStatus = "approved"
	StatusSkip     ProposalStatus = "skip"
	StatusApplied  ProposalStatus = "applied"
	StatusError    ProposalStatus = "error"
	StatusSkipped  ProposalStatus = "skipped"
)

// RenameProposal is one row of the reviewable scan output: the current
// file, the metadata inferred for it, and the suggested canonical name.
type RenameProposal struct {
	CurrentFilename string          `json:"current_filename" yaml:"current_filename"`
	CurrentPath     string          `json:"current_path" yaml:"current_path"`
	Subspecialty    Subspecialty    `json:"subspecialty" yaml:"subspecialty"`
	Merged          Metadata        `json:"merged" yaml:"merged"`
	FromFilename    Metadata        `json:"from_filename" yaml:"from_filename"`
	FromContent     Metadata        `json:"from_content" yaml:"from_content"`
	FromLookup      Metadata        `json:"from_lookup,omitempty" yaml:"from_lookup,omitempty"`
	SuggestedName   string          `json:"suggested_filename" yaml:"suggested_filename"`
	Confidence      Confidence      `json:"confidence" yaml:"confidence"`
	Status          ProposalStatus  `json:"status" yaml:"status"`
	TextPreview     string          `json:"text_preview,omitempty" yaml:"text_preview,omitempty"`
}

// TimelineEntry is a curated record of a historically significant
// publication, parsed from a reference document. DisplayOrder preserves
// source ordering within one document; there is no cross-document order.
type TimelineEntry struct {
	ID           int64        `json:"id" yaml:"id"`
	Year         int          `json:"year" yaml:"year"`
	Author       string       `json:"author" yaml:"author"`
	Journal      string       `json:"journal" yaml:"journal"`
	Title        string       `json:"title" yaml:"title"`
	Description  string       `json:"description,omitempty" yaml:"description,omitempty"`
	Subspecialty Subspecialty `json:"subspecialty" yaml:"subspecialty"`
	DisplayOrder int          `json:"display_order" yaml:"display_order"`

	// MatchedDocumentID links the entry to a catalog document, zero when
	// unmatched. MatchConfidence is only meaningful when matched.
	MatchedDocumentID int64   `json:"matched_document_id,omitempty" yaml:"matched_document_id,omitempty"`
	MatchConfidence   float64 `json:"match_confidence,omitempty" yaml:"match_confidence,omitempty"`
}

// MatchResult links one timeline entry to its best catalog candidate. A
// document may be the target of any number of entries; an entry has at
// most one result.
type MatchResult struct {
	EntryID    int64   `json:"entry_id" yaml:"entry_id"`
	DocumentID int64   `json:"document_id" yaml:"document_id"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// DuplicateGroupType identifies which equivalence signal formed a group.
type DuplicateGroupType string

const (
	GroupExactFilename     DuplicateGroupType = "exact_filename"
	GroupSuggestedFilename DuplicateGroupType = "suggested_filename"
	GroupContentHash       DuplicateGroupType = "content_hash"
)

// DuplicateFile is one member of a duplicate group. Exactly one file per
// group carries Keep=true.
type DuplicateFile struct {
	Path         string       `json:"path" yaml:"path"`
	FullPath     string       `json:"full_path" yaml:"full_path"`
	Subspecialty Subspecialty `json:"subspecialty" yaml:"subspecialty"`
	Size         int64        `json:"size" yaml:"size"`
	Keep         bool         `json:"keep" yaml:"keep"`
	Reason       string       `json:"reason" yaml:"reason"`
}

// DuplicateGroup is a set of files judged equivalent under one signal.
type DuplicateGroup struct {
	Key   string             `json:"key" yaml:"key"`
	Type  DuplicateGroupType `json:"type" yaml:"type"`
	Files []DuplicateFile    `json:"files" yaml:"files"`
}
