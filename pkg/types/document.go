// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the catalog pipeline:
// document records, extracted metadata, rename proposals, timeline entries,
// duplicate groups, and per-stage configuration.
package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Subspecialty is a closed categorical tag used for filing documents and
// for duplicate-resolution priority. Values are validated at the boundary
// with ParseSubspecialty.
type Subspecialty string

const (
	SubFootAndAnkle     Subspecialty = "FOOT_AND_ANKLE"
	SubHand             Subspecialty = "HAND"
	SubHipAndKnee       Subspecialty = "HIP_AND_KNEE"
	SubShoulderAndElbow Subspecialty = "SHOULDER_AND_ELBOW"
	SubSpine            Subspecialty = "SPINE"
	SubSportsMedicine   Subspecialty = "SPORTS_MEDICINE"
	SubTrauma           Subspecialty = "TRAUMA"
	SubOncology         Subspecialty = "ONCOLOGY"
	SubPediatrics       Subspecialty = "PEDIATRICS"
	SubGeneral          Subspecialty = "GENERAL"
)

// AllSubspecialties lists every valid Subspecialty value.
var AllSubspecialties = []Subspecialty{
	SubFootAndAnkle, SubHand, SubHipAndKnee, SubShoulderAndElbow,
	SubSpine, SubSportsMedicine, SubTrauma, SubOncology, SubPediatrics,
	SubGeneral,
}

// ParseSubspecialty validates a raw string (case-insensitive, dashes
// accepted for underscores) against the closed set.
func ParseSubspecialty(s string) (Subspecialty, error) {
	norm := Subspecialty(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	for _, sub := range AllSubspecialties {
		if norm == sub {
			return sub, nil
		}
	}
	return "", fmt.Errorf("unknown subspecialty %q", s)
}

// folderSubspecialties maps library folder names to subspecialties. Folder
// naming in the source collection is inconsistent, hence the variants.
var folderSubspecialties = map[string]Subspecialty{
	"foot and ankle":     SubFootAndAnkle,
	"foot_and_ankle":     SubFootAndAnkle,
	"footandankle":       SubFootAndAnkle,
	"hand":               SubHand,
	"hip and knee":       SubHipAndKnee,
	"hip_and_knee":       SubHipAndKnee,
	"hipandknee":         SubHipAndKnee,
	"hip":                SubHipAndKnee,
	"knee":               SubHipAndKnee,
	"shoulder and elbow": SubShoulderAndElbow,
	"shoulder_and_elbow": SubShoulderAndElbow,
	"shoulderandelbow":   SubShoulderAndElbow,
	"shoulder":           SubShoulderAndElbow,
	"elbow":              SubShoulderAndElbow,
	"spine":              SubSpine,
	"sports medicine":    SubSportsMedicine,
	"sports_medicine":    SubSportsMedicine,
	"sportsmedicine":     SubSportsMedicine,
	"sports":             SubSportsMedicine,
	"trauma":             SubTrauma,
	"oncology":           SubOncology,
	"pediatrics":         SubPediatrics,
	"pediatric":          SubPediatrics,
	"general":            SubGeneral,
}

// SubspecialtyFromPath walks the path components of relPath and returns the
// first folder that maps to a subspecialty, or SubGeneral.
func SubspecialtyFromPath(relPath string) Subspecialty {
	for _, part := range strings.Split(filepath.ToSlash(relPath), "/") {
		if sub, ok := folderSubspecialties[strings.ToLower(part)]; ok {
			return sub
		}
	}
	return SubGeneral
}

// dedupePriority ranks subspecialties for duplicate resolution: lower is
// preferred. Specialty folders outrank the GENERAL catch-all.
var dedupePriority = map[Subspecialty]int{
	SubTrauma:           1,
	SubHand:             2,
	SubFootAndAnkle:     3,
	SubShoulderAndElbow: 4,
	SubHipAndKnee:       5,
	SubSpine:            6,
	SubSportsMedicine:   7,
	SubPediatrics:       8,
	SubOncology:         9,
	SubGeneral:          10,
}

// PriorityRank returns the duplicate-resolution rank for s. Unknown values
// rank last.
func (s Subspecialty) PriorityRank() int {
	if r, ok := dedupePriority[s]; ok {
		return r
	}
	return 99
}

// DocumentType classifies a catalog entry by its role in the collection.
type DocumentType string

const (
	TypeArticle      DocumentType = "ARTICLE"
	TypeTextbook     DocumentType = "TEXTBOOK"
	TypePresentation DocumentType = "PRESENTATION"
	TypeResearch     DocumentType = "RESEARCH"
)

// ClassifyDocument maps a filename and its library-relative path to a
// DocumentType using extension and folder hints.
func ClassifyDocument(filename, relPath string) DocumentType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pptx", ".ppt":
		return TypePresentation
	}
	lower := strings.ToLower(relPath)
	switch {
	case strings.Contains(lower, "textbook"):
		return TypeTextbook
	case strings.Contains(lower, "presentation"):
		return TypePresentation
	case strings.Contains(lower, "research"):
		return TypeResearch
	}
	return TypeArticle
}

// Document is a catalog record for one file in the library.
type Document struct {
	// ID is the catalog row identifier, assigned by the store.
	ID int64 `json:"id" yaml:"id"`

	// Filename is the current on-disk name, without directories.
	Filename string `json:"filename" yaml:"filename"`

	// FilePath is the path relative to the library root.
	FilePath string `json:"file_path" yaml:"file_path"`

	// Size is the file size in bytes.
	Size int64 `json:"size" yaml:"size"`

	// Title, Author, Year, Journal hold inferred bibliographic metadata.
	// Zero values mean "not known".
	Title   string `json:"title" yaml:"title"`
	Author  string `json:"author,omitempty" yaml:"author,omitempty"`
	Year    int    `json:"year,omitempty" yaml:"year,omitempty"`
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	Subspecialty Subspecialty `json:"subspecialty" yaml:"subspecialty"`
	Type         DocumentType `json:"type" yaml:"type"`
}
