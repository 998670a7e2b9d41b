// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package timeline

import (
	"testing"

	"github.com/broepke/ortho-catalog/pkg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		paragraphs []string
		want       []types.TimelineEntry
	}{
		{
			name: "header title description",
			paragraphs: []string{
				"1954 - Verbiest, JBJS",
				"Lumbar spinal stenosis described",
				"First systematic description of neurogenic claudication from a narrowed canal.",
			},
			want: []types.TimelineEntry{{
				Year: 1954, Author: "Verbiest", Journal: "JBJS",
				Title:       "Lumbar spinal stenosis described",
				Description: "First systematic description of neurogenic claudication from a narrowed canal.",
			}},
		},
		{
			name: "header and title only",
			paragraphs: []string{
				"2001 - Rowe, JAAOS",
				"Prognosis of dislocations of the shoulder",
			},
			want: []types.TimelineEntry{{
				Year: 2001, Author: "Rowe", Journal: "JAAOS",
				Title: "Prognosis of dislocations of the shoulder",
			}},
		},
		{
			name: "consecutive headers discard the first",
			paragraphs: []string{
				"1954 - Verbiest, JBJS",
				"1962 - Harrington, JBJS",
				"Instrumentation for scoliosis correction",
			},
			want: []types.TimelineEntry{{
				Year: 1962, Author: "Harrington", Journal: "JBJS",
				Title: "Instrumentation for scoliosis correction",
			}},
		},
		{
			name: "en dash and star decoration",
			paragraphs: []string{
				"1973 – Neer, JBJS ⭐",
				"Replacement arthroplasty for glenohumeral arthritis",
			},
			want: []types.TimelineEntry{{
				Year: 1973, Author: "Neer", Journal: "JBJS",
				Title: "Replacement arthroplasty for glenohumeral arthritis",
			}},
		},
		{
			name: "short line after title is not a description",
			paragraphs: []string{
				"1954 - Verbiest, JBJS",
				"Lumbar spinal stenosis described",
				"page 4",
			},
			want: []types.TimelineEntry{{
				Year: 1954, Author: "Verbiest", Journal: "JBJS",
				Title: "Lumbar spinal stenosis described",
			}},
		},
		{
			name: "numeric title rejected",
			paragraphs: []string{
				"1954 - Verbiest, JBJS",
				"1234",
			},
			want: nil,
		},
		{
			name:       "prose before first header ignored",
			paragraphs: []string{"Landmark papers of the spine.", "Compiled 2019."},
			want:       nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.paragraphs, types.SubSpine)
			if len(got) != len(tt.want) {
				t.Fatalf("Parse() returned %d entries, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				want := tt.want[i]
				want.Subspecialty = types.SubSpine
				want.DisplayOrder = i
				if got[i] != want {
					t.Errorf("entry %d = %+v, want %+v", i, got[i], want)
				}
			}
		})
	}
}

func TestParseDisplayOrder(t *testing.T) {
	paragraphs := []string{
		"1954 - Verbiest, JBJS",
		"First landmark title",
		"1962 - Harrington, JBJS",
		"Second landmark title",
		"1990 - Weinstein, Spine",
		"Third landmark title",
	}
	entries := Parse(paragraphs, types.SubSpine)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, e := range entries {
		if e.DisplayOrder != i {
			t.Errorf("entry %d has DisplayOrder %d", i, e.DisplayOrder)
		}
	}
}

func TestSubspecialtyFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     types.Subspecialty
	}{
		{"Shoulder and Elbow Timeline.docx", types.SubShoulderAndElbow},
		{"SPINE timeline.docx", types.SubSpine},
		{"Hip and Knee Landmark Articles.docx", types.SubHipAndKnee},
		{"landmarks.docx", types.SubGeneral},
	}
	for _, tt := range tests {
		if got := SubspecialtyFromFilename(tt.filename); got != tt.want {
			t.Errorf("SubspecialtyFromFilename(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
