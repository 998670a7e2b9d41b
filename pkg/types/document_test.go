// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "testing"

func TestParseSubspecialty(t *testing.T) {
	tests := []struct {
		in      string
		want    Subspecialty
		wantErr bool
	}{
		{"TRAUMA", SubTrauma, false},
		{"trauma", SubTrauma, false},
		{"foot-and-ankle", SubFootAndAnkle, false},
		{" hip_and_knee ", SubHipAndKnee, false},
		{"cardiology", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSubspecialty(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSubspecialty(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSubspecialty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSubspecialtyFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Subspecialty
	}{
		{"Shoulder and Elbow/rotator_cuff.pdf", SubShoulderAndElbow},
		{"Sports Medicine/acl/graft.pdf", SubSportsMedicine},
		{"trauma/2001_Rowe_JAAOS_DISH.pdf", SubTrauma},
		{"misc/unsorted.pdf", SubGeneral},
		{"knee/tka.pdf", SubHipAndKnee},
	}
	for _, tt := range tests {
		if got := SubspecialtyFromPath(tt.path); got != tt.want {
			t.Errorf("SubspecialtyFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestPriorityRank(t *testing.T) {
	if SubTrauma.PriorityRank() >= SubGeneral.PriorityRank() {
		t.Errorf("TRAUMA rank %d should beat GENERAL rank %d",
			SubTrauma.PriorityRank(), SubGeneral.PriorityRank())
	}
	if Subspecialty("BOGUS").PriorityRank() != 99 {
		t.Errorf("unknown subspecialty should rank last, got %d", Subspecialty("BOGUS").PriorityRank())
	}
	seen := map[int]Subspecialty{}
	for _, sub := range AllSubspecialties {
		r := sub.PriorityRank()
		if prev, dup := seen[r]; dup {
			t.Errorf("rank %d shared by %s and %s", r, prev, sub)
		}
		seen[r] = sub
	}
}

func TestClassifyDocument(t *testing.T) {
	tests := []struct {
		filename string
		relPath  string
		want     DocumentType
	}{
		{"slides.pptx", "Trauma/slides.pptx", TypePresentation},
		{"chapter.pdf", "Textbooks/chapter.pdf", TypeTextbook},
		{"talk.pdf", "Hand/Presentations/talk.pdf", TypePresentation},
		{"study.pdf", "Spine/Research/study.pdf", TypeResearch},
		{"2001_Rowe_JAAOS_DISH.pdf", "Trauma/2001_Rowe_JAAOS_DISH.pdf", TypeArticle},
	}
	for _, tt := range tests {
		if got := ClassifyDocument(tt.filename, tt.relPath); got != tt.want {
			t.Errorf("ClassifyDocument(%q, %q) = %q, want %q", tt.filename, tt.relPath, got, tt.want)
		}
	}
}
