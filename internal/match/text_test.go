// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Rotator-Cuff Repair!", "rotatorcuff repair"},
		{"  Multiple   spaces  ", "multiple spaces"},
		{"MiXeD CaSe", "mixed case"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"The treatment of fractures", []string{"treat", "fracture"}},
		{"Rupture and ruptures", []string{"rupture"}},
		{"a of in", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if got := Keywords(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Keywords(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTitleSimilarity(t *testing.T) {
	if got := TitleSimilarity("Rupture of the Achilles tendon", "Achilles tendon rupture"); got != 1.0 {
		t.Errorf("identical keyword sets should score 1.0, got %v", got)
	}
	if got := TitleSimilarity("Achilles tendon rupture", "Total knee arthroplasty"); got != 0 {
		t.Errorf("disjoint titles should score 0, got %v", got)
	}
	if got := TitleSimilarity("", "anything at all"); got != 0 {
		t.Errorf("empty side should score 0, got %v", got)
	}
	partial := TitleSimilarity("Achilles tendon rupture repair", "Achilles tendon lengthening")
	if partial <= 0 || partial >= 1 {
		t.Errorf("partial overlap should land strictly between 0 and 1, got %v", partial)
	}
}

func TestAuthorMatches(t *testing.T) {
	tests := []struct {
		name        string
		refAuthor   string
		docAuthor   string
		docFilename string
		want        bool
	}{
		{"surname in author field", "Maffulli", "Maffulli N", "", true},
		{"surname in filename only", "Rowe CR", "", "1956_Rowe_JBJS_Prognosis.pdf", true},
		{"comma form", "Neer, Charles", "Neer", "", true},
		{"no match", "Maffulli", "Rowe", "1956_Rowe_JBJS_Prognosis.pdf", false},
		{"short surname rejected", "Ng", "Ng", "Ng.pdf", false},
		{"empty", "", "Rowe", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authorMatches(tt.refAuthor, tt.docAuthor, tt.docFilename); got != tt.want {
				t.Errorf("authorMatches(%q, %q, %q) = %v, want %v",
					tt.refAuthor, tt.docAuthor, tt.docFilename, got, tt.want)
			}
		})
	}
}

func TestJournalMatches(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		docText string
		want    bool
	}{
		{"direct containment", "JBJS", "1956_Rowe_JBJS_Prognosis", true},
		{"alias expansion", "JBJS", "journal of bone and joint surgery vol 38", true},
		{"label variant resolves", "Journal of Bone and Joint Surgery", "filed under jbjs reprints", true},
		{"no relation", "AJSM", "european spine journal", false},
		{"empty ref", "", "anything", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := journalMatches(tt.ref, tt.docText); got != tt.want {
				t.Errorf("journalMatches(%q, %q) = %v, want %v", tt.ref, tt.docText, got, tt.want)
			}
		})
	}
}
