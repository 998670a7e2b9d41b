// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journals

import "testing"

func TestKnownAbbrev(t *testing.T) {
	tests := []struct {
		token string
		want  string
		ok    bool
	}{
		{"JAAOS", "JAAOS", true},
		{"jaaos", "JAAOS", true},
		{"SPINE", "Spine", true},
		{" JBJS ", "JBJS", true},
		{"handclin", "HandClin", true},
		{"Nature", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := KnownAbbrev(tt.token)
		if ok != tt.ok || got != tt.want {
			t.Errorf("KnownAbbrev(%q) = (%q, %v), want (%q, %v)", tt.token, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFindInFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"rotator cuff repair JSES 2015", "JSES"},
		{"Some_Title_With_JBJS_Inside", "JBJS"},
		{"distal-radius-CORR-review", "CORR"},
		{"nothing matches here", ""},
		// Substrings inside words must not match.
		{"subscapularis tear", ""},
	}
	for _, tt := range tests {
		if got := FindInFilename(tt.filename); got != tt.want {
			t.Errorf("FindInFilename(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

// Hand Clinics text must resolve to HandClin even though the CORR phrase
// table also contains "clin" variants; order in ContentAliases enforces
// this.
func TestContentAliasOrder(t *testing.T) {
	var handIdx, corrIdx int
	for i, alias := range ContentAliases {
		if alias.Abbrev == "HandClin" && handIdx == 0 {
			handIdx = i
		}
		if alias.Abbrev == "CORR" && corrIdx == 0 {
			corrIdx = i
		}
	}
	if handIdx > corrIdx {
		t.Errorf("HandClin (index %d) must precede CORR (index %d)", handIdx, corrIdx)
	}
}

func TestAbbreviateFullName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Journal of Bone and Joint Surgery", "JBJS"},
		{"The Spine Journal", "SpineJ"},
		{"American Journal of Sports Medicine", "AJSM"},
		{"", ""},
		// Phrase scan over the content table.
		{"Foot and Ankle International Vol 12", "FAI"},
		// Initials-style fallback for unknown multi-word names.
		{"Journal of Experimental Orthopaedics", "JouExpOrt"},
	}
	for _, tt := range tests {
		if got := AbbreviateFullName(tt.name); got != tt.want {
			t.Errorf("AbbreviateFullName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
