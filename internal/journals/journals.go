// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journals holds the lookup tables the pipeline uses to recognize
// and normalize journal names, author suffixes, and filename characters.
// The tables are data, not logic: ordering inside them is load-bearing and
// deliberately auditable.
package journals

import (
	"regexp"
	"strings"
)

// filenameAbbrevs lists the abbreviations accepted as journal tokens in
// structured filenames. Longer, more specific entries come first so a
// whole-name scan cannot stop on a prefix of a longer abbreviation.
var filenameAbbrevs = []string{
	"JAAOS", "JBJS", "AJSM", "CORR", "JSES", "KSSTA", "BJSM",
	"NEJM", "NEMJ", "JAMA", "JTIIC", "CRMM",
	"ESJ", "TSJ", "SJ", "Spine",
	"HandClin", "Hand Clin",
	"BJPS", "AnnPlastSurg", "Ann Plast Surg", "PRS",
	"JHS", "FAI", "JOT", "BJJ", "JPO", "BMJ", "CSS",
	"Arthroscopy", "Lancet",
	"JNS", "JBJS-A", "JBJS-B", "ICL",
	"JOrthop", "J Orthopaedics",
}

var filenameAbbrevSet = func() map[string]string {
	m := make(map[string]string, len(filenameAbbrevs))
	for _, a := range filenameAbbrevs {
		m[strings.ToUpper(a)] = a
	}
	return m
}()

// KnownAbbrev reports whether token is a recognized journal abbreviation
// and returns its canonical casing ("SPINE" parses as "Spine").
func KnownAbbrev(token string) (string, bool) {
	canonical, ok := filenameAbbrevSet[strings.ToUpper(strings.TrimSpace(token))]
	return canonical, ok
}

// FindInFilename scans a whole filename for any known abbreviation at a
// word boundary (space, dash, underscore, dot, or string edge). Used as
// the last-resort journal pass when structured parsing found none.
func FindInFilename(filename string) string {
	for _, abbrev := range filenameAbbrevs {
		pattern := `(?i)(?:^|[\s_\-])` + regexp.QuoteMeta(abbrev) + `(?:[\s_\-.]|$)`
		if regexp.MustCompile(pattern).MatchString(filename) {
			return abbrev
		}
	}
	return ""
}

// Alias pairs a canonical abbreviation with the lowercase phrase variants
// that identify it in page text.
type Alias struct {
	Abbrev  string
	Phrases []string
}

// ContentAliases is the priority-ordered table for journal detection in
// extracted page text. Most-specific full names come first, bare
// abbreviation forms last. "hand clinics" must precede the CORR entry so
// "clin" in a Hand Clinics header cannot false-match Clinical Orthopaedics.
var ContentAliases = []Alias{
	{"JAnat", []string{"journal of anatomy", "j. anat.", "j.anat.", "j anat"}},
	{"JAAOS", []string{"journal of the american academy of orthopaedic surgeons", "j am acad orthop surg", "american academy of orthopaedic surgeons"}},
	{"JSES", []string{"journal of shoulder and elbow surgery", "j shoulder elbow surg", "shoulder elbow surg"}},
	{"AJSM", []string{"american journal of sports medicine", "am j sports med"}},
	{"JBJS", []string{"journal of bone and joint surgery", "j bone joint surg", "bone and joint surgery"}},
	{"HandClin", []string{"hand clinics", "hand clin"}},
	{"CORR", []string{"clinical orthopaedics and related research", "clin orthop relat res"}},
	{"Arthroscopy", []string{"arthroscopy: the journal", "arthroscopy journal", "arthroscopy the journal of arthroscopic"}},
	{"JOT", []string{"journal of orthopaedic trauma", "j orthop trauma", "orthopaedic trauma association"}},
	{"JHS", []string{"journal of hand surgery", "j hand surg"}},
	{"FAI", []string{"foot and ankle international", "foot ankle int"}},
	{"BJJ", []string{"bone and joint journal", "bone joint j"}},
	{"JArthroplasty", []string{"journal of arthroplasty", "j arthroplasty"}},
	{"JPO", []string{"journal of pediatric orthopaedics", "j pediatr orthop"}},
	{"KSSTA", []string{"knee surgery sports traumatology", "knee surg sports traumatol"}},
	{"BJSM", []string{"british journal of sports medicine", "br j sports med"}},
	{"ESJ", []string{"european spine journal", "eur spine j"}},
	{"Spine", []string{"spine journal", "the spine journal"}},
	{"NEJM", []string{"new england journal of medicine", "n engl j med"}},
	{"JAMA", []string{"journal of the american medical association"}},
	{"Lancet", []string{"the lancet", "lancet"}},
	{"BJPS", []string{"british journal of plastic surgery", "br j plast surg"}},
	{"AnnPlastSurg", []string{"annals of plastic surgery", "ann plast surg"}},
	{"PRS", []string{"plastic and reconstructive surgery", "plast reconstr surg"}},
	{"JAAOS", []string{"jaaos"}},
	{"JSES", []string{"jses"}},
	{"AJSM", []string{"ajsm"}},
	{"JBJS", []string{"jbjs"}},
	{"CORR", []string{"corr"}},
	{"JOT", []string{"jot"}},
	{"HandClin", []string{"handclin"}},
	{"BJPS", []string{"bjps"}},
	{"JOrthop", []string{"journal of orthopaedics", "j orthopaedics", "j orthop"}},
}

// MatchAliases is the table the record-linkage matcher uses to decide
// whether a timeline journal label and a document's text refer to the same
// journal.
var MatchAliases = map[string][]string{
	"JBJS":        {"jbjs", "journal of bone and joint surgery", "j bone joint surg"},
	"AJSM":        {"ajsm", "american journal of sports medicine", "am j sports med"},
	"CORR":        {"corr", "clinical orthopaedics", "clin orthop"},
	"JHS":         {"jhs", "journal of hand surgery", "j hand surg"},
	"FAI":         {"fai", "foot and ankle international", "foot ankle int"},
	"Spine":       {"spine"},
	"Arthroscopy": {"arthroscopy", "arthrosc"},
	"JAAOS":       {"jaaos", "journal of the american academy", "j am acad orthop"},
	"JOT":         {"jot", "journal of orthopaedic trauma", "j orthop trauma"},
	"BJJ":         {"bjj", "bone joint journal", "bone joint j"},
	"KSSTA":       {"kssta", "knee surgery sports traumatology"},
	"JPO":         {"jpo", "journal of pediatric orthopaedics", "j pediatr orthop"},
	"JSES":        {"jses", "journal of shoulder and elbow surgery", "j shoulder elbow"},
}

// fullNameAbbrevs maps full journal names (as returned by external lookup)
// to canonical abbreviations. Checked case-insensitively.
var fullNameAbbrevs = map[string]string{
	"journal of bone and joint surgery":                      "JBJS",
	"journal of bone and joint surgery american":             "JBJS",
	"journal of bone and joint surgery british":              "JBJS",
	"j bone joint surg":                                      "JBJS",
	"american journal of sports medicine":                    "AJSM",
	"am j sports med":                                        "AJSM",
	"clinical orthopaedics and related research":             "CORR",
	"clin orthop relat res":                                  "CORR",
	"journal of hand surgery":                                "JHS",
	"j hand surg":                                            "JHS",
	"foot and ankle international":                           "FAI",
	"foot ankle int":                                         "FAI",
	"spine":                                                  "Spine",
	"the spine journal":                                      "SpineJ",
	"spine journal":                                          "SpineJ",
	"arthroscopy":                                            "Arthroscopy",
	"journal of the american academy of orthopaedic surgeons": "JAAOS",
	"j am acad orthop surg":                                  "JAAOS",
	"journal of orthopaedic trauma":                          "JOT",
	"j orthop trauma":                                        "JOT",
	"bone and joint journal":                                 "BJJ",
	"bone joint j":                                           "BJJ",
	"knee surgery sports traumatology arthroscopy":           "KSSTA",
	"journal of pediatric orthopaedics":                      "JPO",
	"journal of shoulder and elbow surgery":                  "JSES",
	"british journal of sports medicine":                     "BJSM",
	"european spine journal":                                 "ESJ",
	"new england journal of medicine":                        "NEJM",
	"journal of the american medical association":            "JAMA",
	"the lancet":                                             "Lancet",
	"lancet":                                                 "Lancet",
	"british journal of plastic surgery":                     "BJPS",
	"annals of plastic surgery":                              "AnnPlastSurg",
	"plastic and reconstructive surgery":                     "PRS",
	"injury":                                                 "Injury",
	"pain":                                                   "Pain",
	"knee":                                                   "Knee",
	"hand":                                                   "Hand",
	"journal of orthopaedics":                                "JOrthop",
}

// AbbreviateFullName maps a full journal name to its canonical
// abbreviation: direct table hit first, then a phrase scan over the
// content alias table, then an initials-style fallback built from the
// name's leading words. Empty input returns empty.
func AbbreviateFullName(name string) string {
	if name == "" {
		return ""
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	if ab, ok := fullNameAbbrevs[lower]; ok {
		return ab
	}
	for _, alias := range ContentAliases {
		for _, phrase := range alias.Phrases {
			if strings.Contains(lower, phrase) {
				return alias.Abbrev
			}
		}
	}

	words := make([]string, 0, 3)
	for _, w := range strings.Fields(name) {
		if len(w) > 2 {
			words = append(words, w)
		}
		if len(words) == 3 {
			break
		}
	}
	if len(words) >= 2 {
		var b strings.Builder
		for _, w := range words {
			b.WriteString(strings.ToUpper(w[:1]))
			b.WriteString(strings.ToLower(w[1:min(3, len(w))]))
		}
		return b.String()
	}
	if len(name) > 10 {
		return name[:10]
	}
	return name
}

// AuthorSuffixes lists credential strings stripped from author names.
var AuthorSuffixes = []string{
	", MD", " MD", ", M.D.", " M.D.",
	", PhD", " PhD", ", Ph.D.", " Ph.D.",
	", DO", " DO", ", D.O.", " D.O.",
	", FRCS", " FRCS", ", FACS", " FACS",
}

// FilenameReplacements maps filesystem-unsafe or typographic characters to
// their filename-safe spellings.
var FilenameReplacements = map[string]string{
	":":  " -",
	"/":  "-",
	"\\": "-",
	"?":  "",
	"*":  "",
	"\"": "'",
	"<":  "(",
	">":  ")",
	"|":  "-",
	"’": "'",
	"“": "'",
	"”": "'",
	"–": "-",
	"—": "-",
}
