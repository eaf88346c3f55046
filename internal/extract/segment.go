package extract

import (
	"regexp"
	"strings"
)

const (
	prdMark  = "<prd>"
	stopMark = "<stop>"
)

const (
	// space is any Unicode space separator, not only ASCII whitespace
	space     = `[\s\x{85}\p{Z}]`
	alphabets = `([A-Za-z])`
	prefixes  = `(Mr|St|Mrs|Ms|Dr|Prof|Capt|Cpt|Lt|Mt)[.]`
	suffixes  = `(Inc|Ltd|Jr|Sr|Co)`
	starters  = `(Mr|Mrs|Ms|Dr|He` + space + `|She` + space + `|It` + space + `|They` + space + `|Their` + space +
		`|Our` + space + `|We` + space + `|But` + space + `|However` + space + `|That` + space + `|This` + space + `|Wherever)`
	acronyms  = `([A-Z][.][A-Z][.](?:[A-Z][.])?)`
	websites  = `[.](com|net|org|io|gov|me|edu)`
)

// boundaryRule rewrites one class of false sentence boundary
type boundaryRule struct {
	re   *regexp.Regexp
	repl string
}

var boundaryRules = []boundaryRule{
	{regexp.MustCompile(prefixes), "${1}" + prdMark},
	{regexp.MustCompile(websites), prdMark + "${1}"},
}

// Order matters: an acronym followed by a sentence starter is split
// before the generic acronym rules hide its periods.
var initialRules = []boundaryRule{
	{regexp.MustCompile(space + alphabets + `[.] `), " ${1}" + prdMark + " "},
	{regexp.MustCompile(acronyms + " " + starters), "${1}" + stopMark + " ${2}"},
	{regexp.MustCompile(alphabets + `[.]` + alphabets + `[.]` + alphabets + `[.]`), "${1}" + prdMark + "${2}" + prdMark + "${3}" + prdMark},
	{regexp.MustCompile(alphabets + `[.]` + alphabets + `[.]`), "${1}" + prdMark + "${2}" + prdMark},
	// the suffix keeps its period here: "Acme Inc. We" ends on "Acme Inc."
	{regexp.MustCompile(" " + suffixes + `[.] ` + starters), " ${1}" + prdMark + stopMark + " ${2}"},
	{regexp.MustCompile(" " + suffixes + `[.]`), " ${1}" + prdMark},
	{regexp.MustCompile(" " + alphabets + `[.]`), " ${1}" + prdMark},
}

// literalRules are plain substitutions applied in sequence
var literalRules = []struct{ old, new string }{
	{".”", "”."},
	{".\"", "\"."},
	{"!\"", "\"!"},
	{"?\"", "\"?"},
	{"...", prdMark + prdMark + prdMark},
	{"e.g.", "e" + prdMark + "g" + prdMark},
	{"i.e.", "i" + prdMark + "e" + prdMark},
}

// Segment splits prose into sentences. It protects periods that belong to
// titles, initials, acronyms, company suffixes, web domains and a few
// literal abbreviations, then splits on the remaining terminal
// punctuation. Text outside these patterns may be mis-segmented.
func Segment(text string) []string {
	text = " " + text + "  "
	text = strings.ReplaceAll(text, "\n", " ")

	for _, r := range boundaryRules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	if strings.Contains(text, "Ph.D") {
		text = strings.ReplaceAll(text, "Ph.D.", "Ph"+prdMark+"D"+prdMark)
	}
	for _, r := range initialRules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	for _, l := range literalRules {
		text = strings.ReplaceAll(text, l.old, l.new)
	}

	text = strings.ReplaceAll(text, ".", "."+stopMark)
	text = strings.ReplaceAll(text, "?", "?"+stopMark)
	text = strings.ReplaceAll(text, "!", "!"+stopMark)
	text = strings.ReplaceAll(text, prdMark, ".")

	parts := strings.Split(text, stopMark)
	parts = parts[:len(parts)-1]

	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		sentences = append(sentences, strings.TrimSpace(p))
	}
	return sentences
}
