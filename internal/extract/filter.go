package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxSentenceLength is the exclusive upper bound, in characters, of a candidate sentence
const MaxSentenceLength = 500

var numericToken = regexp.MustCompile(`[0-9,]{3}`)

// KeywordFilter selects the sentences likely to state a headcount
type KeywordFilter struct {
	include *regexp.Regexp // nil matches nothing
	exclude *regexp.Regexp // nil excludes nothing
}

// NewKeywordFilter compiles include and exclude terms. Terms are regular
// expressions matched case-sensitively as written.
func NewKeywordFilter(include, exclude []string) (*KeywordFilter, error) {
	inc, err := alternation(include)
	if err != nil {
		return nil, fmt.Errorf("compile include terms: %w", err)
	}
	exc, err := alternation(exclude)
	if err != nil {
		return nil, fmt.Errorf("compile exclude terms: %w", err)
	}
	return &KeywordFilter{include: inc, exclude: exc}, nil
}

// alternation joins terms into one pattern; an empty term list yields nil
func alternation(terms []string) (*regexp.Regexp, error) {
	if len(terms) == 0 {
		return nil, nil
	}
	return regexp.Compile(strings.Join(terms, "|"))
}

// Matches reports whether a single sentence qualifies
func (f *KeywordFilter) Matches(sentence string) bool {
	if f.include == nil || !f.include.MatchString(sentence) {
		return false
	}
	if !numericToken.MatchString(sentence) {
		return false
	}
	if f.exclude != nil && f.exclude.MatchString(sentence) {
		return false
	}
	return utf8.RuneCountInString(sentence) < MaxSentenceLength
}

// Filter returns the qualifying sentences in their original order
func (f *KeywordFilter) Filter(sentences []string) []string {
	results := []string{}
	for _, s := range sentences {
		if f.Matches(s) {
			results = append(results, s)
		}
	}
	return results
}
