package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ppiankov/edgarmine/internal/model"
)

// PatternTemplate locates a headcount phrase in a sentence. The count is
// the last run of digits and commas inside the matched span.
type PatternTemplate struct {
	Name       string
	Pattern    *regexp.Regexp
	Precedence int // lower runs first; ties keep declaration order
}

// TemplateDef is the uncompiled form of a PatternTemplate
type TemplateDef struct {
	Name       string
	Expr       string
	Precedence int
}

var digitRun = regexp.MustCompile(`[0-9,]*[0-9]`)

// headcountDefs is the production pattern list, in priority order
var headcountDefs = []TemplateDef{
	{"full- time", `[0-9,]*[0-9] full- time`, 10},
	{"full-time", `[0-9,]*[0-9] full-time`, 20},
	{"full time", `[0-9,]*[0-9] full time`, 30},
	{"all of whom were employed", `was [0-9,]*[0-9], all of whom were employed`, 40},
	{"employees", `[0-9,]*[0-9] employees`, 50},
	{"individuals", `[0-9,]*[0-9] individuals`, 60},
	{"people", `[0-9,]*[0-9] people`, 70},
	{"associates", `[0-9,]*[0-9] associates`, 80},
	{"persons", `[0-9,]*[0-9] persons`, 90},
	{"active fte", `[0-9,]*[0-9] active, full-time equivalent`, 100},
	{"fte totaled", `Full-time equivalent \(FTE\) employees totaled [0-9,]*[0-9]`, 110},
	{"full-time equivalent totaled", `Full-time equivalent employees totaled [0-9,]*[0-9]`, 120},
	{"we have approximately", `We have approximately [0-9,]*[0-9] employees`, 130},
	{"average fte", `We have [0-9,]*[0-9] average full-time equivalent employees`, 140},
	{"total staff", `we had [0-9,]*[0-9] total staff`, 150},
	{"moody's fte", `number of full-time equivalent employees of Moody.s was approximately [0-9,]*[0-9].`, 160},
	{"excluding temporary", `The number of employees, excluding temporary employees, at \w+ \d+, \d+, was [0-9,]*[0-9]`, 170},
	{"slash employees", `[0-9,]*[0-9]/* employees`, 180},
	{"average fte approximately", `Average full-time equivalent employees totaled approximately [0-9,]*[0-9]`, 190},
	{"and employed", `and employed [0-9,]*[0-9]`, 200},
	{"active fte year-end", `Active full-time equivalent employees totaled [0-9,]*[0-9] at year-end`, 210},
}

// DefaultTemplates returns the compiled production pattern list
func DefaultTemplates() []PatternTemplate {
	templates, err := CompileTemplates(headcountDefs)
	if err != nil {
		panic(err)
	}
	return templates
}

// CompileTemplates compiles definitions and orders them by precedence
func CompileTemplates(defs []TemplateDef) ([]PatternTemplate, error) {
	templates := make([]PatternTemplate, 0, len(defs))
	for _, d := range defs {
		re, err := regexp.Compile(d.Expr)
		if err != nil {
			return nil, fmt.Errorf("compile template %q: %w", d.Name, err)
		}
		templates = append(templates, PatternTemplate{Name: d.Name, Pattern: re, Precedence: d.Precedence})
	}
	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].Precedence < templates[j].Precedence
	})
	return templates, nil
}

// Extract mines a headcount from candidate sentences. Three passes are
// made over the sentences, each trying every template on a sentence
// before moving to the next one:
//  1. sentences that mention hintYear,
//  2. sentences that mention hintYear+1,
//  3. any sentence; the reported year is then hintYear even though the
//     text never confirmed it.
//
// ok is false when no pass finds a match.
func Extract(templates []PatternTemplate, hintYear string, candidates []string) (result model.Headcount, ok bool) {
	if v, found := MatchYear(templates, hintYear, candidates); found {
		return model.Headcount{Year: hintYear, Value: v}, true
	}
	if next, err := strconv.Atoi(hintYear); err == nil {
		nextYear := strconv.Itoa(next + 1)
		if v, found := MatchYear(templates, nextYear, candidates); found {
			return model.Headcount{Year: nextYear, Value: v}, true
		}
	}
	if v, found := MatchAny(templates, candidates); found {
		return model.Headcount{Year: hintYear, Value: v}, true
	}
	return model.Headcount{}, false
}

// MatchYear returns the count from the first sentence that contains year
// and matches a template
func MatchYear(templates []PatternTemplate, year string, sentences []string) (int64, bool) {
	return firstMatch(templates, sentences, func(s string) bool {
		return strings.Contains(s, year)
	})
}

// MatchAny returns the count from the first sentence that matches a template
func MatchAny(templates []PatternTemplate, sentences []string) (int64, bool) {
	return firstMatch(templates, sentences, func(string) bool { return true })
}

func firstMatch(templates []PatternTemplate, sentences []string, accept func(string) bool) (int64, bool) {
	for _, s := range sentences {
		if !accept(s) {
			continue
		}
		for _, t := range templates {
			span := t.Pattern.FindString(s)
			if span == "" {
				continue
			}
			if v, ok := parseCount(span); ok {
				return v, true
			}
		}
	}
	return 0, false
}

// parseCount reads the trailing digit run of a matched span
func parseCount(span string) (int64, bool) {
	runs := digitRun.FindAllString(span, -1)
	if len(runs) == 0 {
		return 0, false
	}
	digits := strings.ReplaceAll(runs[len(runs)-1], ",", "")
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
