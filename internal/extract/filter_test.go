package extract

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ppiankov/edgarmine/internal/model"
)

func TestKeywordFilter_Exclusion(t *testing.T) {
	f, err := NewKeywordFilter([]string{"employees"}, []string{`401\(k\)`})
	if err != nil {
		t.Fatalf("NewKeywordFilter: %v", err)
	}

	got := f.Filter([]string{"We had 1,234 employees.", "We paid 401(k) benefits to 500 staff."})
	want := []string{"We had 1,234 employees."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestKeywordFilter_Rules(t *testing.T) {
	cfg := model.DefaultConfig()
	f, err := NewKeywordFilter(cfg.Keywords.Include, cfg.Keywords.Exclude)
	if err != nil {
		t.Fatalf("NewKeywordFilter: %v", err)
	}

	tests := []struct {
		name     string
		sentence string
		want     bool
	}{
		{"keyword and number", "As of December 31, 2018, we had 1,200 employees.", true},
		{"full-time keyword", "We have 450 full-time staff.", true},
		{"no keyword", "Revenue grew to 1,200 million dollars.", false},
		{"no three digit token", "We have 12 employees.", false},
		{"excluded term", "We have 1,200 employees eligible to retire.", false},
		{"tax excluded", "Payroll tax for 1,200 employees increased.", false},
		{"case sensitive", "EMPLOYEES numbered 1,200.", false},
		{"too long", "We had 1,200 employees " + strings.Repeat("x", 500) + ".", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Matches(tt.sentence); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.sentence, got, tt.want)
			}
		})
	}
}

func TestKeywordFilter_LengthCountsCharacters(t *testing.T) {
	f, err := NewKeywordFilter([]string{"employees"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	// 499 characters, but more than 500 bytes
	base := "We had 1,200 employees "
	s := base + strings.Repeat("é", 499-len(base))
	if !f.Matches(s) {
		t.Error("expected a 499 character sentence to qualify")
	}
	if f.Matches(s + "é") {
		t.Error("expected a 500 character sentence to be rejected")
	}
}

func TestKeywordFilter_PreservesOrder(t *testing.T) {
	f, err := NewKeywordFilter([]string{"employ"}, []string{"retire"})
	if err != nil {
		t.Fatal(err)
	}

	in := []string{
		"We employ 300 people.",
		"Unrelated 999 sentence.",
		"We employ 300 people.",
		"We employed 250 staff in 2017.",
	}
	want := []string{in[0], in[2], in[3]}
	if got := f.Filter(in); !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestKeywordFilter_EmptyTerms(t *testing.T) {
	f, err := NewKeywordFilter(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Filter([]string{"We had 1,234 employees."}); len(got) != 0 {
		t.Errorf("expected no candidates without include terms, got %q", got)
	}

	f, err = NewKeywordFilter([]string{"employees"}, []string{})
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Filter([]string{"We had 1,234 employees."}); len(got) != 1 {
		t.Errorf("expected empty exclusions to exclude nothing, got %q", got)
	}
}

func TestNewKeywordFilter_InvalidPattern(t *testing.T) {
	if _, err := NewKeywordFilter([]string{"employ("}, nil); err == nil {
		t.Error("expected error for invalid include pattern")
	}
	if _, err := NewKeywordFilter([]string{"employ"}, []string{"[tax"}); err == nil {
		t.Error("expected error for invalid exclude pattern")
	}
}
