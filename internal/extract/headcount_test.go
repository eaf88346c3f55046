package extract

import (
	"testing"

	"github.com/ppiankov/edgarmine/internal/model"
)

func employeesTemplate(t *testing.T) []PatternTemplate {
	t.Helper()
	templates, err := CompileTemplates([]TemplateDef{{Name: "employees", Expr: `[0-9,]*[0-9] employees`}})
	if err != nil {
		t.Fatalf("CompileTemplates: %v", err)
	}
	return templates
}

func TestExtract_Tiers(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       model.Headcount
	}{
		{
			name:       "prior year",
			candidates: []string{"In 2019, the company had 1,200 employees."},
			want:       model.Headcount{Year: "2019", Value: 1200},
		},
		{
			name:       "current year",
			candidates: []string{"In 2020, the company had 1,200 employees."},
			want:       model.Headcount{Year: "2020", Value: 1200},
		},
		{
			name:       "no year mentioned",
			candidates: []string{"The company had 900 employees."},
			want:       model.Headcount{Year: "2019", Value: 900},
		},
		{
			name: "prior year wins over earlier sentence",
			candidates: []string{
				"In 2020, the company had 1,500 employees.",
				"The company had 800 employees.",
				"At the end of 2019 we had 1,300 employees.",
			},
			want: model.Headcount{Year: "2019", Value: 1300},
		},
	}

	templates := employeesTemplate(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(templates, "2019", tt.candidates)
			if !ok {
				t.Fatal("expected a match")
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtract_NoMatch(t *testing.T) {
	got, ok := Extract(employeesTemplate(t), "2019", []string{"Revenue was 1,200 million.", "We have 300 stores."})
	if ok {
		t.Errorf("expected no match, got %+v", got)
	}

	if _, ok := Extract(employeesTemplate(t), "2019", nil); ok {
		t.Error("expected no match for empty candidates")
	}
}

func TestExtract_SentenceOrderBeatsPatternOrder(t *testing.T) {
	templates, err := CompileTemplates([]TemplateDef{
		{Name: "full-time", Expr: `[0-9,]*[0-9] full-time`, Precedence: 1},
		{Name: "employees", Expr: `[0-9,]*[0-9] employees`, Precedence: 2},
	})
	if err != nil {
		t.Fatal(err)
	}

	candidates := []string{
		"In 2018 we had 700 employees.",
		"In 2018 we had 650 full-time workers.",
	}
	got, ok := Extract(templates, "2018", candidates)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Value != 700 {
		t.Errorf("expected the first sentence to win, got %d", got.Value)
	}
}

func TestExtract_PatternOrderWithinSentence(t *testing.T) {
	templates, err := CompileTemplates([]TemplateDef{
		{Name: "employees", Expr: `[0-9,]*[0-9] employees`, Precedence: 20},
		{Name: "full-time", Expr: `[0-9,]*[0-9] full-time`, Precedence: 10},
	})
	if err != nil {
		t.Fatal(err)
	}
	if templates[0].Name != "full-time" {
		t.Fatalf("expected templates ordered by precedence, got %q first", templates[0].Name)
	}

	got, ok := Extract(templates, "2018", []string{"In 2018 we had 1,000 employees, of which 900 full-time."})
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Value != 900 {
		t.Errorf("expected the higher precedence template to win, got %d", got.Value)
	}
}

func TestExtract_NonNumericHintSkipsCurrentYear(t *testing.T) {
	got, ok := Extract(employeesTemplate(t), "n/a", []string{"In 2020 we had 400 employees."})
	if !ok {
		t.Fatal("expected the year-agnostic pass to match")
	}
	if got.Year != "n/a" || got.Value != 400 {
		t.Errorf("got %+v", got)
	}
}

func TestMatchYear(t *testing.T) {
	templates := employeesTemplate(t)
	sentences := []string{"We had 100 employees in 2017.", "We had 200 employees in 2018."}

	if v, ok := MatchYear(templates, "2018", sentences); !ok || v != 200 {
		t.Errorf("MatchYear(2018) = %d, %v", v, ok)
	}
	if _, ok := MatchYear(templates, "2016", sentences); ok {
		t.Error("MatchYear(2016) should not match")
	}
	if v, ok := MatchAny(templates, sentences); !ok || v != 100 {
		t.Errorf("MatchAny = %d, %v", v, ok)
	}
}

func TestDefaultTemplates(t *testing.T) {
	templates := DefaultTemplates()
	if len(templates) != len(headcountDefs) {
		t.Fatalf("expected %d templates, got %d", len(headcountDefs), len(templates))
	}
	for i := 1; i < len(templates); i++ {
		if templates[i-1].Precedence > templates[i].Precedence {
			t.Fatalf("templates out of order at %d", i)
		}
	}

	tests := []struct {
		sentence string
		want     int64
	}{
		{"As of December 31, 2018, we had approximately 2,350 full-time employees.", 2350},
		{"As of December 31, 2018, the Company had 1,045 full- time employees.", 1045},
		{"At year-end 2018, the number of employees was 3,900, all of whom were employed in the United States.", 3900},
		{"Full-time equivalent (FTE) employees totaled 10,400 at December 31, 2018.", 10400},
		{"The number of employees, excluding temporary employees, at December 31, 2018, was 5,678.", 5678},
		{"At December 31, 2018, the number of full-time equivalent employees of Moody’s was approximately 13,100.", 13100},
		{"In 2018, the Bank and its subsidiaries employed 1,234 people.", 1234},
		{"At December 31, 2018, we had 7,800 associates.", 7800},
	}
	for _, tt := range tests {
		got, ok := Extract(templates, "2018", []string{tt.sentence})
		if !ok {
			t.Errorf("no match for %q", tt.sentence)
			continue
		}
		if got.Value != tt.want || got.Year != "2018" {
			t.Errorf("Extract(%q) = %+v, want %d in 2018", tt.sentence, got, tt.want)
		}
	}
}

func TestCompileTemplates_Invalid(t *testing.T) {
	if _, err := CompileTemplates([]TemplateDef{{Name: "bad", Expr: "[0-9"}}); err == nil {
		t.Error("expected compile error")
	}
}
