package extract

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestDocumentReader_FirstDocumentOnly(t *testing.T) {
	raw := `<SEC-DOCUMENT>
<DOCUMENT>
<TYPE>10-K
<TEXT>
<html><body><p>As of December 31, 2018, we had 1,200 employees.</p></body></html>
</TEXT>
</DOCUMENT>
<DOCUMENT>
<TYPE>EX-21
<TEXT>
<html><body><p>Subsidiaries of the registrant.</p></body></html>
</TEXT>
</DOCUMENT>
</SEC-DOCUMENT>`

	text := NewDocumentReader().Text(raw)
	if !strings.Contains(text, "1,200 employees") {
		t.Errorf("expected report text to survive conversion, got %q", text)
	}
	if strings.Contains(text, "Subsidiaries") {
		t.Errorf("expected exhibits to be dropped, got %q", text)
	}
}

func TestDocumentReader_SkipsScripts(t *testing.T) {
	raw := `<html><head><script>var employees = "999 employees";</script>
<style>.x { color: red }</style></head>
<body><p>The company had 450 employees.</p></body></html>`

	text := NewDocumentReader().Text(raw)
	if strings.Contains(text, "999") {
		t.Errorf("script content leaked into text: %q", text)
	}
	if !strings.Contains(text, "450 employees") {
		t.Errorf("expected body text, got %q", text)
	}
}

func TestDocumentReader_Sentences(t *testing.T) {
	raw := "<p>We had 1,200 employees. Most were full-time.</p>"
	sentences := NewDocumentReader().Sentences(raw)

	found := false
	for _, s := range sentences {
		if s == "We had 1,200 employees." {
			found = true
		}
	}
	if !found {
		t.Errorf("expected headcount sentence, got %q", sentences)
	}
}

func TestDocumentReader_NonBreakingSpaces(t *testing.T) {
	raw := "<p>As of December&nbsp;31,&nbsp;2018, we had 1,200&nbsp;employees. " +
		"The report was signed by John&nbsp;Q. Public. Done.</p>"
	sentences := NewDocumentReader().Sentences(raw)

	for _, s := range sentences {
		if strings.ContainsRune(s, '\u00a0') {
			t.Errorf("non-breaking space survived conversion: %q", s)
		}
	}
	found := false
	for _, s := range sentences {
		if s == "The report was signed by John Q. Public." {
			found = true
		}
	}
	if !found {
		t.Errorf("initial after &nbsp; split the sentence: %q", sentences)
	}

	res, ok := Extract(DefaultTemplates(), "2018", sentences)
	if !ok || res.Value != 1200 || res.Year != "2018" {
		t.Errorf("Extract = %+v, %v; want 1200 for 2018", res, ok)
	}
}

func TestNormalizeSpaces(t *testing.T) {
	got := normalizeSpaces("1,200\u00a0employees\u2009and\u3000more\n")
	if got != "1,200 employees and more\n" {
		t.Errorf("normalizeSpaces = %q", got)
	}
}

func TestExtractVisibleText(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><body><p>One</p><script>two</script><div>three <b>four</b></div></body></html>`))
	if err != nil {
		t.Fatal(err)
	}

	got := strings.TrimSpace(extractVisibleText(doc))
	if got != "One three four" {
		t.Errorf("got %q", got)
	}
}
