package table

import (
	"reflect"
	"strings"
	"testing"
)

func TestListRoundTrip(t *testing.T) {
	lists := [][]string{
		{},
		{"As of December 31, 2018, we had 1,200 employees."},
		{
			`He said "we hired 500 people".`,
			"Commas, quotes ' and <tags> & ampersands survive.",
			"Unicode: Moody’s employs 13,100 people — approx.",
			"Second sentence with\ttab.",
		},
	}

	for _, in := range lists {
		cell, err := EncodeList(in)
		if err != nil {
			t.Fatalf("EncodeList: %v", err)
		}
		out, err := DecodeList(cell)
		if err != nil {
			t.Fatalf("DecodeList(%q): %v", cell, err)
		}
		if !reflect.DeepEqual(out, in) {
			t.Errorf("round trip changed list:\n in  %q\n out %q", in, out)
		}
	}
}

func TestListRoundTrip_ThroughTable(t *testing.T) {
	in := []string{`Line "one", with comma.`, "Line two\nwith newline."}
	cell, err := EncodeList(in)
	if err != nil {
		t.Fatal(err)
	}

	tbl := New("filename", "Results")
	tbl.Append("a.txt", cell)

	var buf strings.Builder
	if err := tbl.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	back, err := ReadFrom(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	out, err := DecodeList(back.Get(0, "Results"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("got %q, want %q", out, in)
	}
}

func TestEncodeList_Nil(t *testing.T) {
	cell, err := EncodeList(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cell != "[]" {
		t.Errorf("EncodeList(nil) = %q", cell)
	}
}

func TestDecodeList_Empty(t *testing.T) {
	for _, cell := range []string{"", "  ", "[]"} {
		out, err := DecodeList(cell)
		if err != nil {
			t.Fatalf("DecodeList(%q): %v", cell, err)
		}
		if len(out) != 0 {
			t.Errorf("DecodeList(%q) = %q", cell, out)
		}
	}
}

func TestDecodeList_PythonLiteral(t *testing.T) {
	out, err := DecodeList(`['We had 1,200 employees.', 'Most were full-time.']`)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	want := []string{"We had 1,200 employees.", "Most were full-time."}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestDecodeList_Malformed(t *testing.T) {
	if _, err := DecodeList(`{"a": 1}`); err == nil {
		t.Error("expected error for non-list cell")
	}
}
