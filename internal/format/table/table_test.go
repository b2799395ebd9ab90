package table

import (
	"reflect"
	"testing"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"Oslo", "oslo"},
		{"Bergen", "bergen"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	want := []string{
		"Oslo      oslo",
		"Bergen  bergen",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatDefaultsMissingAlignmentsToLeft(t *testing.T) {
	rows := [][]string{
		{"a", "bb"},
		{"ccc", "d"},
	}
	got := Format(rows, nil)
	want := []string{
		"a    bb",
		"ccc  d",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatEmptyRows(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil, got %q", got)
	}
}
