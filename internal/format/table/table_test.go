package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"host", "panel-01"},
		{"cpus", "4"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	want := []string{
		"host  panel-01",
		"cpus         4",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected layout (-want +got):\n%s", diff)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestPairs(t *testing.T) {
	got := Pairs([][2]string{{"os", "linux"}, {"arch", "arm64"}})
	want := []string{
		"os    linux",
		"arch  arm64",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected layout (-want +got):\n%s", diff)
	}
}
