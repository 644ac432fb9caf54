package cli

import (
	"strings"
	"testing"

	"github.com/bugu00/chorogrid/pkg/grid"
)

func TestBinColumnDropsEmptyCells(t *testing.T) {
	table, err := grid.Read(strings.NewReader("abbrev,pop\nAA,1\nBB,\nCC,9\n"))
	if err != nil {
		t.Fatal(err)
	}

	f := binFlags{paletteName: "Greys", bins: 3, decimals: -1}
	ids, bin, err := f.binColumn(table, "abbrev", "pop")
	if err != nil {
		t.Fatalf("binColumn: %v", err)
	}

	if len(ids) != 2 || ids[0] != "AA" || ids[1] != "CC" {
		t.Errorf("ids = %v, want [AA CC]", ids)
	}
	if len(bin.ColorsOut) != 2 {
		t.Errorf("ColorsOut has %d entries, want 2", len(bin.ColorsOut))
	}
	if len(bin.Palette) != 3 {
		t.Errorf("palette has %d colors, want 3", len(bin.Palette))
	}
}

func TestBinColumnUnknownPalette(t *testing.T) {
	table, err := grid.Read(strings.NewReader("abbrev,pop\nAA,1\n"))
	if err != nil {
		t.Fatal(err)
	}
	f := binFlags{paletteName: "NotAPalette", bins: 3, decimals: -1}
	if _, _, err := f.binColumn(table, "abbrev", "pop"); err == nil {
		t.Error("unknown palette should fail")
	}
}

func TestBuildBinsReport(t *testing.T) {
	table, err := grid.Read(strings.NewReader("abbrev,pop\nAA,0\nBB,5\nCC,10\nDD,10\n"))
	if err != nil {
		t.Fatal(err)
	}
	f := binFlags{paletteName: "Greys", bins: 2, decimals: -1}
	_, bin, err := f.binColumn(table, "abbrev", "pop")
	if err != nil {
		t.Fatal(err)
	}

	report := buildBinsReport("pop", bin)
	if report.Count != 4 {
		t.Errorf("Count = %d, want 4", report.Count)
	}
	if report.Min != 0 || report.Max != 10 {
		t.Errorf("range = [%g, %g], want [0, 10]", report.Min, report.Max)
	}
	if len(report.Bins) != 2 {
		t.Fatalf("got %d bins, want 2", len(report.Bins))
	}
	// 0 below the midpoint fencepost, 5/10/10 at or above it.
	if report.Bins[0].Count != 1 || report.Bins[1].Count != 3 {
		t.Errorf("bin counts = [%d, %d], want [1, 3]",
			report.Bins[0].Count, report.Bins[1].Count)
	}
	if len(report.Fenceposts) != 3 {
		t.Errorf("got %d fenceposts, want 3", len(report.Fenceposts))
	}
}
