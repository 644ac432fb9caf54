package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestTuneModel(t *testing.T) {
	m, err := newTuneModel("pop", []float64{1, 3, 5, 7, 9})
	if err != nil {
		t.Fatalf("newTuneModel: %v", err)
	}
	if m.bins != defaultBins {
		t.Errorf("bins = %d, want %d", m.bins, defaultBins)
	}
	if m.paletteName() != defaultPalette {
		t.Errorf("palette = %q, want %q", m.paletteName(), defaultPalette)
	}

	next, _ := m.Update(keyMsg("l"))
	m = next.(tuneModel)
	if m.bins != defaultBins+1 {
		t.Errorf("bins after 'l' = %d, want %d", m.bins, defaultBins+1)
	}
	if len(m.bin.Palette) != m.bins {
		t.Errorf("palette did not follow bin count: %d colors for %d bins", len(m.bin.Palette), m.bins)
	}

	next, _ = m.Update(keyMsg("m"))
	m = next.(tuneModel)
	if !m.quantile {
		t.Error("'m' should toggle quantile mode")
	}

	next, cmd := m.Update(keyMsg("q"))
	m = next.(tuneModel)
	if cmd == nil {
		t.Error("'q' should quit")
	}

	view := m.View()
	for _, want := range []string{"pop", m.paletteName(), "quantile"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestTuneModelBinsClamped(t *testing.T) {
	m, err := newTuneModel("pop", []float64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	m.bins = tuneMinBins
	next, _ := m.Update(keyMsg("h"))
	m = next.(tuneModel)
	if m.bins != tuneMinBins {
		t.Errorf("bins fell below the minimum: %d", m.bins)
	}

	m.bins = tuneMaxBins
	next, _ = m.Update(keyMsg("l"))
	m = next.(tuneModel)
	if m.bins != tuneMaxBins {
		t.Errorf("bins rose above the maximum: %d", m.bins)
	}
}
