package renderer

import (
	"errors"
	"testing"

	"github.com/dshills/mandelterm/internal/fractal"
	"github.com/dshills/mandelterm/internal/palette"
	"github.com/dshills/mandelterm/internal/renderer/backend"
	"github.com/dshills/mandelterm/internal/renderer/core"
)

type cellPos struct {
	Row, Col int
}

// recordingBackend records the order of SetCell calls.
type recordingBackend struct {
	*backend.NullBackend
	writes []cellPos
}

func newRecordingBackend(width, height int) *recordingBackend {
	b := &recordingBackend{NullBackend: backend.NewNullBackend(width, height)}
	b.Init()
	return b
}

func (b *recordingBackend) SetCell(x, y int, cell core.Cell) {
	b.writes = append(b.writes, cellPos{Row: y, Col: x})
	b.NullBackend.SetCell(x, y, cell)
}

func TestDrawVisitsEveryCellInRowMajorOrder(t *testing.T) {
	b := newRecordingBackend(80, 39)
	r := New(b)

	stats, err := r.Draw(core.RectFromSize(0, 0, 39, 80))
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	if stats.Cells != 3120 {
		t.Errorf("expected 3120 cells, got %d", stats.Cells)
	}
	if len(b.writes) != 3120 {
		t.Fatalf("expected 3120 writes, got %d", len(b.writes))
	}

	seen := make(map[cellPos]bool, len(b.writes))
	for i, pos := range b.writes {
		want := cellPos{Row: i / 80, Col: i % 80}
		if pos != want {
			t.Fatalf("write %d: expected %+v, got %+v", i, want, pos)
		}
		if seen[pos] {
			t.Fatalf("cell %+v painted twice", pos)
		}
		seen[pos] = true
	}

	if b.ShowCount() != 1 {
		t.Errorf("expected one Show after the pass, got %d", b.ShowCount())
	}
}

func TestDrawStats(t *testing.T) {
	b := newRecordingBackend(80, 39)
	stats, err := New(b).Draw(core.RectFromSize(0, 0, 39, 80))
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if stats.Members != 400 {
		t.Errorf("expected 400 members, got %d", stats.Members)
	}
	if stats.Steps != 41692 {
		t.Errorf("expected 41692 steps, got %d", stats.Steps)
	}
}

func TestDrawPaintsPaletteEntries(t *testing.T) {
	b := newRecordingBackend(80, 39)
	if _, err := New(b).Draw(core.RectFromSize(0, 0, 39, 80)); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	tests := []struct {
		row, col int
		want     palette.Entry
	}{
		{0, 0, palette.At(1)},
		{10, 47, palette.At(3)},
		{19, 40, palette.Black},
		{32, 55, palette.At(80)},
	}
	for _, tt := range tests {
		got := b.GetCell(tt.col, tt.row)
		if !got.Equals(tt.want.Cell()) {
			t.Errorf("cell (%d, %d): expected %v, got %+v", tt.row, tt.col, tt.want, got)
		}
	}
}

func TestDrawAtOrigin(t *testing.T) {
	b := newRecordingBackend(20, 10)
	stats, err := New(b).Draw(core.RectFromSize(2, 5, 4, 8))
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if stats.Cells != 32 {
		t.Errorf("expected 32 cells, got %d", stats.Cells)
	}
	first, last := b.writes[0], b.writes[len(b.writes)-1]
	if first != (cellPos{Row: 2, Col: 5}) {
		t.Errorf("expected first write at (2, 5), got %+v", first)
	}
	if last != (cellPos{Row: 5, Col: 12}) {
		t.Errorf("expected last write at (5, 12), got %+v", last)
	}
	if !b.GetCell(0, 0).Equals(core.EmptyCell()) {
		t.Error("cells outside the area should be untouched")
	}

	// The top-left grid cell maps to the viewport corner.
	if !b.GetCell(5, 2).Equals(palette.At(1).Cell()) {
		t.Errorf("expected corner entry %v, got %+v", palette.At(1), b.GetCell(5, 2))
	}
}

func TestDrawEmptyArea(t *testing.T) {
	b := newRecordingBackend(10, 10)
	_, err := New(b).Draw(core.RectFromSize(0, 0, 0, 10))
	if !errors.Is(err, fractal.ErrEmptyGrid) {
		t.Errorf("expected ErrEmptyGrid, got %v", err)
	}
	if len(b.writes) != 0 {
		t.Errorf("expected no writes, got %d", len(b.writes))
	}
}

func TestDrawWithoutBackend(t *testing.T) {
	_, err := New(nil).Draw(core.RectFromSize(0, 0, 1, 1))
	if !errors.Is(err, ErrNoBackend) {
		t.Errorf("expected ErrNoBackend, got %v", err)
	}
}

func TestDrawWithCustomIterator(t *testing.T) {
	b := newRecordingBackend(4, 4)
	r := New(b, WithIterator(fractal.Iterator{MaxIterations: 1}))
	stats, err := r.Draw(core.RectFromSize(0, 0, 4, 4))
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if stats.Steps != 16 {
		t.Errorf("expected one step per cell, got %d", stats.Steps)
	}
}

func TestCell(t *testing.T) {
	r := New(nil)
	entry, res, err := r.Cell(19, 40, 80, 39)
	if err != nil {
		t.Fatalf("Cell failed: %v", err)
	}
	if !res.Member || entry != palette.Black {
		t.Errorf("expected member in black, got %+v %v", res, entry)
	}

	if _, _, err := r.Cell(0, 0, 0, 39); !errors.Is(err, fractal.ErrEmptyGrid) {
		t.Errorf("expected ErrEmptyGrid, got %v", err)
	}
}

func TestDrawPalette(t *testing.T) {
	b := newRecordingBackend(40, 3)
	n, err := New(b).DrawPalette(1, 2)
	if err != nil {
		t.Fatalf("DrawPalette failed: %v", err)
	}
	if n != 25 {
		t.Errorf("expected 25 cells, got %d", n)
	}
	for i := 0; i < palette.Size; i++ {
		if !b.GetCell(2+i, 1).Equals(palette.At(i).Cell()) {
			t.Errorf("swatch %d: expected %v", i, palette.At(i))
		}
	}
	if !b.GetCell(2+palette.Size, 1).Equals(palette.Black.Cell()) {
		t.Error("swatch should end with the member style")
	}
}
