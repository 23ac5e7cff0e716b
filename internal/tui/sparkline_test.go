package tui

import (
	"reflect"
	"strings"
	"testing"
)

func TestRingBuffer(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		capacity int
		push     []float64
		want     []float64
		last     float64
	}{
		{"empty", 3, nil, nil, 0},
		{"partial", 3, []float64{1, 2}, []float64{1, 2}, 2},
		{"full", 3, []float64{1, 2, 3}, []float64{1, 2, 3}, 3},
		{"wraps", 3, []float64{1, 2, 3, 4, 5}, []float64{3, 4, 5}, 5},
		{"zero capacity holds one", 0, []float64{7, 8}, []float64{8}, 8},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rb := NewRingBuffer(tt.capacity)
			for _, v := range tt.push {
				rb.Push(v)
			}
			if got := rb.Slice(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Slice() = %v, want %v", got, tt.want)
			}
			if rb.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", rb.Len(), len(tt.want))
			}
			if rb.Last() != tt.last {
				t.Errorf("Last() = %v, want %v", rb.Last(), tt.last)
			}
		})
	}
}

func TestRingBuffer_Resize(t *testing.T) {
	t.Parallel()
	rb := NewRingBuffer(4)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		rb.Push(v)
	}

	rb.Resize(2)
	if got := rb.Slice(); !reflect.DeepEqual(got, []float64{4, 5}) {
		t.Errorf("after shrink: %v, want [4 5]", got)
	}
	rb.Resize(5)
	rb.Push(6)
	if got := rb.Slice(); !reflect.DeepEqual(got, []float64{4, 5, 6}) || rb.Cap() != 5 {
		t.Errorf("after grow: %v (cap %d), want [4 5 6] (cap 5)", got, rb.Cap())
	}
	rb.Resize(5)
	if rb.Len() != 3 {
		t.Errorf("same-capacity resize changed length to %d", rb.Len())
	}

	rb.Reset()
	if rb.Len() != 0 || rb.Slice() != nil {
		t.Error("expected an empty buffer after Reset")
	}
}

func TestRescale(t *testing.T) {
	t.Parallel()
	scaled, lo, hi := Rescale([]float64{2, 3, 4})
	if lo != 2 || hi != 4 || !reflect.DeepEqual(scaled, []float64{0, 50, 100}) {
		t.Errorf("Rescale = %v (%v..%v)", scaled, lo, hi)
	}

	flat, lo, hi := Rescale([]float64{1.5, 1.5})
	if lo != 1.5 || hi != 1.5 || !reflect.DeepEqual(flat, []float64{50, 50}) {
		t.Errorf("flat series = %v (%v..%v), want all 50", flat, lo, hi)
	}

	if got, _, _ := Rescale(nil); got != nil {
		t.Errorf("Rescale(nil) = %v", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, ""},
		{"floor", []float64{0, 0}, "▁▁"},
		{"ceiling", []float64{100}, "█"},
		{"middle", []float64{50}, "▄"},
		{"clamped", []float64{-10, 150}, "▁█"},
	}
	for _, tt := range tests {
		if got := RenderSparkline(tt.values); got != tt.want {
			t.Errorf("%s: RenderSparkline(%v) = %q, want %q", tt.name, tt.values, got, tt.want)
		}
	}
}

func TestRenderSparkline_Ascending(t *testing.T) {
	t.Parallel()
	runes := []rune(RenderSparkline([]float64{0, 14.3, 28.6, 42.9, 57.1, 71.4, 85.7, 100}))
	for i := 1; i < len(runes); i++ {
		if runes[i] < runes[i-1] {
			t.Errorf("not ascending at %d: %c after %c", i, runes[i], runes[i-1])
		}
	}
}

func TestRenderBrailleChart(t *testing.T) {
	t.Parallel()

	if RenderBrailleChart(nil, 4, 2) != nil || RenderBrailleChart([]float64{1}, 0, 2) != nil {
		t.Error("expected nil for empty input or zero width")
	}

	// One value at 100% lands in the top-right dot column of the last cell.
	lines := RenderBrailleChart([]float64{100}, 2, 1)
	if len(lines) != 1 || len([]rune(lines[0])) != 2 {
		t.Fatalf("unexpected shape: %q", lines)
	}
	if r := []rune(lines[0]); r[0] != brailleBlank || r[1] != brailleBlank|0x08 {
		t.Errorf("got %q, want blank cell then top-right dot", lines[0])
	}

	// A zero sits on the bottom row.
	lines = RenderBrailleChart([]float64{0}, 1, 2)
	if []rune(lines[0])[0] != brailleBlank {
		t.Errorf("top row should be blank: %q", lines[0])
	}
	if []rune(lines[1])[0] != brailleBlank|0x80 {
		t.Errorf("bottom row should hold the bottom-right dot: %q", lines[1])
	}

	// Values beyond the grid width are dropped from the left.
	many := make([]float64, 50)
	lines = RenderBrailleChart(many, 3, 1)
	if strings.ContainsRune(lines[0], brailleBlank) {
		t.Errorf("a full grid should have no blank cell: %q", lines[0])
	}
}
