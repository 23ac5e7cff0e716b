package tui

import "math"

// sparkLevels are the eight block heights of a sparkline, lowest first.
var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// RingBuffer keeps the most recent samples of a series up to a capacity.
type RingBuffer struct {
	buf   []float64
	next  int
	count int
}

// NewRingBuffer returns a buffer holding at most capacity samples. A
// non-positive capacity is raised to one.
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{buf: make([]float64, max(capacity, 1))}
}

// Push appends v, dropping the oldest sample when full.
func (r *RingBuffer) Push(v float64) {
	r.buf[r.next] = v
	r.next = (r.next + 1) % len(r.buf)
	r.count = min(r.count+1, len(r.buf))
}

func (r *RingBuffer) Len() int { return r.count }

func (r *RingBuffer) Cap() int { return len(r.buf) }

// Last is the newest sample, or zero when empty.
func (r *RingBuffer) Last() float64 {
	if r.count == 0 {
		return 0
	}
	return r.buf[(r.next-1+len(r.buf))%len(r.buf)]
}

// Slice copies the samples out, oldest first.
func (r *RingBuffer) Slice() []float64 {
	if r.count == 0 {
		return nil
	}
	out := make([]float64, 0, r.count)
	first := (r.next - r.count + len(r.buf)) % len(r.buf)
	for i := 0; i < r.count; i++ {
		out = append(out, r.buf[(first+i)%len(r.buf)])
	}
	return out
}

// Resize changes the capacity and keeps the newest samples that still fit.
func (r *RingBuffer) Resize(capacity int) {
	capacity = max(capacity, 1)
	if capacity == len(r.buf) {
		return
	}
	kept := r.Slice()
	if len(kept) > capacity {
		kept = kept[len(kept)-capacity:]
	}
	r.buf = make([]float64, capacity)
	r.next, r.count = 0, 0
	for _, v := range kept {
		r.Push(v)
	}
}

func (r *RingBuffer) Reset() {
	r.next, r.count = 0, 0
}

// Rescale maps values linearly onto 0..100 so that lo becomes 0 and hi
// becomes 100. A flat series maps to 50.
func Rescale(values []float64) (scaled []float64, lo, hi float64) {
	if len(values) == 0 {
		return nil, 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	scaled = make([]float64, len(values))
	span := hi - lo
	for i, v := range values {
		if span == 0 {
			scaled[i] = 50
			continue
		}
		scaled[i] = (v - lo) / span * 100
	}
	return scaled, lo, hi
}

// clampPercent bounds v to 0..100.
func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// RenderSparkline draws percentages (0..100) as one block character each.
// Out-of-range values are clamped.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	top := len(sparkLevels) - 1
	out := make([]rune, len(values))
	for i, v := range values {
		level := int(clampPercent(v) / 100 * float64(top))
		out[i] = sparkLevels[min(level, top)]
	}
	return string(out)
}

// brailleBits[col][row] is the dot bit for a position within one braille
// cell, which is two dots wide and four tall.
var brailleBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

const brailleBlank = 0x2800

// RenderBrailleChart plots percentages (0..100) as dots on a grid of rows
// text lines by width cells. The newest value sits on the right edge; older
// values that do not fit are dropped.
func RenderBrailleChart(values []float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}
	dotsX, dotsY := width*2, rows*4
	if len(values) > dotsX {
		values = values[len(values)-dotsX:]
	}
	offset := dotsX - len(values)

	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = make([]rune, width)
		for j := range cells[i] {
			cells[i][j] = brailleBlank
		}
	}
	for i, v := range values {
		x := offset + i
		// Row 0 is the top of the plot.
		y := dotsY - 1 - int(clampPercent(v)/100*float64(dotsY-1))
		cells[y/4][x/2] |= brailleBits[x%2][y%4]
	}

	lines := make([]string, rows)
	for i, row := range cells {
		lines[i] = string(row)
	}
	return lines
}
