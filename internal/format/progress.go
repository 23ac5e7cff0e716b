package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ProgressState holds the progress of each tracked benchmark (0.0 to 1.0)
// and computes the overall average.
type ProgressState struct {
	progresses    []float64
	numBenchmarks int
}

// NewProgressState creates a state tracking numBenchmarks progress slots.
func NewProgressState(numBenchmarks int) *ProgressState {
	if numBenchmarks < 0 {
		numBenchmarks = 0
	}
	return &ProgressState{
		progresses:    make([]float64, numBenchmarks),
		numBenchmarks: numBenchmarks,
	}
}

// Update records a progress value. Out-of-range indices are ignored and the
// value is clamped to [0, 1].
func (ps *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= len(ps.progresses) {
		return
	}
	ps.progresses[index] = clamp01(value)
}

// CalculateAverage computes the average progress across all slots.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numBenchmarks == 0 {
		return 0.0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numBenchmarks)
}

// maxETA caps estimates produced from very slow progress rates.
const maxETA = 24 * time.Hour

// rateSmoothing is the weight of the newest observation in the exponential
// moving average of the progress rate.
const rateSmoothing = 0.3

// ProgressWithETA extends ProgressState with a smoothed progress rate used to
// estimate the remaining time.
type ProgressWithETA struct {
	*ProgressState
	mu            sync.Mutex
	numBenchmarks int
	startTime     time.Time
	lastUpdate    time.Time
	lastProgress  float64
	progressRate  float64 // progress fraction per second
}

// NewProgressWithETA creates a tracker for numBenchmarks slots.
func NewProgressWithETA(numBenchmarks int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numBenchmarks),
		numBenchmarks: numBenchmarks,
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records a progress value and returns the new average and ETA.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Update(index, value)
	avg := p.CalculateAverage()

	now := time.Now()
	elapsed := now.Sub(p.lastUpdate).Seconds()
	if elapsed > 0 && avg > p.lastProgress {
		rate := (avg - p.lastProgress) / elapsed
		if p.progressRate == 0 {
			p.progressRate = rate
		} else {
			p.progressRate = rateSmoothing*rate + (1-rateSmoothing)*p.progressRate
		}
		p.lastProgress = avg
		p.lastUpdate = now
	}
	return avg, p.etaLocked(avg)
}

// GetETA returns the current remaining-time estimate.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked(p.CalculateAverage())
}

func (p *ProgressWithETA) etaLocked(avg float64) time.Duration {
	if p.progressRate <= 0 || avg >= 1.0 {
		return 0
	}
	seconds := (1.0 - avg) / p.progressRate
	if seconds >= maxETA.Seconds() {
		return maxETA
	}
	return time.Duration(seconds * float64(time.Second))
}

// FormatETA renders an ETA in a compact form ("2m30s", "1h15m").
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}
	eta = eta.Round(time.Second)
	h := int(eta.Hours())
	m := int(eta.Minutes()) % 60
	s := int(eta.Seconds()) % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}

// ProgressBar renders a textual bar of the given length.
func ProgressBar(progress float64, length int) string {
	progress = clamp01(progress)
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// FormatProgressBarWithETA renders "[bar] 42.0% ETA: 12s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
