// Package level accumulates per-channel signal levels over interleaved
// sample blocks.
package level

import (
	"math"

	"github.com/cwbudde/algo-decimate/dsp/core"
)

// Stats holds the level summary for one channel.
type Stats struct {
	Frames  int
	DC      float64 // mean
	RMS     float64
	RMSdB   float64
	Peak    float64 // max |x|
	PeakdB  float64
	Crest   float64 // peak / RMS (linear), 0 when RMS is 0
	CrestdB float64
}

type channel struct {
	sum   float64
	sumSq float64
	peak  float64
}

// Meter accumulates levels across blocks of interleaved frames.
type Meter struct {
	ch     []channel
	frames int
}

// NewMeter returns a meter for the given channel count. Non-positive counts
// are treated as mono.
func NewMeter(channels int) *Meter {
	if channels < 1 {
		channels = 1
	}
	return &Meter{ch: make([]channel, channels)}
}

// Channels returns the channel count.
func (m *Meter) Channels() int { return len(m.ch) }

// Frames returns the number of whole frames seen.
func (m *Meter) Frames() int { return m.frames }

// Update adds the whole frames of an interleaved block. A trailing partial
// frame is ignored.
func (m *Meter) Update(samples []float64) {
	nch := len(m.ch)
	n := len(samples) / nch * nch

	for i := 0; i < n; i += nch {
		for c := range m.ch {
			x := samples[i+c]
			acc := &m.ch[c]
			acc.sum += x
			acc.sumSq += x * x
			if a := math.Abs(x); a > acc.peak {
				acc.peak = a
			}
		}
	}
	m.frames += n / nch
}

// Channel returns the summary for channel c. Before any frame has been seen
// all dB fields are -Inf.
func (m *Meter) Channel(c int) Stats {
	acc := m.ch[c]
	if m.frames == 0 {
		return Stats{RMSdB: math.Inf(-1), PeakdB: math.Inf(-1), CrestdB: math.Inf(-1)}
	}

	nf := float64(m.frames)
	rms := math.Sqrt(acc.sumSq / nf)

	s := Stats{
		Frames:  m.frames,
		DC:      acc.sum / nf,
		RMS:     rms,
		RMSdB:   core.LinearToDB(rms),
		Peak:    acc.peak,
		PeakdB:  core.LinearToDB(acc.peak),
		CrestdB: math.Inf(-1),
	}
	if rms > 0 {
		s.Crest = acc.peak / rms
		s.CrestdB = core.LinearToDB(s.Crest)
	}
	return s
}

// Loudest returns the summary of the channel with the highest peak.
func (m *Meter) Loudest() Stats {
	best := 0
	for c := range m.ch {
		if m.ch[c].peak > m.ch[best].peak {
			best = c
		}
	}
	return m.Channel(best)
}

// Reset clears all accumulated data.
func (m *Meter) Reset() {
	clear(m.ch)
	m.frames = 0
}
