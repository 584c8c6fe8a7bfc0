package fir

import "github.com/cwbudde/algo-decimate/dsp/core"

// history holds one circular sample buffer per channel. Channels are written
// in lockstep, so they share a single head. Length is a power of two and
// indices wrap with mask.
type history struct {
	rings [][]float64
	mask  int
	head  int
}

func newHistory(channels, length int) *history {
	rings := make([][]float64, channels)
	for c := range rings {
		rings[c] = make([]float64, length)
	}
	return &history{
		rings: rings,
		mask:  length - 1,
	}
}

// write stores one interleaved frame at the head.
func (h *history) write(frame []float64) {
	for c, x := range frame {
		h.rings[c][h.head] = x
	}
}

func (h *history) advance() {
	h.head = (h.head + 1) & h.mask
}

func (h *history) reset() {
	for _, r := range h.rings {
		core.Zero(r)
	}
	h.head = 0
}
