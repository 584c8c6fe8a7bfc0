package fir

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-decimate/dsp/core"
)

// Coefficients is an immutable set of FIR taps in causal order:
// tap 0 weights the most recent sample.
type Coefficients struct {
	taps     []float64
	reversed []float64
}

// Source yields the coefficient set to use for the next output frame.
type Source interface {
	Load() *Coefficients
}

// NewCoefficients creates a coefficient set from taps. The slice is copied.
func NewCoefficients(taps []float64) *Coefficients {
	c := make([]float64, len(taps))
	copy(c, taps)
	return &Coefficients{
		taps:     c,
		reversed: core.Reversed(nil, c),
	}
}

// Load returns c itself, so a fixed set can be used wherever a Source is expected.
func (c *Coefficients) Load() *Coefficients {
	return c
}

// Len returns the number of taps.
func (c *Coefficients) Len() int {
	return len(c.taps)
}

// At returns tap i.
func (c *Coefficients) At(i int) float64 {
	return c.taps[i]
}

// Taps returns a copy of the taps.
func (c *Coefficients) Taps() []float64 {
	out := make([]float64, len(c.taps))
	copy(out, c.taps)
	return out
}

// DCGain returns the sum of the taps, the filter gain at 0 Hz.
func (c *Coefficients) DCGain() float64 {
	if len(c.taps) == 0 {
		return 0
	}
	return vecmath.Sum(c.taps)
}

// Peak returns the largest absolute tap value.
func (c *Coefficients) Peak() float64 {
	if len(c.taps) == 0 {
		return 0
	}
	return vecmath.MaxAbs(c.taps)
}

// Response computes the complex frequency response H(e^{-jw}) at the given
// frequency (Hz) and sample rate (Hz).
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	var h complex128
	for k, v := range c.taps {
		h += complex(v, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return h
}

// MagnitudeDB returns the magnitude response in dB at the given frequency.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.LinearToDB(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// convolve returns sum_k taps[k] * ring[(head-k) & (len(ring)-1)].
// The ring is split at head into two contiguous runs so each run pairs with
// a contiguous slice of the reversed taps.
//
//	ring[0..head]     <-> taps[head..0]
//	ring[head+1..N-1] <-> taps[N-1..head+1]
func (c *Coefficients) convolve(ring []float64, head int) float64 {
	split := len(ring) - 1 - head
	return vecmath.DotProduct(ring[:head+1], c.reversed[split:]) +
		vecmath.DotProduct(ring[head+1:], c.reversed[:split])
}
