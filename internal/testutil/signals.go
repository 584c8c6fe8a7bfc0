// Package testutil holds deterministic signal generators and comparison
// helpers shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Interleave merges equally long channel slices into one frame-major slice.
func Interleave(channels ...[]float64) []float64 {
	if len(channels) == 0 {
		return nil
	}
	frames := len(channels[0])
	out := make([]float64, frames*len(channels))
	for c, ch := range channels {
		for i := 0; i < frames; i++ {
			out[i*len(channels)+c] = ch[i]
		}
	}
	return out
}

// Deinterleave splits a frame-major slice into per-channel slices.
func Deinterleave(buf []float64, channels int) [][]float64 {
	frames := len(buf) / channels
	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, frames)
		for i := range frames {
			out[c][i] = buf[i*channels+c]
		}
	}
	return out
}

// DirectFIR convolves x with taps, assuming zero history before x[0].
// The result has len(x) samples.
func DirectFIR(taps, x []float64) []float64 {
	out := make([]float64, len(x))
	for n := range x {
		var y float64
		for k, h := range taps {
			if n-k < 0 {
				break
			}
			y += h * x[n-k]
		}
		out[n] = y
	}
	return out
}
