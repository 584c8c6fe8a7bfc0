package fir

import (
	"errors"

	"github.com/cwbudde/algo-decimate/dsp/core"
)

var (
	// ErrInvalidChannels indicates a non-positive channel count.
	ErrInvalidChannels = errors.New("fir: channel count must be > 0")
	// ErrInvalidLength indicates a history length that is not a power of two >= 2.
	ErrInvalidLength = errors.New("fir: length must be a power of two >= 2")
	// ErrInvalidFactor indicates a non-positive decimation factor.
	ErrInvalidFactor = errors.New("fir: decimation factor must be > 0")
)

// Decimator filters an interleaved multichannel stream and keeps one output
// frame out of every factor input frames.
type Decimator struct {
	hist     *history
	channels int
	factor   int
	count    int
}

// NewDecimator creates a decimator for channels interleaved channels, a
// history (and tap count) of length and the given decimation factor.
func NewDecimator(channels, length, factor int) (*Decimator, error) {
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}
	if length < 2 || !core.IsPowerOfTwo(length) {
		return nil, ErrInvalidLength
	}
	if factor <= 0 {
		return nil, ErrInvalidFactor
	}

	return &Decimator{
		hist:     newHistory(channels, length),
		channels: channels,
		factor:   factor,
	}, nil
}

// Channels returns the interleaved channel count.
func (d *Decimator) Channels() int {
	return d.channels
}

// Factor returns the decimation factor.
func (d *Decimator) Factor() int {
	return d.factor
}

// Length returns the per-channel history length, which equals the tap count.
func (d *Decimator) Length() int {
	return d.hist.mask + 1
}

// Phase returns the number of input frames consumed since the last output frame.
func (d *Decimator) Phase() int {
	return d.count
}

// OutputFrames returns how many frames the next Process call will emit for
// inFrames input frames, given the current phase.
func (d *Decimator) OutputFrames(inFrames int) int {
	if inFrames <= 0 {
		return 0
	}
	return (d.count + inFrames) / d.factor
}

// Process consumes the interleaved frames in src and writes the decimated,
// filtered frames to dst. It returns the number of output frames written.
//
// The taps are loaded from coeffs once per output frame and must have
// Length() entries. dst must hold OutputFrames(len(src)/Channels()) frames.
// A trailing partial frame in src is ignored.
//
//	y[c] = sum_{k=0}^{N-1} h[k] * x[c][n-k]
func (d *Decimator) Process(dst, src []float64, coeffs Source) int {
	ch := d.channels
	out := 0

	for i := 0; i+ch <= len(src); i += ch {
		d.hist.write(src[i : i+ch])

		d.count++
		if d.count == d.factor {
			taps := coeffs.Load()
			frame := dst[out*ch : (out+1)*ch]
			for c := range frame {
				frame[c] = taps.convolve(d.hist.rings[c], d.hist.head)
			}
			out++
			d.count = 0
		}

		d.hist.advance()
	}

	return out
}

// Reset clears the histories and the decimation phase.
func (d *Decimator) Reset() {
	d.hist.reset()
	d.count = 0
}
