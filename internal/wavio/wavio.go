// Package wavio reads and writes interleaved PCM WAV frames as float64
// samples normalised to [-1, 1).
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	// ErrInvalidFile is returned when the input is not a RIFF/WAVE stream.
	ErrInvalidFile = errors.New("wavio: not a valid WAV file")
	// ErrUnsupportedFormat is returned for non-PCM encodings.
	ErrUnsupportedFormat = errors.New("wavio: unsupported audio format")
	// ErrUnsupportedBitDepth is returned for bit depths other than 8, 16, 24 or 32.
	ErrUnsupportedBitDepth = errors.New("wavio: unsupported bit depth")
	// ErrInvalidChannels is returned for a non-positive channel count.
	ErrInvalidChannels = errors.New("wavio: invalid channel count")
	// ErrInvalidRate is returned for a non-positive sample rate.
	ErrInvalidRate = errors.New("wavio: invalid sample rate")
	// ErrFrameAlignment is returned when a sample slice is not whole frames.
	ErrFrameAlignment = errors.New("wavio: sample count is not a multiple of the channel count")
)

const pcmFormat = 1

// fullScale returns the integer magnitude of full scale for bitDepth.
func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
		return float64(int64(1) << (bitDepth - 1)), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

// 8-bit WAV is unsigned with a midpoint of 128.
func pcmOffset(bitDepth int) int {
	if bitDepth == 8 {
		return 128
	}
	return 0
}

// Reader decodes PCM frames from a WAV stream.
type Reader struct {
	dec      *wav.Decoder
	buf      *audio.IntBuffer
	channels int
	rate     int
	bitDepth int
	scale    float64
	offset   int
}

// NewReader validates the header of r and positions it at the PCM data.
func NewReader(r io.ReadSeeker) (*Reader, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("wavio: seek to PCM data: %w", err)
	}
	if dec.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	scale, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	channels := int(dec.NumChans)
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}

	return &Reader{
		dec:      dec,
		buf:      &audio.IntBuffer{Format: dec.Format(), SourceBitDepth: bitDepth},
		channels: channels,
		rate:     int(dec.SampleRate),
		bitDepth: bitDepth,
		scale:    scale,
		offset:   pcmOffset(bitDepth),
	}, nil
}

// SampleRate returns the stream rate in Hz.
func (r *Reader) SampleRate() int { return r.rate }

// Channels returns the interleaved channel count.
func (r *Reader) Channels() int { return r.channels }

// BitDepth returns the PCM sample width in bits.
func (r *Reader) BitDepth() int { return r.bitDepth }

// Read fills dst with whole interleaved frames and returns the number of
// samples written. It returns io.EOF once the data chunk is exhausted.
func (r *Reader) Read(dst []float64) (int, error) {
	want := len(dst) - len(dst)%r.channels
	if want == 0 {
		return 0, nil
	}

	if cap(r.buf.Data) < want {
		r.buf.Data = make([]int, want)
	}
	r.buf.Data = r.buf.Data[:want]

	n, err := r.dec.PCMBuffer(r.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("wavio: read PCM: %w", err)
	}
	n -= n % r.channels
	if n == 0 {
		return 0, io.EOF
	}

	inv := 1 / r.scale
	for i, v := range r.buf.Data[:n] {
		dst[i] = float64(v-r.offset) * inv
	}

	return n, nil
}

// Writer encodes float64 frames as PCM WAV.
type Writer struct {
	enc      *wav.Encoder
	buf      *audio.IntBuffer
	channels int
	scale    float64
	offset   int
	clipped  int
}

// NewWriter starts a WAV stream on w. The header is finalised by Close.
func NewWriter(w io.WriteSeeker, sampleRate, channels, bitDepth int) (*Writer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	scale, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	return &Writer{
		enc: wav.NewEncoder(w, sampleRate, bitDepth, channels, pcmFormat),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
		channels: channels,
		scale:    scale,
		offset:   pcmOffset(bitDepth),
	}, nil
}

// Write quantises src to the output bit depth, saturating at full scale.
// len(src) must be a multiple of the channel count.
func (w *Writer) Write(src []float64) error {
	if len(src)%w.channels != 0 {
		return fmt.Errorf("%w: %d samples, %d channels", ErrFrameAlignment, len(src), w.channels)
	}
	if len(src) == 0 {
		return nil
	}

	if cap(w.buf.Data) < len(src) {
		w.buf.Data = make([]int, len(src))
	}
	w.buf.Data = w.buf.Data[:len(src)]

	lo, hi := -w.scale, w.scale-1
	for i, v := range src {
		q := math.Round(v * w.scale)
		if q > hi {
			q = hi
			w.clipped++
		} else if q < lo {
			q = lo
			w.clipped++
		}
		w.buf.Data[i] = int(q) + w.offset
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("wavio: write PCM: %w", err)
	}
	return nil
}

// Clipped returns the number of samples saturated so far.
func (w *Writer) Clipped() int { return w.clipped }

// Close writes the final chunk sizes. It does not close the underlying writer.
func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("wavio: finalise header: %w", err)
	}
	return nil
}
