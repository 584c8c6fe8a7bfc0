package wavio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, rate, channels, bitDepth int, blocks ...[]float64) (string, int) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w, err := NewWriter(f, rate, channels, bitDepth)
	require.NoError(t, err)
	for _, b := range blocks {
		require.NoError(t, w.Write(b))
	}
	require.NoError(t, w.Close())

	return path, w.Clipped()
}

func readAll(t *testing.T, path string, block int) (*Reader, []float64) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	r, err := NewReader(f)
	require.NoError(t, err)

	var out []float64
	buf := make([]float64, block)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}

	return r, out
}

func TestRoundTrip16Bit(t *testing.T) {
	in := []float64{0, 0.5, -0.5, -1, 1.0 / 32768, -3.0 / 32768, 0.25, -0.25}

	path, clipped := writeFile(t, 8000, 2, 16, in[:4], in[4:])
	require.Zero(t, clipped)

	r, got := readAll(t, path, 6)
	require.Equal(t, 8000, r.SampleRate())
	require.Equal(t, 2, r.Channels())
	require.Equal(t, 16, r.BitDepth())
	require.Equal(t, in, got)
}

func TestRoundTripBitDepths(t *testing.T) {
	for _, depth := range []int{8, 16, 24, 32} {
		t.Run(fmt.Sprintf("%dbit", depth), func(t *testing.T) {
			in := []float64{0, 0.5, -0.5, -1, 0.75, -0.125}

			path, _ := writeFile(t, 44100, 3, depth, in)
			r, got := readAll(t, path, 64)

			require.Equal(t, depth, r.BitDepth())
			require.Equal(t, 3, r.Channels())
			require.Equal(t, in, got)
		})
	}
}

func TestWriterSaturates(t *testing.T) {
	path, clipped := writeFile(t, 8000, 1, 16, []float64{1.5, -2, 1, 0.1})
	require.Equal(t, 3, clipped)

	_, got := readAll(t, path, 16)
	require.Len(t, got, 4)
	require.InDelta(t, 32767.0/32768, got[0], 1e-12)
	require.InDelta(t, -1, got[1], 1e-12)
	require.InDelta(t, 32767.0/32768, got[2], 1e-12)
	require.InDelta(t, 0.1, got[3], 1.0/32768)
}

func TestReaderReturnsWholeFrames(t *testing.T) {
	path, _ := writeFile(t, 8000, 2, 16, make([]float64, 10))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r, err := NewReader(f)
	require.NoError(t, err)

	n, err := r.Read(make([]float64, 1))
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = r.Read(make([]float64, 7))
	require.NoError(t, err)
	require.Equal(t, 6, n)

	n, err = r.Read(make([]float64, 8))
	require.NoError(t, err)
	require.Equal(t, 4, n)

	_, err = r.Read(make([]float64, 8))
	require.ErrorIs(t, err, io.EOF)
}

func TestReaderRejectsGarbage(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("definitely not a riff header")))
	require.ErrorIs(t, err, ErrInvalidFile)
}

func TestWriterValidation(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
	require.NoError(t, err)
	defer f.Close()

	_, err = NewWriter(f, 0, 1, 16)
	require.ErrorIs(t, err, ErrInvalidRate)

	_, err = NewWriter(f, 8000, 0, 16)
	require.ErrorIs(t, err, ErrInvalidChannels)

	_, err = NewWriter(f, 8000, 1, 12)
	require.ErrorIs(t, err, ErrUnsupportedBitDepth)

	w, err := NewWriter(f, 8000, 2, 16)
	require.NoError(t, err)
	require.ErrorIs(t, w.Write([]float64{1, 2, 3}), ErrFrameAlignment)
}
