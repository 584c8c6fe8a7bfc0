package fir

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/cwbudde/algo-decimate/internal/testutil"
)

func TestNewDecimatorValidation(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		length   int
		factor   int
		want     error
	}{
		{name: "ok", channels: 2, length: 64, factor: 3},
		{name: "channels", channels: 0, length: 64, factor: 1, want: ErrInvalidChannels},
		{name: "length not pow2", channels: 1, length: 48, factor: 1, want: ErrInvalidLength},
		{name: "length one", channels: 1, length: 1, factor: 1, want: ErrInvalidLength},
		{name: "factor", channels: 1, length: 8, factor: 0, want: ErrInvalidFactor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDecimator(tt.channels, tt.length, tt.factor)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if tt.want == nil && d.Length() != tt.length {
				t.Fatalf("Length = %d, want %d", d.Length(), tt.length)
			}
		})
	}
}

func TestProcessImpulseRecoversTaps(t *testing.T) {
	const n = 8
	taps := []float64{0.1, 0.2, 0.3, 0.4, -0.4, -0.3, -0.2, -0.1}
	c := NewCoefficients(taps)

	d, err := NewDecimator(2, n, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Impulse on channel 0 only, silence on channel 1.
	src := testutil.Interleave(testutil.Impulse(2*n, 0), make([]float64, 2*n))
	dst := make([]float64, len(src))

	frames := d.Process(dst, src, c)
	if frames != 2*n {
		t.Fatalf("frames = %d, want %d", frames, 2*n)
	}

	chs := testutil.Deinterleave(dst, 2)
	want := append(append([]float64(nil), taps...), make([]float64, n)...)
	testutil.RequireSliceNearlyEqual(t, chs[0], want, eps)
	testutil.RequireSliceNearlyEqual(t, chs[1], make([]float64, 2*n), 0)
}

func TestProcessFactorOneMatchesDirectConvolution(t *testing.T) {
	const n = 16
	taps := testutil.DeterministicNoise(1, 0.5, n)
	x := testutil.DeterministicNoise(2, 1, 100)

	d, err := NewDecimator(1, n, 1)
	if err != nil {
		t.Fatal(err)
	}

	dst := make([]float64, len(x))
	if frames := d.Process(dst, x, NewCoefficients(taps)); frames != len(x) {
		t.Fatalf("frames = %d, want %d", frames, len(x))
	}

	testutil.RequireSliceNearlyEqual(t, dst, testutil.DirectFIR(taps, x), 1e-12)
}

func TestProcessDecimatesDirectConvolution(t *testing.T) {
	const (
		n      = 32
		factor = 4
	)
	taps := testutil.DeterministicNoise(5, 0.5, n)
	l := testutil.DeterministicSine(300, 8000, 1, 200)
	r := testutil.DeterministicNoise(6, 1, 200)

	d, err := NewDecimator(2, n, factor)
	if err != nil {
		t.Fatal(err)
	}

	dst := make([]float64, 2*len(l)/factor)
	frames := d.Process(dst, testutil.Interleave(l, r), NewCoefficients(taps))
	if frames != len(l)/factor {
		t.Fatalf("frames = %d, want %d", frames, len(l)/factor)
	}

	// The first output is emitted on input frame factor-1.
	fullL := testutil.DirectFIR(taps, l)
	fullR := testutil.DirectFIR(taps, r)
	wantL := make([]float64, frames)
	wantR := make([]float64, frames)
	for i := range frames {
		wantL[i] = fullL[(i+1)*factor-1]
		wantR[i] = fullR[(i+1)*factor-1]
	}

	chs := testutil.Deinterleave(dst, 2)
	testutil.RequireSliceNearlyEqual(t, chs[0], wantL, 1e-12)
	testutil.RequireSliceNearlyEqual(t, chs[1], wantR, 1e-12)
}

func TestProcessContinuityAcrossCalls(t *testing.T) {
	const n = 8
	c := NewCoefficients(testutil.DeterministicNoise(11, 1, n))
	x := testutil.DeterministicNoise(12, 1, 6)

	whole, _ := NewDecimator(1, n, 3)
	wantBuf := make([]float64, 2)
	if frames := whole.Process(wantBuf, x, c); frames != 2 {
		t.Fatalf("single call frames = %d, want 2", frames)
	}

	split, _ := NewDecimator(1, n, 3)
	got := make([]float64, 2)

	if frames := split.Process(got, x[:2], c); frames != 0 {
		t.Fatalf("first call frames = %d, want 0", frames)
	}
	if split.Phase() != 2 {
		t.Fatalf("phase = %d, want 2", split.Phase())
	}
	if want := split.OutputFrames(4); want != 2 {
		t.Fatalf("OutputFrames(4) = %d, want 2", want)
	}
	if frames := split.Process(got, x[2:], c); frames != 2 {
		t.Fatalf("second call frames = %d, want 2", frames)
	}

	testutil.RequireBitIdentical(t, got, wantBuf)
}

func TestProcessIrregularBlocks(t *testing.T) {
	const n = 16
	c := NewCoefficients(testutil.DeterministicNoise(21, 1, n))
	x := testutil.DeterministicNoise(22, 1, 3*101)

	ref, _ := NewDecimator(3, n, 5)
	want := make([]float64, len(x))
	wantFrames := ref.Process(want, x, c)

	d, _ := NewDecimator(3, n, 5)
	got := make([]float64, 0, len(x))
	buf := make([]float64, len(x))
	for _, frames := range []int{1, 4, 7, 0, 13, 29, 47} {
		block := x[:3*frames]
		x = x[3*frames:]
		k := d.Process(buf, block, c)
		got = append(got, buf[:3*k]...)
	}

	testutil.RequireSliceNearlyEqual(t, got, want[:3*wantFrames], 0)
}

func TestProcessLoadsSourcePerFrame(t *testing.T) {
	const n = 4
	var src atomic.Pointer[Coefficients]
	src.Store(NewCoefficients([]float64{1, 0, 0, 0}))

	d, _ := NewDecimator(1, n, 1)
	dst := make([]float64, 1)

	d.Process(dst, []float64{2}, &src)
	if dst[0] != 2 {
		t.Fatalf("got %v, want 2", dst[0])
	}

	src.Store(NewCoefficients([]float64{0.5, 0, 0, 0}))
	d.Process(dst, []float64{2}, &src)
	if dst[0] != 1 {
		t.Fatalf("got %v, want 1", dst[0])
	}
}

func TestReset(t *testing.T) {
	const n = 8
	taps := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	c := NewCoefficients(taps)

	d, _ := NewDecimator(1, n, 2)
	dst := make([]float64, n)
	d.Process(dst, []float64{1, 1, 1}, c)
	d.Reset()

	if d.Phase() != 0 {
		t.Fatalf("phase = %d after reset", d.Phase())
	}

	// After reset the impulse response starts again at tap 1 (second frame).
	frames := d.Process(dst, testutil.Impulse(n, 0), c)
	if frames != n/2 {
		t.Fatalf("frames = %d, want %d", frames, n/2)
	}
	testutil.RequireSliceNearlyEqual(t, dst[:frames], []float64{2, 4, 6, 8}, eps)
}
