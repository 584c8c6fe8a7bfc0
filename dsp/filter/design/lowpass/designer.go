package lowpass

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-decimate/dsp/core"
	"github.com/cwbudde/algo-decimate/dsp/filter/fir"
)

var (
	// ErrInvalidLength indicates a transform length that is not a power of two >= 2.
	ErrInvalidLength = errors.New("lowpass: length must be a power of two >= 2")
	// ErrWindowLength indicates a window table whose length differs from the transform length.
	ErrWindowLength = errors.New("lowpass: window length must equal filter length")
	// ErrInvalidRate indicates a non-positive input sample rate.
	ErrInvalidRate = errors.New("lowpass: input sample rate must be > 0")
	// ErrInvalidCutoff indicates a negative cutoff frequency.
	ErrInvalidCutoff = errors.New("lowpass: cutoff must be >= 0")
	// ErrClosed is returned by Design after Close.
	ErrClosed = errors.New("lowpass: designer closed")
)

// Option configures a Designer.
type Option func(*Designer)

// WithLogger sets the sink for the per-design debug dump of the taps.
func WithLogger(l *slog.Logger) Option {
	return func(d *Designer) {
		if l != nil {
			d.logger = l
		}
	}
}

// Designer synthesises N-tap low-pass coefficient sets. It is not safe for
// concurrent use; callers serialise Design calls.
type Designer struct {
	n      int
	mask   int
	window []float64
	logger *slog.Logger

	plan    *algofft.Plan[complex128]
	spec    []complex128
	impulse []complex128
	taps    []float64
}

// NewDesigner creates a designer for n taps using the given window table.
// The window is copied.
func NewDesigner(n int, window []float64, opts ...Option) (*Designer, error) {
	if n < 2 || !core.IsPowerOfTwo(n) {
		return nil, ErrInvalidLength
	}
	if len(window) != n {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrWindowLength, len(window), n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("lowpass: failed to create FFT plan: %w", err)
	}

	d := &Designer{
		n:       n,
		mask:    n - 1,
		window:  append([]float64(nil), window...),
		logger:  slog.New(slog.DiscardHandler),
		plan:    plan,
		spec:    make([]complex128, n),
		impulse: make([]complex128, n),
		taps:    make([]float64, n),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	return d, nil
}

// Len returns the number of taps produced by Design.
func (d *Designer) Len() int {
	return d.n
}

// CutoffBin returns the first stopband bin for cutoffHz at inputRateHz with
// an n-point mask, using step-wise integer division.
func CutoffBin(n, cutoffHz, inputRateHz int) int {
	return n * cutoffHz / inputRateHz / 2
}

// Design returns the windowed low-pass taps for cutoffHz at inputRateHz.
// A cutoff of 0 yields an all-zero set, which is valid.
func (d *Designer) Design(cutoffHz, inputRateHz int) (*fir.Coefficients, error) {
	if d.plan == nil {
		return nil, ErrClosed
	}
	if inputRateHz <= 0 {
		return nil, ErrInvalidRate
	}
	if cutoffHz < 0 {
		return nil, ErrInvalidCutoff
	}

	maxBin := CutoffBin(d.n, cutoffHz, inputRateHz)

	// Purely real, even spectrum: each bin mirrors to (N-k) mod N.
	for k := 0; k <= d.n/2; k++ {
		v := complex(0, 0)
		if k < maxBin {
			v = complex(1, 0)
		}
		d.spec[k] = v
		d.spec[(d.n-k)&d.mask] = v
	}

	// algo-fft normalises the inverse by 1/N.
	if err := d.plan.Inverse(d.impulse, d.spec); err != nil {
		return nil, fmt.Errorf("lowpass: inverse FFT failed: %w", err)
	}

	half := d.n / 2
	for k := range d.taps {
		d.taps[k] = real(d.impulse[(k+half)&d.mask])
	}
	vecmath.MulBlockInPlace(d.taps, d.window)

	if d.logger.Enabled(context.Background(), slog.LevelDebug) {
		d.logger.Debug("designed low-pass taps",
			slog.Int("cutoff_hz", cutoffHz),
			slog.Int("input_rate_hz", inputRateHz),
			slog.Int("max_bin", maxBin),
			slog.Any("taps", d.taps),
		)
	}

	return fir.NewCoefficients(d.taps), nil
}

// Close releases the FFT plan, scratch spectra and window table.
// Close is idempotent.
func (d *Designer) Close() {
	d.plan = nil
	d.spec = nil
	d.impulse = nil
	d.taps = nil
	d.window = nil
}

// Design is a one-shot helper creating a temporary Designer for n taps.
func Design(cutoffHz, inputRateHz, n int, window []float64) (*fir.Coefficients, error) {
	d, err := NewDesigner(n, window)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	return d.Design(cutoffHz, inputRateHz)
}
