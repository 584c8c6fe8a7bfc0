package decimate

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-decimate/dsp/core"
	"github.com/cwbudde/algo-decimate/dsp/filter/design/lowpass"
	"github.com/cwbudde/algo-decimate/dsp/filter/fir"
	"github.com/cwbudde/algo-decimate/dsp/window"
)

// Stage is a decimating FIR low-pass filter over an interleaved stream.
//
// Configuration, Start, Stop and SetCutoff are serialised by mu. Process is
// serialised by procMu and may run concurrently with SetCutoff: new taps are
// published through an atomic pointer and picked up per output frame.
// Lock order is mu, then procMu.
type Stage struct {
	inputRate int
	channels  int

	mu       sync.Mutex
	cutoff   int
	rate     RateSpec
	firLen   int
	windowFn window.Func
	logger   *slog.Logger
	running  bool
	stopped  bool
	factor   int
	designer *lowpass.Designer

	procMu sync.Mutex
	dec    *fir.Decimator

	coeffs atomic.Pointer[fir.Coefficients]
}

// New creates a stage for a stream of channels interleaved channels at
// inputRate Hz.
func New(inputRate, channels int, opts ...Option) (*Stage, error) {
	if inputRate <= 0 {
		return nil, ErrInvalidRate
	}
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}

	s := &Stage{
		inputRate: inputRate,
		channels:  channels,
		firLen:    DefaultFIRLength,
		windowFn:  window.For(window.TypeHamming),
		logger:    slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s, nil
}

// InputSampleRate returns the input rate in Hz.
func (s *Stage) InputSampleRate() int {
	return s.inputRate
}

// Channels returns the interleaved channel count.
func (s *Stage) Channels() int {
	return s.channels
}

// State reports the lifecycle state.
func (s *Stage) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.running:
		return StateRunning
	case s.stopped:
		return StateStopped
	case s.rate != nil:
		return StateConfigured
	default:
		return StateUnconfigured
	}
}

// Cutoff returns the configured passband cutoff in Hz.
func (s *Stage) Cutoff() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cutoff
}

// Rate returns the configured rate specification, or nil.
func (s *Stage) Rate() RateSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rate
}

// FIRLength returns the configured tap count.
func (s *Stage) FIRLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firLen
}

// Decimation returns the resolved decimation factor, or 0 when not running.
func (s *Stage) Decimation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.factor
}

// OutputSampleRate returns the output rate in Hz, or 0 when not running.
func (s *Stage) OutputSampleRate() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.factor == 0 {
		return 0
	}
	return s.inputRate / s.factor
}

// Coefficients returns the taps currently in use, or nil when not running.
func (s *Stage) Coefficients() *fir.Coefficients {
	return s.coeffs.Load()
}

// SetCutoff sets the passband cutoff in Hz. While running the taps are
// redesigned immediately; histories, factor and phase are kept.
func (s *Stage) SetCutoff(hz int) error {
	if hz < 0 {
		return fmt.Errorf("%w: %d Hz", ErrInvalidCutoff, hz)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cutoff = hz
	if !s.running {
		return nil
	}

	c, err := s.designer.Design(hz, s.inputRate)
	if err != nil {
		return fmt.Errorf("decimate: redesign at %d Hz: %w", hz, err)
	}
	s.coeffs.Store(c)

	s.logger.Debug("cutoff changed", slog.Int("cutoff_hz", hz))

	return nil
}

// SetDecimation requests an explicit decimation factor, replacing any output
// rate request. It is ignored while running and reports whether it applied.
func (s *Stage) SetDecimation(n int) bool {
	return s.SetRate(Decimation(n))
}

// SetOutputRate requests a target output rate in Hz, replacing any
// decimation request. It is ignored while running and reports whether it applied.
func (s *Stage) SetOutputRate(hz int) bool {
	return s.SetRate(OutputRate(hz))
}

// SetRate replaces the rate specification. It is ignored while running and
// reports whether it applied.
func (s *Stage) SetRate(spec RateSpec) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.Debug("rate change ignored while running", slog.Any("rate", spec))
		return false
	}

	s.rate = spec
	return true
}

// Start resolves the decimation factor, builds the window table and the
// initial taps and allocates the channel histories. On failure nothing is
// retained and the stage stays in its previous state.
func (s *Stage) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrRunning
	}
	if s.rate == nil {
		s.logger.Error("start failed", slog.Any("err", ErrNoRateSpec))
		return ErrNoRateSpec
	}

	factor, err := s.rate.Factor(s.inputRate)
	if err != nil {
		s.logger.Error("start failed", slog.Any("err", err))
		return err
	}

	if s.firLen < 2 || !core.IsPowerOfTwo(s.firLen) {
		err := fmt.Errorf("%w: %d", ErrInvalidFIRLength, s.firLen)
		s.logger.Error("start failed", slog.Any("err", err))
		return err
	}

	designer, err := lowpass.NewDesigner(s.firLen, s.windowFn(s.firLen), lowpass.WithLogger(s.logger))
	if err != nil {
		return fmt.Errorf("decimate: designer: %w", err)
	}

	coeffs, err := designer.Design(s.cutoff, s.inputRate)
	if err != nil {
		designer.Close()
		return fmt.Errorf("decimate: initial design: %w", err)
	}

	dec, err := fir.NewDecimator(s.channels, s.firLen, factor)
	if err != nil {
		designer.Close()
		return fmt.Errorf("decimate: decimator: %w", err)
	}

	// Taps must be visible before Process can see the decimator.
	s.coeffs.Store(coeffs)

	s.procMu.Lock()
	s.dec = dec
	s.procMu.Unlock()

	s.designer = designer
	s.factor = factor
	s.running = true
	s.stopped = false

	s.logger.Info("decimator started",
		slog.Int("input_rate_hz", s.inputRate),
		slog.Int("output_rate_hz", s.inputRate/factor),
		slog.Int("decimation", factor),
		slog.Int("taps", s.firLen),
		slog.Int("channels", s.channels),
		slog.Int("cutoff_hz", s.cutoff),
	)

	return nil
}

// Stop releases the histories, taps and designer resources. Stop on a
// stage that is not running is a no-op.
func (s *Stage) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.procMu.Lock()
	s.dec = nil
	s.procMu.Unlock()

	s.designer.Close()
	s.designer = nil
	s.coeffs.Store(nil)
	s.factor = 0
	s.running = false
	s.stopped = true

	s.logger.Info("decimator stopped")
}

// MaxOutputLen returns the dst length that is always sufficient for a
// Process call with srcLen interleaved samples: ceil(frames/factor) frames.
// It returns 0 when the stage is not running.
func (s *Stage) MaxOutputLen(srcLen int) int {
	s.mu.Lock()
	factor := s.factor
	s.mu.Unlock()

	if factor == 0 || srcLen <= 0 {
		return 0
	}

	frames := srcLen / s.channels
	return (frames + factor - 1) / factor * s.channels
}

// Process filters and decimates the interleaved samples in src into dst and
// returns the number of samples written. len(src) must be a multiple of the
// channel count. The decimation phase carries over between calls, so dst
// may receive zero frames for a short src.
func (s *Stage) Process(dst, src []float64) (int, error) {
	s.procMu.Lock()
	defer s.procMu.Unlock()

	if s.dec == nil {
		return 0, ErrNotRunning
	}

	ch := s.channels
	if len(src)%ch != 0 {
		return 0, fmt.Errorf("%w: %d samples, %d channels", ErrFrameAlignment, len(src), ch)
	}

	need := s.dec.OutputFrames(len(src)/ch) * ch
	if len(dst) < need {
		return 0, fmt.Errorf("%w: have %d, need %d", ErrShortOutput, len(dst), need)
	}

	return s.dec.Process(dst, src, &s.coeffs) * ch, nil
}
