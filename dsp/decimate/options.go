package decimate

import (
	"log/slog"

	"github.com/cwbudde/algo-decimate/dsp/window"
)

// DefaultFIRLength is the tap count used when WithFIRLength is not given.
const DefaultFIRLength = 64

// Option configures a Stage at construction.
type Option func(*Stage)

// WithFIRLength sets the tap count. Start rejects values that are not a
// power of two; non-positive values are ignored.
func WithFIRLength(n int) Option {
	return func(s *Stage) {
		if n > 0 {
			s.firLen = n
		}
	}
}

// WithWindow sets the window generator used for the taper table.
// The default is a symmetric Hamming window.
func WithWindow(fn window.Func) Option {
	return func(s *Stage) {
		if fn != nil {
			s.windowFn = fn
		}
	}
}

// WithLogger sets the structured logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Stage) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCutoff sets the initial passband cutoff in Hz. Negative values are ignored.
func WithCutoff(hz int) Option {
	return func(s *Stage) {
		if hz >= 0 {
			s.cutoff = hz
		}
	}
}

// WithRate sets the initial rate specification.
func WithRate(spec RateSpec) Option {
	return func(s *Stage) {
		if spec != nil {
			s.rate = spec
		}
	}
}
