package window

import (
	"errors"
	"fmt"
)

var (
	errEmptyCoeffs      = errors.New("window coefficients must not be empty")
	errZeroCoherentGain = errors.New("window coherent gain is zero")

	// ErrUnknownWindow is returned by Parse for unrecognised names.
	ErrUnknownWindow = errors.New("window: unknown window")
)

func unknownName(name string) error {
	return fmt.Errorf("%w %q", ErrUnknownWindow, name)
}
