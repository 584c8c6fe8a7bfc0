package decimate

import (
	"fmt"
	"strconv"
)

// RateSpec selects how the output rate is derived from the input rate.
// It is either a Decimation or an OutputRate.
type RateSpec interface {
	// Factor resolves the integer decimation factor for inputRate.
	Factor(inputRate int) (int, error)
	String() string

	rateSpec()
}

// Decimation keeps one frame out of every n.
type Decimation int

// Factor returns n.
func (d Decimation) Factor(int) (int, error) {
	if d <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDecimation, int(d))
	}
	return int(d), nil
}

func (Decimation) rateSpec() {}

func (d Decimation) String() string {
	return "decimation " + strconv.Itoa(int(d))
}

// OutputRate requests a target output sample rate in Hz. The input rate
// must be an exact integer multiple of it.
type OutputRate int

// Factor returns inputRate / r when the division is exact.
func (r OutputRate) Factor(inputRate int) (int, error) {
	if r <= 0 {
		return 0, fmt.Errorf("%w: %d Hz", ErrInvalidOutputRate, int(r))
	}
	out := int(r)
	if inputRate%out != 0 {
		return 0, fmt.Errorf("%w: %d Hz / %d Hz", ErrRateMismatch, inputRate, out)
	}
	return inputRate / out, nil
}

func (OutputRate) rateSpec() {}

func (r OutputRate) String() string {
	return "output rate " + strconv.Itoa(int(r)) + " Hz"
}
