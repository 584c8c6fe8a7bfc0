package decimate

import "errors"

var (
	// ErrNoRateSpec indicates Start without a decimation factor or output rate.
	ErrNoRateSpec = errors.New("decimate: decimation factor or output rate required")
	// ErrRateMismatch indicates an input rate that is not an integer multiple of the output rate.
	ErrRateMismatch = errors.New("decimate: input rate must be integer multiple of output rate")
	// ErrInvalidDecimation indicates a non-positive decimation factor.
	ErrInvalidDecimation = errors.New("decimate: decimation factor must be > 0")
	// ErrInvalidOutputRate indicates a non-positive output rate.
	ErrInvalidOutputRate = errors.New("decimate: output rate must be > 0")
	// ErrInvalidFIRLength indicates a FIR length that is not a power of two >= 2.
	ErrInvalidFIRLength = errors.New("decimate: FIR length must be a power of two >= 2")
	// ErrInvalidRate indicates a non-positive input sample rate.
	ErrInvalidRate = errors.New("decimate: input sample rate must be > 0")
	// ErrInvalidChannels indicates a non-positive channel count.
	ErrInvalidChannels = errors.New("decimate: channel count must be > 0")
	// ErrInvalidCutoff indicates a negative cutoff frequency.
	ErrInvalidCutoff = errors.New("decimate: cutoff must be >= 0")
	// ErrRunning indicates Start on a running stage.
	ErrRunning = errors.New("decimate: stage already running")
	// ErrNotRunning indicates Process outside the running state.
	ErrNotRunning = errors.New("decimate: stage not running")
	// ErrFrameAlignment indicates an input length that is not a multiple of the channel count.
	ErrFrameAlignment = errors.New("decimate: input length must be a multiple of the channel count")
	// ErrShortOutput indicates an output buffer too small for the frames the call produces.
	ErrShortOutput = errors.New("decimate: output buffer too short")
)
