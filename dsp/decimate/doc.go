// Package decimate provides a streaming low-pass decimation stage for
// interleaved multichannel audio.
//
// A [Stage] is configured with a cutoff and a [RateSpec] (either an explicit
// [Decimation] factor or a target [OutputRate]), then started. Start designs
// the initial taps (dsp/filter/design/lowpass) and allocates the per-channel
// histories (dsp/filter/fir). Process may then be called repeatedly from one
// goroutine; SetCutoff may be called concurrently from another and takes
// effect from the next output frame without disturbing the decimation phase.
//
// Lifecycle:
//
//	Unconfigured -> Configured -> Running -> Stopped
//	                    ^                       |
//	                    +------ Start again ----+
package decimate
