// Package fir provides a decimating, multichannel direct-form FIR runtime.
//
// A [Decimator] keeps one power-of-two circular history per channel, all
// sharing a single write head, and emits one filtered output frame for every
// factor input frames. The decimation phase carries over between Process
// calls, so splitting a stream into blocks never changes the output.
//
// Taps are held in an immutable [Coefficients] value. The decimator reads the
// current value from a [Source] once per output frame; an
// atomic.Pointer[Coefficients] satisfies Source, which lets a control
// goroutine publish new taps while another goroutine streams samples.
//
// This package provides the processing runtime only. Coefficient design
// lives in dsp/filter/design/lowpass.
package fir
