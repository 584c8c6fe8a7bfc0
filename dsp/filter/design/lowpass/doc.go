// Package lowpass designs linear-phase FIR low-pass coefficients by
// frequency sampling.
//
// A [Designer] builds an ideal brick-wall magnitude mask of length N,
// inverse-transforms it with an algo-fft plan, rotates the wrapped impulse
// response by N/2 into causal tap order and tapers it with a window table.
// The resulting filter has a fixed group delay of N/2 samples.
//
// The cutoff bin is computed with integer arithmetic, step by step:
//
//	maxBin = N * cutoffHz / inputRateHz / 2
//
// Bins strictly below maxBin pass. Because of the final halving, the mask
// edge sits at roughly cutoffHz/2.
//
// The designer owns its FFT plan and scratch spectra. They are acquired by
// [NewDesigner] and released by [Designer.Close].
package lowpass
