package window

import "math"

// Analysis holds numerically computed spectral properties of a window.
type Analysis struct {
	// CoherentGain is sum(w[n]) / N, the DC response of the window.
	CoherentGain float64
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
	// Bandwidth3dB is the two-sided half-power main lobe width in bins.
	Bandwidth3dB float64
	// ScallopLossdB is the amplitude error half a bin away from DC.
	ScallopLossdB float64
}

// Analyze evaluates the DFT of coeffs numerically and derives its gain and
// main-lobe figures. A window with zero DC response yields a zero Analysis.
func Analyze(coeffs []float64) Analysis {
	n := len(coeffs)
	if n == 0 {
		return Analysis{}
	}

	dcRef := dftMagSq(coeffs, 0)
	if dcRef == 0 {
		return Analysis{}
	}

	enbw, err := EquivalentNoiseBandwidth(coeffs)
	if err != nil {
		return Analysis{}
	}

	nf := float64(n)

	// Bisection on [0, Nyquist] for |W(f)|^2 / |W(0)|^2 = 0.5.
	lo, hi := 0.0, 0.5
	for range 80 {
		mid := (lo + hi) / 2
		if dftMagSq(coeffs, mid)/dcRef > 0.5 {
			lo = mid
		} else {
			hi = mid
		}
	}

	return Analysis{
		CoherentGain:  math.Sqrt(dcRef) / nf,
		ENBW:          enbw,
		Bandwidth3dB:  2 * lo * nf,
		ScallopLossdB: 10 * math.Log10(dftMagSq(coeffs, 0.5/nf)/dcRef),
	}
}

// dftMagSq evaluates |DFT(freq)|^2 at a normalised frequency [0,1).
func dftMagSq(coeffs []float64, freq float64) float64 {
	re, im := 0.0, 0.0
	w := 2 * math.Pi * freq
	for k, c := range coeffs {
		phase := w * float64(k)
		re += c * math.Cos(phase)
		im -= c * math.Sin(phase)
	}
	return re*re + im*im
}
