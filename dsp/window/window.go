// Package window generates tapering windows for FIR design and spectral analysis.
//
// Windows are produced either directly with [Generate] or through a [Func],
// the injectable generator consumed by the low-pass coefficient designer.
package window

import (
	"math"
	"sort"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris4Term
	TypeFlatTop
	TypeKaiser
	TypeTukey
	TypeTriangle
	TypeWelch
)

// Metadata holds spectral properties of a window type.
type Metadata struct {
	Name            string
	ENBW            float64
	HighestSidelobe float64
	CoherentGain    float64
}

var (
	hannCoeffs            = []float64{0.5, -0.5}
	hammingCoeffs         = []float64{0.54, -0.46}
	blackmanCoeffs        = []float64{0.42, -0.5, 0.08}
	blackmanHarris4Coeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
	flatTopCoeffs         = []float64{0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368}
)

var metadataByType = map[Type]Metadata{
	TypeRectangular:         {Name: "Rectangular", ENBW: 1, HighestSidelobe: -13.26, CoherentGain: 1},
	TypeHann:                {Name: "Hann", ENBW: 1.5, HighestSidelobe: -31.47, CoherentGain: 0.5},
	TypeHamming:             {Name: "Hamming", ENBW: 1.3628, HighestSidelobe: -42.68, CoherentGain: 0.54},
	TypeBlackman:            {Name: "Blackman", ENBW: 1.7268, HighestSidelobe: -58.11, CoherentGain: 0.42},
	TypeBlackmanHarris4Term: {Name: "Blackman-Harris", ENBW: 2.0044, HighestSidelobe: -92.0, CoherentGain: 0.35875},
	TypeFlatTop:             {Name: "Flat Top", ENBW: 3.7702, HighestSidelobe: -93.0, CoherentGain: 0.2156},
	TypeKaiser:              {Name: "Kaiser", ENBW: 1.8, HighestSidelobe: -69.0, CoherentGain: 0.4},
	TypeTukey:               {Name: "Tukey", ENBW: 1.22, HighestSidelobe: -15.1, CoherentGain: 0.75},
	TypeTriangle:            {Name: "Triangle", ENBW: 1.3333, HighestSidelobe: -26.52, CoherentGain: 0.5},
	TypeWelch:               {Name: "Welch", ENBW: 1.2, HighestSidelobe: -21.3, CoherentGain: 0.6667},
}

var typeByName = map[string]Type{
	"rectangular":     TypeRectangular,
	"hann":            TypeHann,
	"hamming":         TypeHamming,
	"blackman":        TypeBlackman,
	"blackman-harris": TypeBlackmanHarris4Term,
	"flat-top":        TypeFlatTop,
	"kaiser":          TypeKaiser,
	"tukey":           TypeTukey,
	"triangle":        TypeTriangle,
	"welch":           TypeWelch,
}

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	periodic bool
}

func defaultConfig() config {
	return config{alpha: 1}
}

// WithAlpha configures alpha/beta parameters for parametric windows
// (Kaiser beta, Tukey taper ratio).
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.alpha = v
		}
	}
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Func produces a window of the requested length.
type Func func(length int) []float64

// For returns a Func generating windows of type t with the given options.
func For(t Type, opts ...Option) Func {
	opts = append([]Option(nil), opts...)
	return func(length int) []float64 {
		return Generate(t, length, opts...)
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic), cfg)
	}

	return out
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	if m, ok := metadataByType[t]; ok {
		return m
	}

	return Metadata{}
}

// Parse resolves a window name such as "hamming" or "blackman-harris".
func Parse(name string) (Type, error) {
	t, ok := typeByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, unknownName(name)
	}

	return t, nil
}

// Names returns the sorted list of names accepted by Parse.
func Names() []string {
	names := make([]string, 0, len(typeByName))
	for n := range typeByName {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := vecmath.Sum(coeffs)
	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	sumSquares := vecmath.DotProduct(coeffs, coeffs)

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

func evalWindow(t Type, x float64, cfg config) float64 {
	if x < 0 {
		x = 0
	}

	if x > 1 {
		x = 1
	}

	switch t {
	case TypeRectangular:
		return 1
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeBlackmanHarris4Term:
		return cosineFromCoeffs(x, blackmanHarris4Coeffs)
	case TypeFlatTop:
		return cosineFromCoeffs(x, flatTopCoeffs)
	case TypeKaiser:
		return kaiserAt(x, cfg.alpha)
	case TypeTukey:
		return tukeyAt(x, cfg.alpha)
	case TypeTriangle:
		return 1 - math.Abs(2*x-1)
	case TypeWelch:
		d := x - 0.5
		return 1 - 4*d*d
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}

func kaiserAt(x, beta float64) float64 {
	if beta <= 0 {
		return 1
	}

	r := 2*x - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return besselI0(beta*term) / besselI0(beta)
}

func tukeyAt(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}

	if alpha >= 1 {
		return cosineFromCoeffs(x, hannCoeffs)
	}

	a := alpha / 2
	switch {
	case x < a:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-1)))
	case x <= 1-a:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-2/alpha+1)))
	}
}

// besselI0 returns a numerical approximation of the modified Bessel function I0.
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		y := x / 3.75
		y *= y

		return 1.0 + y*(3.5156229+y*(3.0899424+y*(1.2067492+y*(0.2659732+y*(0.0360768+y*0.0045813)))))
	}

	y := 3.75 / ax

	return (math.Exp(ax) / math.Sqrt(ax)) *
		(0.39894228 + y*(0.01328592+y*(0.00225319+y*(-0.00157565+y*(0.00916281+y*(-0.02057706+y*(0.02635537+y*(-0.01647633+y*0.00392377))))))))
}
