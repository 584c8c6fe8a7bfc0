// Command firinfo prints the taps designed for a low-pass cutoff together
// with the taper window's spectral properties.
//
// Usage:
//
//	firinfo [flags]
//
// Examples:
//
//	firinfo -rate 48000 -cutoff 4000
//	firinfo -rate 8000 -cutoff 2000 -taps 128 -window blackman
//	firinfo -rate 48000 -cutoff 6000 -response
//	firinfo -rate 48000 -cutoff 6000 -window kaiser -alpha 8.6
//	firinfo -list
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-decimate/dsp/filter/design/lowpass"
	"github.com/cwbudde/algo-decimate/dsp/filter/fir"
	"github.com/cwbudde/algo-decimate/dsp/window"
)

type options struct {
	rate     int
	cutoff   int
	taps     int
	window   string
	alpha    float64
	periodic bool
	response bool
	points   int
}

// windowOptions maps the window flags to generator options. A negative
// alpha keeps the window's default.
func (o options) windowOptions() []window.Option {
	var opts []window.Option
	if o.alpha >= 0 {
		opts = append(opts, window.WithAlpha(o.alpha))
	}
	if o.periodic {
		opts = append(opts, window.WithPeriodic())
	}
	return opts
}

func main() {
	var opts options
	flag.IntVar(&opts.rate, "rate", 48000, "input sample rate in Hz")
	flag.IntVar(&opts.cutoff, "cutoff", 4000, "passband cutoff in Hz")
	flag.IntVar(&opts.taps, "taps", 64, "FIR length (power of two)")
	flag.StringVar(&opts.window, "window", "hamming", "taper window name")
	flag.Float64Var(&opts.alpha, "alpha", -1, "alpha/beta for parametric windows (kaiser, tukey); negative keeps the default")
	flag.BoolVar(&opts.periodic, "periodic", false, "use the periodic window form instead of symmetric")
	flag.BoolVar(&opts.response, "response", false, "print the magnitude response instead of the taps")
	flag.IntVar(&opts.points, "points", 32, "frequency points for -response")
	list := flag.Bool("list", false, "list available window names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: firinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints low-pass FIR taps and window properties.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  firinfo -rate 48000 -cutoff 4000\n")
		fmt.Fprintf(os.Stderr, "  firinfo -rate 8000 -cutoff 2000 -taps 128 -window blackman\n")
		fmt.Fprintf(os.Stderr, "  firinfo -rate 48000 -cutoff 6000 -response\n")
		fmt.Fprintf(os.Stderr, "  firinfo -rate 48000 -cutoff 6000 -window kaiser -alpha 8.6\n")
	}
	flag.Parse()

	if *list {
		for _, n := range window.Names() {
			fmt.Println(n)
		}
		return
	}

	if err := run(os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, opts options) error {
	typ, err := window.Parse(opts.window)
	if err != nil {
		return err
	}

	win := window.Generate(typ, opts.taps, opts.windowOptions()...)
	coeffs, err := lowpass.Design(opts.cutoff, opts.rate, opts.taps, win)
	if err != nil {
		return err
	}

	if err := printSummary(w, opts, typ, win, coeffs); err != nil {
		return err
	}

	if opts.response {
		return printResponse(w, coeffs, opts.rate, opts.points)
	}
	return printTaps(w, coeffs)
}

func printSummary(w io.Writer, opts options, typ window.Type, win []float64, c *fir.Coefficients) error {
	a := window.Analyze(win)
	maxBin := lowpass.CutoffBin(opts.taps, opts.cutoff, opts.rate)
	binHz := float64(opts.rate) / float64(opts.taps)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := []struct {
		key string
		val string
	}{
		{"Window", window.Info(typ).Name},
		{"Taps", fmt.Sprintf("%d", c.Len())},
		{"Input rate [Hz]", fmt.Sprintf("%d", opts.rate)},
		{"Cutoff [Hz]", fmt.Sprintf("%d", opts.cutoff)},
		{"Passband bins", fmt.Sprintf("%d (edge %.1f Hz)", maxBin, float64(maxBin)*binHz)},
		{"DC gain", fmt.Sprintf("%.6f", c.DCGain())},
		{"Peak tap", fmt.Sprintf("%.6f", c.Peak())},
		{"Coherent gain", fmt.Sprintf("%.6f", a.CoherentGain)},
		{"ENBW [bins]", fmt.Sprintf("%.4f", a.ENBW)},
		{"BW 3dB [bins]", fmt.Sprintf("%.4f", a.Bandwidth3dB)},
		{"Scallop [dB]", fmt.Sprintf("%.4f", a.ScallopLossdB)},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r.key, r.val); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	if _, err := fmt.Fprintln(tw); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return tw.Flush()
}

func printTaps(w io.Writer, c *fir.Coefficients) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tw, "Tap\tCoefficient\t\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, v := range c.Taps() {
		if _, err := fmt.Fprintf(tw, "%d\t%+.9f\t\n", i, v); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return tw.Flush()
}

func printResponse(w io.Writer, c *fir.Coefficients, rate, points int) error {
	if points < 2 {
		points = 2
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tw, "Freq [Hz]\tMagnitude [dB]\t\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	nyquist := float64(rate) / 2
	for i := range points {
		f := nyquist * float64(i) / float64(points-1)
		if _, err := fmt.Fprintf(tw, "%.1f\t%.2f\t\n", f, c.MagnitudeDB(f, float64(rate))); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return tw.Flush()
}
