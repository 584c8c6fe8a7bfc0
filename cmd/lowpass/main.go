// Command lowpass streams a PCM WAV file through a decimating FIR low-pass
// stage and writes the result at the reduced rate.
//
// Usage:
//
//	lowpass -in in.wav -out out.wav -cutoff hz (-decimation n | -rate hz) [flags]
//
// Examples:
//
//	lowpass -in voice48k.wav -out voice8k.wav -cutoff 3400 -rate 8000
//	lowpass -in iq.wav -out iq-div4.wav -cutoff 20000 -decimation 4 -taps 128
//	lowpass -in tone.wav -out tone.wav -cutoff 1000 -decimation 2 -window blackman -v
//	lowpass -in voice48k.wav -out voice16k.wav -cutoff 7000 -rate 16000 -window kaiser -alpha 8.6
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cwbudde/algo-decimate/dsp/decimate"
	"github.com/cwbudde/algo-decimate/dsp/window"
	"github.com/cwbudde/algo-decimate/internal/wavio"
	"github.com/cwbudde/algo-decimate/stats/level"
)

type config struct {
	in         string
	out        string
	cutoff     int
	decimation int
	rate       int
	taps       int
	window     string
	alpha      float64
	block      int
	verbose    bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.in, "in", "", "input WAV file")
	flag.StringVar(&cfg.out, "out", "", "output WAV file")
	flag.IntVar(&cfg.cutoff, "cutoff", 0, "passband cutoff in Hz")
	flag.IntVar(&cfg.decimation, "decimation", 0, "keep one frame out of every n")
	flag.IntVar(&cfg.rate, "rate", 0, "output sample rate in Hz (must divide the input rate)")
	flag.IntVar(&cfg.taps, "taps", decimate.DefaultFIRLength, "FIR length (power of two)")
	flag.StringVar(&cfg.window, "window", "hamming", "taper window name")
	flag.Float64Var(&cfg.alpha, "alpha", -1, "alpha/beta for parametric windows (kaiser, tukey); negative keeps the default")
	flag.IntVar(&cfg.block, "block", 4096, "frames per processing block")
	flag.BoolVar(&cfg.verbose, "v", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lowpass -in in.wav -out out.wav -cutoff hz (-decimation n | -rate hz) [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Low-pass filters and decimates a PCM WAV file.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nWindows: %v\n", window.Names())
	}
	flag.Parse()

	logLevel := slog.LevelInfo
	if cfg.verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	if err := run(cfg, logger); err != nil {
		logger.Error("lowpass failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func (c config) rateSpec() (decimate.RateSpec, error) {
	switch {
	case c.decimation != 0 && c.rate != 0:
		return nil, errors.New("use either -decimation or -rate, not both")
	case c.decimation != 0:
		return decimate.Decimation(c.decimation), nil
	case c.rate != 0:
		return decimate.OutputRate(c.rate), nil
	default:
		return nil, decimate.ErrNoRateSpec
	}
}

func run(cfg config, logger *slog.Logger) error {
	if cfg.in == "" || cfg.out == "" {
		return errors.New("both -in and -out are required")
	}
	if cfg.block <= 0 {
		return fmt.Errorf("invalid block size %d", cfg.block)
	}

	spec, err := cfg.rateSpec()
	if err != nil {
		return err
	}

	typ, err := window.Parse(cfg.window)
	if err != nil {
		return err
	}

	src, err := os.Open(cfg.in)
	if err != nil {
		return err
	}
	defer src.Close()

	r, err := wavio.NewReader(src)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.in, err)
	}

	stage, err := decimate.New(r.SampleRate(), r.Channels(),
		decimate.WithCutoff(cfg.cutoff),
		decimate.WithRate(spec),
		decimate.WithFIRLength(cfg.taps),
		decimate.WithWindow(window.For(typ, window.WithAlpha(cfg.alpha))),
		decimate.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	if err := stage.Start(); err != nil {
		return err
	}
	defer stage.Stop()

	dst, err := os.Create(cfg.out)
	if err != nil {
		return err
	}
	defer dst.Close()

	w, err := wavio.NewWriter(dst, stage.OutputSampleRate(), r.Channels(), r.BitDepth())
	if err != nil {
		return err
	}

	inLevel := level.NewMeter(r.Channels())
	outLevel := level.NewMeter(r.Channels())

	frames, written, err := pump(stage, r, w, cfg.block, inLevel, outLevel)
	if err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	logger.Info("done",
		slog.String("in", cfg.in),
		slog.String("out", cfg.out),
		slog.Int("input_frames", frames),
		slog.Int("output_frames", written),
		slog.Int("output_rate_hz", stage.OutputSampleRate()),
		slog.Int("clipped", w.Clipped()),
		slog.Float64("input_peak_dbfs", inLevel.Loudest().PeakdB),
		slog.Float64("output_peak_dbfs", outLevel.Loudest().PeakdB),
	)
	for c := range outLevel.Channels() {
		logger.Debug("channel level",
			slog.Int("channel", c),
			slog.Float64("input_rms_dbfs", inLevel.Channel(c).RMSdB),
			slog.Float64("output_rms_dbfs", outLevel.Channel(c).RMSdB),
		)
	}

	return nil
}

// pump moves blocks of frames from r through stage into w until EOF and
// returns the input and output frame counts.
func pump(stage *decimate.Stage, r *wavio.Reader, w *wavio.Writer, block int, inLevel, outLevel *level.Meter) (int, int, error) {
	ch := r.Channels()
	in := make([]float64, block*ch)
	out := make([]float64, stage.MaxOutputLen(len(in)))

	var frames, written int
	for {
		n, err := r.Read(in)
		if n > 0 {
			inLevel.Update(in[:n])
			m, perr := stage.Process(out, in[:n])
			if perr != nil {
				return frames, written, perr
			}
			if werr := w.Write(out[:m]); werr != nil {
				return frames, written, werr
			}
			outLevel.Update(out[:m])
			frames += n / ch
			written += m / ch
		}
		if errors.Is(err, io.EOF) {
			return frames, written, nil
		}
		if err != nil {
			return frames, written, err
		}
	}
}
