// Command specsynth reconstructs a waveform from a normalized magnitude
// spectrogram and writes it as a 16-bit mono WAV file.
//
// Usage:
//
//	specsynth [flags] input.spec
//
// The input is a spectrogram container produced by specgram or by an
// acoustic model's export step.
//
// Examples:
//
//	specsynth -o out.wav features.spec
//	specsynth -iterations 60 -no-trim -o out.wav features.spec
//	specsynth -nfft 1024 -hop 256 -o out.wav features.spec
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/yuekaizhang/svs-vocoder/internal/sndfile"
	"github.com/yuekaizhang/svs-vocoder/vocoder"
)

func main() {
	def := vocoder.DefaultConfig()

	rate := flag.Int("rate", def.SampleRate, "output sample rate in Hz")
	frameShift := flag.Float64("frame-shift", def.FrameShift, "analysis hop in seconds")
	frameLength := flag.Float64("frame-length", def.FrameLength, "analysis window in seconds")
	maxDB := flag.Float64("max-db", def.MaxDB, "normalization dynamic range in dB")
	refDB := flag.Float64("ref-db", def.RefDB, "normalization reference level in dB")
	preemphasis := flag.Float64("preemphasis", def.Preemphasis, "pre-emphasis coefficient to invert")
	power := flag.Float64("power", def.Power, "magnitude sharpening exponent")
	iterations := flag.Int("iterations", def.GriffinLimIterations, "Griffin-Lim iterations")
	noTrim := flag.Bool("no-trim", false, "keep leading/trailing silence")
	nfft := flag.Int("nfft", 0, "override FFT size in samples (0 = derive from -frame-length)")
	hop := flag.Int("hop", 0, "override hop in samples (0 = derive from -frame-shift)")
	output := flag.String("o", "", "output WAV path (default: input with .wav extension)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: specsynth [flags] input.spec\n\n")
		fmt.Fprintf(os.Stderr, "Reconstructs a waveform from a normalized magnitude spectrogram.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	cfg := vocoder.Config{
		SampleRate:           *rate,
		FrameShift:           *frameShift,
		FrameLength:          *frameLength,
		MaxDB:                *maxDB,
		RefDB:                *refDB,
		Preemphasis:          *preemphasis,
		Power:                *power,
		GriffinLimIterations: *iterations,
		TrimSilence:          !*noTrim,
	}

	var opts []vocoder.Option
	if *nfft > 0 || *hop > 0 {
		n, h := *nfft, *hop
		if n == 0 {
			n = int(float64(cfg.SampleRate) * cfg.FrameLength)
		}
		if h == 0 {
			h = int(float64(cfg.SampleRate) * cfg.FrameShift)
		}
		opts = append(opts, vocoder.WithTransform(n, h, n))
	}

	syn, err := vocoder.NewSynthesizer(cfg, opts...)
	if err != nil {
		fail(err)
	}

	spec, err := sndfile.LoadSpectrogram(input)
	if err != nil {
		fail(err)
	}

	wav, err := syn.SpectrogramToWaveform(spec)
	if err != nil {
		fail(err)
	}

	out := *output
	if out == "" {
		out = replaceExt(input, ".wav")
	}
	if err := sndfile.SaveWAV(out, wav, cfg.SampleRate); err != nil {
		fail(err)
	}

	fmt.Printf("%s: %d frames -> %d samples (%.2fs) -> %s\n",
		input, len(spec), len(wav), float64(len(wav))/float64(cfg.SampleRate), out)
}

func replaceExt(path, ext string) string {
	if i := strings.LastIndexByte(path, '.'); i > 0 {
		return path[:i] + ext
	}
	return path + ext
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
