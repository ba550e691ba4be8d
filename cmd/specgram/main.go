// Command specgram extracts a normalized magnitude spectrogram from a WAV
// or FLAC file and writes it as a spectrogram container.
//
// Usage:
//
//	specgram [flags] input.{wav,flac}
//
// The output can be fed back through specsynth, which is useful for judging
// the reconstruction quality of a parameter set before training against it.
//
// Examples:
//
//	specgram -o features.spec vocal.wav
//	specgram -rate 22050 -max-db 100 -ref-db 20 vocal.flac
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

	rate := flag.Int("rate", 0, "expected sample rate in Hz (0 = use the file's rate)")
	frameShift := flag.Float64("frame-shift", def.FrameShift, "analysis hop in seconds")
	frameLength := flag.Float64("frame-length", def.FrameLength, "analysis window in seconds")
	maxDB := flag.Float64("max-db", def.MaxDB, "normalization dynamic range in dB")
	refDB := flag.Float64("ref-db", def.RefDB, "normalization reference level in dB")
	preemphasis := flag.Float64("preemphasis", def.Preemphasis, "pre-emphasis coefficient")
	output := flag.String("o", "", "output spectrogram path (default: input with .spec extension)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: specgram [flags] input.{wav,flac}\n\n")
		fmt.Fprintf(os.Stderr, "Extracts a normalized magnitude spectrogram from an audio file.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	samples, fileRate, err := sndfile.LoadAudio(input)
	if err != nil {
		fail(err)
	}
	if *rate > 0 && *rate != fileRate {
		fail(fmt.Errorf("%s has sample rate %d Hz, expected %d Hz", input, fileRate, *rate))
	}

	cfg := vocoder.DefaultConfig()
	cfg.SampleRate = fileRate
	cfg.FrameShift = *frameShift
	cfg.FrameLength = *frameLength
	cfg.MaxDB = *maxDB
	cfg.RefDB = *refDB
	cfg.Preemphasis = *preemphasis

	syn, err := vocoder.NewSynthesizer(cfg)
	if err != nil {
		fail(err)
	}

	spec, err := syn.WaveformToSpectrogram(samples)
	if err != nil {
		fail(err)
	}

	out := *output
	if out == "" {
		out = replaceExt(input, ".spec")
	}
	if err := sndfile.SaveSpectrogram(out, spec); err != nil {
		fail(err)
	}

	fmt.Printf("%s: %d samples (%.2fs) -> %d frames x %d bins -> %s\n",
		input, len(samples), float64(len(samples))/float64(fileRate), len(spec), syn.FreqBins(), out)
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
