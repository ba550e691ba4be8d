// Package trim removes leading and trailing low-energy regions from a
// waveform using a frame-RMS threshold relative to the loudest frame.
//
// Boundary policy: the signal is cut into frames of FrameLength samples
// starting every HopLength samples (the last frames may be shorter). A frame
// is non-silent when its RMS exceeds the peak frame RMS scaled down by
// TopDB decibels. The kept range is
//
//	[firstNonSilent*hop, min(len, (lastNonSilent+1)*hop))
//
// which is the contiguous range whose frames carry all above-threshold
// energy. An all-silent signal trims to an empty range; a signal shorter
// than one frame is judged as a single frame.
package trim

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Defaults mirror the common analysis settings for trimming sung or spoken
// audio: 60 dB below the loudest frame, measured over 2048-sample frames
// every 512 samples.
const (
	DefaultTopDB       = 60.0
	DefaultFrameLength = 2048
	DefaultHopLength   = 512
)

// Option configures the trimmer.
type Option func(*config)

type config struct {
	topDB       float64
	frameLength int
	hopLength   int
}

func defaultConfig() config {
	return config{
		topDB:       DefaultTopDB,
		frameLength: DefaultFrameLength,
		hopLength:   DefaultHopLength,
	}
}

// WithTopDB sets how many decibels below the peak frame RMS a frame may
// fall before it counts as silence. Non-positive values are ignored.
func WithTopDB(topDB float64) Option {
	return func(c *config) {
		if topDB > 0 {
			c.topDB = topDB
		}
	}
}

// WithFrameLength sets the energy measurement frame length in samples.
// Non-positive values are ignored.
func WithFrameLength(frameLength int) Option {
	return func(c *config) {
		if frameLength > 0 {
			c.frameLength = frameLength
		}
	}
}

// WithHopLength sets the hop between energy frames in samples.
// Non-positive values are ignored.
func WithHopLength(hopLength int) Option {
	return func(c *config) {
		if hopLength > 0 {
			c.hopLength = hopLength
		}
	}
}

// Silence returns the half-open sample range [start, end) that survives
// trimming. An all-silent input returns start == end == 0.
func Silence(x []float64, opts ...Option) (start, end int) {
	if len(x) == 0 {
		return 0, 0
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	energies := frameRMS(x, cfg.frameLength, cfg.hopLength)

	ref := floats.Max(energies)
	if ref == 0 {
		return 0, 0
	}

	threshold := ref * math.Pow(10, -cfg.topDB/20)

	first, last := -1, -1
	for i, e := range energies {
		if e > threshold {
			if first < 0 {
				first = i
			}
			last = i
		}
	}

	if first < 0 {
		return 0, 0
	}

	start = first * cfg.hopLength
	end = (last + 1) * cfg.hopLength
	if end > len(x) {
		end = len(x)
	}

	return start, end
}

// Apply returns the sub-slice of x that survives trimming. The result
// aliases x; callers that mutate it should copy first.
func Apply(x []float64, opts ...Option) []float64 {
	start, end := Silence(x, opts...)
	return x[start:end]
}

// frameRMS computes the RMS of frames starting every hop samples. A signal
// shorter than one frame produces a single frame covering the whole signal.
func frameRMS(x []float64, frameLength, hopLength int) []float64 {
	numFrames := 1
	if len(x) > frameLength {
		numFrames += (len(x) - frameLength + hopLength - 1) / hopLength
	}

	out := make([]float64, numFrames)
	for i := range out {
		lo := i * hopLength
		hi := lo + frameLength
		if hi > len(x) {
			hi = len(x)
		}
		if lo >= hi {
			continue
		}

		sum := 0.0
		for _, v := range x[lo:hi] {
			sum += v * v
		}
		out[i] = math.Sqrt(sum / float64(hi-lo))
	}

	return out
}
