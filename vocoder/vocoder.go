package vocoder

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/yuekaizhang/svs-vocoder/dsp/emphasis"
	"github.com/yuekaizhang/svs-vocoder/dsp/griffinlim"
	"github.com/yuekaizhang/svs-vocoder/dsp/spectrum"
	"github.com/yuekaizhang/svs-vocoder/dsp/stft"
	"github.com/yuekaizhang/svs-vocoder/dsp/trim"
)

// Option adjusts how a Synthesizer is constructed.
type Option func(*synthesizerOptions)

type synthesizerOptions struct {
	nfft      int
	hopLength int
	winLength int
}

// WithTransform overrides the transform sizes derived from the Config's
// frame shift and frame length. Useful for working with features extracted
// under explicit sample counts rather than durations.
func WithTransform(nfft, hopLength, winLength int) Option {
	return func(o *synthesizerOptions) {
		o.nfft = nfft
		o.hopLength = hopLength
		o.winLength = winLength
	}
}

// Synthesizer reconstructs waveforms from normalized magnitude
// spectrograms. It owns one transform processor with scratch buffers, so a
// Synthesizer is not safe for concurrent use; create one per goroutine.
// Distinct Synthesizer values are independent.
type Synthesizer struct {
	cfg  Config
	proc *stft.Processor
}

// NewSynthesizer validates cfg, derives the transform parameters, and
// prepares the analysis/synthesis processor.
func NewSynthesizer(cfg Config, opts ...Option) (*Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hop, win := cfg.transformParams()
	o := synthesizerOptions{nfft: win, hopLength: hop, winLength: win}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	proc, err := stft.New(o.nfft, o.hopLength, o.winLength)
	if err != nil {
		return nil, err
	}

	return &Synthesizer{cfg: cfg, proc: proc}, nil
}

// Config returns the parameters the synthesizer was built with.
func (s *Synthesizer) Config() Config { return s.cfg }

// FreqBins returns the number of frequency bins each spectrogram row must
// have.
func (s *Synthesizer) FreqBins() int { return s.proc.FreqBins() }

// SpectrogramToWaveform reconstructs a mono float32 waveform from a
// normalized magnitude spectrogram of shape (frames, bins). The input is
// not modified. An empty spectrogram yields an empty waveform.
func (s *Synthesizer) SpectrogramToWaveform(spec [][]float64) ([]float32, error) {
	amp := Denormalize(spec, s.cfg.MaxDB, s.cfg.RefDB)
	for _, row := range amp {
		for j, v := range row {
			row[j] = math.Pow(v, s.cfg.Power)
		}
	}

	wav, err := griffinlim.Reconstruct(s.proc, amp, s.cfg.GriffinLimIterations)
	if err != nil {
		return nil, err
	}

	de, err := emphasis.NewDeEmphasis(s.cfg.Preemphasis)
	if err != nil {
		return nil, err
	}
	wav = de.ProcessBuffer(wav)

	if s.cfg.TrimSilence {
		wav = trim.Apply(wav)
	}

	out := make([]float32, len(wav))
	for i, v := range wav {
		out[i] = float32(v)
	}

	return out, nil
}

// WaveformToSpectrogram computes the normalized magnitude spectrogram of a
// waveform using the synthesizer's parameters. This is the forward twin of
// [Synthesizer.SpectrogramToWaveform]'s denormalization and transform steps.
func (s *Synthesizer) WaveformToSpectrogram(waveform []float64) ([][]float64, error) {
	pre, err := emphasis.NewPreEmphasis(s.cfg.Preemphasis)
	if err != nil {
		return nil, err
	}

	spec, err := s.proc.Analyze(pre.ProcessBuffer(waveform))
	if err != nil {
		return nil, err
	}

	mag := make([][]float64, len(spec))
	for i, row := range spec {
		mag[i] = spectrum.Magnitude(row)
	}

	return Normalize(mag, s.cfg.MaxDB, s.cfg.RefDB), nil
}

// Denormalize maps a [0, 1]-normalized spectrogram back to linear
// amplitudes. Inputs are clipped into [0, 1] first, so out-of-range model
// outputs degrade gracefully instead of producing extreme amplitudes. The
// result is a fresh matrix; the input is not modified.
func Denormalize(spec [][]float64, maxDB, refDB float64) [][]float64 {
	out := make([][]float64, len(spec))
	for i, row := range spec {
		dst := make([]float64, len(row))
		for j, v := range row {
			dst[j] = clipUnit(v)
		}

		floats.Scale(maxDB, dst)
		floats.AddConst(refDB-maxDB, dst)
		for j, db := range dst {
			dst[j] = spectrum.DBToAmplitude(db)
		}

		out[i] = dst
	}

	return out
}

// Normalize maps linear amplitudes into [0, 1] on the decibel scale defined
// by maxDB and refDB. It is the inverse of [Denormalize] for amplitudes
// inside the representable range. The result is a fresh matrix.
func Normalize(amplitudes [][]float64, maxDB, refDB float64) [][]float64 {
	out := make([][]float64, len(amplitudes))
	for i, row := range amplitudes {
		dst := make([]float64, len(row))
		for j, v := range row {
			dst[j] = spectrum.AmplitudeToDB(v)
		}

		floats.AddConst(maxDB-refDB, dst)
		floats.Scale(1/maxDB, dst)
		for j, v := range dst {
			dst[j] = clipUnit(v)
		}

		out[i] = dst
	}

	return out
}

func clipUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
