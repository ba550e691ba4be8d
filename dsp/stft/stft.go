package stft

import (
	"fmt"

	"github.com/yuekaizhang/svs-vocoder/dsp/window"
)

// normFloor guards the overlap-add normalization against division by zero
// where the window envelope never contributed energy.
const normFloor = 1e-12

// Processor holds one immutable set of transform parameters and performs
// forward (Analyze) and inverse (Synthesize) short-time transforms with it.
//
// A Processor keeps scratch buffers and is not safe for concurrent use;
// create one Processor per goroutine. Distinct Processor values are
// independent.
type Processor struct {
	nfft      int
	hopLength int
	winLength int

	window  []float64
	backend fftBackend
}

// New creates a Processor for the given transform size, hop length, and
// window length. The window is a fixed periodic Hann window.
//
// The current design ties the window length to the transform size, so
// winLength must equal nfft.
func New(nfft, hopLength, winLength int) (*Processor, error) {
	if nfft <= 0 {
		return nil, fmt.Errorf("stft: transform size must be > 0: %d", nfft)
	}

	if hopLength <= 0 {
		return nil, fmt.Errorf("stft: hop length must be > 0: %d", hopLength)
	}

	if winLength <= 0 {
		return nil, fmt.Errorf("stft: window length must be > 0: %d", winLength)
	}

	if winLength != nfft {
		return nil, fmt.Errorf("stft: window length must equal transform size: %d != %d", winLength, nfft)
	}

	backend, err := newBackend(nfft)
	if err != nil {
		return nil, err
	}

	return &Processor{
		nfft:      nfft,
		hopLength: hopLength,
		winLength: winLength,
		window:    window.Generate(window.TypeHann, winLength, window.WithPeriodic()),
		backend:   backend,
	}, nil
}

// NFFT returns the transform size in samples.
func (p *Processor) NFFT() int { return p.nfft }

// HopLength returns the hop between consecutive frames in samples.
func (p *Processor) HopLength() int { return p.hopLength }

// WinLength returns the analysis window length in samples.
func (p *Processor) WinLength() int { return p.winLength }

// FreqBins returns the number of non-negative frequency bins, nfft/2+1.
func (p *Processor) FreqBins() int { return p.nfft/2 + 1 }

// NumFrames returns how many full analysis frames fit into a signal of the
// given length.
func (p *Processor) NumFrames(signalLen int) int {
	if signalLen < p.winLength {
		return 0
	}

	return (signalLen-p.winLength)/p.hopLength + 1
}

// OutputLength returns the waveform length Synthesize produces for the given
// frame count.
func (p *Processor) OutputLength(numFrames int) int {
	if numFrames <= 0 {
		return 0
	}

	return p.winLength + p.hopLength*(numFrames-1)
}

// Analyze computes the windowed, overlapping forward transform of a
// waveform. The result has one row per frame and nfft/2+1 complex values per
// row. A signal shorter than one window yields zero frames.
func (p *Processor) Analyze(waveform []float64) ([][]complex128, error) {
	numFrames := p.NumFrames(len(waveform))
	if numFrames == 0 {
		return nil, nil
	}

	bins := p.FreqBins()
	spec := make([][]complex128, numFrames)
	frame := make([]float64, p.winLength)

	for i := range spec {
		start := i * p.hopLength
		copy(frame, waveform[start:start+p.winLength])

		err := window.ApplyCoefficientsInPlace(frame, p.window)
		if err != nil {
			return nil, fmt.Errorf("stft: windowing frame %d: %w", i, err)
		}

		row := make([]complex128, bins)

		err = p.backend.forward(row, frame)
		if err != nil {
			return nil, err
		}

		spec[i] = row
	}

	return spec, nil
}

// Synthesize reconstructs a waveform from complex frame spectra using
// overlap-add with synthesis windowing and window-square normalization. The
// output length is winLength + hopLength*(frames-1). Empty input yields an
// empty waveform.
func (p *Processor) Synthesize(spec [][]complex128) ([]float64, error) {
	if len(spec) == 0 {
		return nil, nil
	}

	bins := p.FreqBins()
	for i, row := range spec {
		if len(row) != bins {
			return nil, fmt.Errorf("stft: frame %d has %d bins, want %d", i, len(row), bins)
		}
	}

	outLen := p.OutputLength(len(spec))
	out := make([]float64, outLen)
	norm := make([]float64, outLen)
	frame := make([]float64, p.nfft)

	for i, row := range spec {
		err := p.backend.inverse(frame, row)
		if err != nil {
			return nil, err
		}

		pos := i * p.hopLength
		for j, w := range p.window {
			out[pos+j] += frame[j] * w
			norm[pos+j] += w * w
		}
	}

	for i := range out {
		if norm[i] > normFloor {
			out[i] /= norm[i]
		}
	}

	return out, nil
}
