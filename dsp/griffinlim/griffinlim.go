package griffinlim

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/yuekaizhang/svs-vocoder/dsp/stft"
)

// Epsilon floors |Y| during phase extraction so near-silent frames cannot
// divide by zero. Hitting the floor is a designed tolerance, not an error.
const Epsilon = 1e-8

// DefaultIterations is the conventional iteration count. Callers should
// treat it as a tunable default, not a guaranteed-sufficient value.
const DefaultIterations = 100

// Reconstruct estimates a waveform from a magnitude-only spectrogram using
// the given transform processor and a fixed number of Griffin-Lim
// iterations.
//
// magnitude is time-major with one row per frame and nfft/2+1 values per
// row; rows of any other width are rejected. An all-zero magnitude yields an
// all-zero waveform. Every iteration writes a fresh complex matrix, so no
// buffer is aliased across the sequential fixed-point steps.
func Reconstruct(proc *stft.Processor, magnitude [][]float64, iterations int) ([]float64, error) {
	if proc == nil {
		return nil, fmt.Errorf("griffin-lim: transform processor is nil")
	}

	if iterations < 0 {
		return nil, fmt.Errorf("griffin-lim: iteration count must be >= 0: %d", iterations)
	}

	bins := proc.FreqBins()
	for i, row := range magnitude {
		if len(row) != bins {
			return nil, fmt.Errorf("griffin-lim: frame %d has %d bins, want %d for transform size %d",
				i, len(row), bins, proc.NFFT())
		}
	}

	if len(magnitude) == 0 {
		return nil, nil
	}

	// Zero-phase starting guess: the target magnitude as a real-valued
	// complex spectrum.
	est := make([][]complex128, len(magnitude))
	for i, row := range magnitude {
		c := make([]complex128, bins)
		for j, m := range row {
			c[j] = complex(m, 0)
		}
		est[i] = c
	}

	scratch := newScratch(bins)

	for it := 0; it < iterations; it++ {
		wave, err := proc.Synthesize(est)
		if err != nil {
			return nil, fmt.Errorf("griffin-lim: iteration %d: %w", it, err)
		}

		reproj, err := proc.Analyze(wave)
		if err != nil {
			return nil, fmt.Errorf("griffin-lim: iteration %d: %w", it, err)
		}

		if len(reproj) != len(magnitude) {
			return nil, fmt.Errorf("griffin-lim: re-analysis produced %d frames, want %d", len(reproj), len(magnitude))
		}

		est = project(magnitude, reproj, scratch)
	}

	wave, err := proc.Synthesize(est)
	if err != nil {
		return nil, fmt.Errorf("griffin-lim: final synthesis: %w", err)
	}

	return wave, nil
}

type scratch struct {
	re, im, mag []float64
}

func newScratch(bins int) *scratch {
	return &scratch{
		re:  make([]float64, bins),
		im:  make([]float64, bins),
		mag: make([]float64, bins),
	}
}

// project keeps the phase of est and resets its magnitude to the target,
// elementwise, producing a fresh matrix.
func project(target [][]float64, est [][]complex128, s *scratch) [][]complex128 {
	next := make([][]complex128, len(est))

	for i, row := range est {
		for j, y := range row {
			s.re[j] = real(y)
			s.im[j] = imag(y)
		}

		vecmath.Magnitude(s.mag, s.re, s.im)

		out := make([]complex128, len(row))
		for j, y := range row {
			scale := target[i][j] / math.Max(Epsilon, s.mag[j])
			out[j] = y * complex(scale, 0)
		}

		next[i] = out
	}

	return next
}
