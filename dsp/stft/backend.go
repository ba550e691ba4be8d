package stft

import (
	"fmt"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/mjibson/go-dsp/fft"
)

// fftBackend performs size-n transforms between a real frame and the
// non-negative half of its complex spectrum (n/2+1 bins). Inverse transforms
// are 1/n-normalized. Implementations keep scratch buffers and are not safe
// for concurrent use.
type fftBackend interface {
	forward(dst []complex128, frame []float64) error
	inverse(dst []float64, spec []complex128) error
}

func newBackend(n int) (fftBackend, error) {
	if isPowerOfTwo(n) {
		return newPlanBackend(n)
	}

	return &bluesteinBackend{n: n}, nil
}

// planBackend runs power-of-two transforms through a cached FFT plan.
type planBackend struct {
	plan *algofft.Plan[complex128]
	n    int
	time []complex128
	freq []complex128
}

func newPlanBackend(n int) (*planBackend, error) {
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("stft: failed to create FFT plan for size %d: %w", n, err)
	}

	return &planBackend{
		plan: plan,
		n:    n,
		time: make([]complex128, n),
		freq: make([]complex128, n),
	}, nil
}

func (b *planBackend) forward(dst []complex128, frame []float64) error {
	for i, v := range frame {
		b.time[i] = complex(v, 0)
	}

	err := b.plan.Forward(b.freq, b.time)
	if err != nil {
		return fmt.Errorf("stft: forward FFT failed: %w", err)
	}

	copy(dst, b.freq[:len(dst)])

	return nil
}

func (b *planBackend) inverse(dst []float64, spec []complex128) error {
	expandHermitian(b.freq, spec)

	err := b.plan.Inverse(b.time, b.freq)
	if err != nil {
		return fmt.Errorf("stft: inverse FFT failed: %w", err)
	}

	for i := range dst {
		dst[i] = real(b.time[i])
	}

	return nil
}

// bluesteinBackend covers transform sizes that are not a power of two, which
// happen whenever the window length is derived from a frame duration in
// seconds. go-dsp handles those sizes via Bluestein's algorithm.
type bluesteinBackend struct {
	n    int
	full []complex128
}

func (b *bluesteinBackend) forward(dst []complex128, frame []float64) error {
	out := fft.FFTReal(frame)
	copy(dst, out[:len(dst)])

	return nil
}

func (b *bluesteinBackend) inverse(dst []float64, spec []complex128) error {
	if b.full == nil {
		b.full = make([]complex128, b.n)
	}

	expandHermitian(b.full, spec)

	out := fft.IFFT(b.full)
	for i := range dst {
		dst[i] = real(out[i])
	}

	return nil
}

// expandHermitian fills a full spectrum from its non-negative half so the
// inverse transform of a real signal stays real. DC and Nyquist bins are
// forced real.
func expandHermitian(full, half []complex128) {
	n := len(full)

	full[0] = complex(real(half[0]), 0)
	for k := 1; k < len(half); k++ {
		full[k] = half[k]
		full[n-k] = cmplx.Conj(half[k])
	}

	if n%2 == 0 {
		full[n/2] = complex(real(half[n/2]), 0)
	}
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
