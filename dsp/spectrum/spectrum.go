package spectrum

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
)

// AmplitudeFloor is the smallest amplitude considered when converting to
// decibels. It keeps log conversion finite on silent bins.
const AmplitudeFloor = 1e-5

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// This uses SIMD-optimized implementations when available (AVX2, SSE2, NEON).
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re := make([]float64, len(in))
	im := make([]float64, len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)

	return out
}

// MagnitudeFromParts computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst.
//
// This is the zero-allocation fast path for callers that already have real
// and imaginary parts in separate slices. All three slices must have the
// same length.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re := make([]float64, len(in))
	im := make([]float64, len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)

	return out
}

// Phase returns arg(X[k]) for each complex spectrum bin in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	for i := range out {
		out[i] = cmplx.Phase(in[i])
	}

	return out
}

// AmplitudeToDB converts a linear amplitude to decibels, flooring the
// amplitude at [AmplitudeFloor] so silent bins stay finite.
func AmplitudeToDB(amplitude float64) float64 {
	return 20 * math.Log10(math.Max(AmplitudeFloor, amplitude))
}

// DBToAmplitude converts decibels to a linear amplitude.
func DBToAmplitude(db float64) float64 {
	return math.Pow(10, db/20)
}
