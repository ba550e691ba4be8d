package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// ConstantSpectrogram returns a frames-by-bins magnitude matrix filled with
// one value.
func ConstantSpectrogram(frames, bins int, value float64) [][]float64 {
	out := make([][]float64, frames)
	for i := range out {
		out[i] = make([]float64, bins)
		for j := range out[i] {
			out[i][j] = value
		}
	}
	return out
}
