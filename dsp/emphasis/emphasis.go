// Package emphasis implements the paired pre-emphasis and de-emphasis
// filters used around spectral analysis and waveform reconstruction.
//
// Pre-emphasis is the FIR difference filter y[n] = x[n] - a*x[n-1]
// (coefficients b=[1, -a], a=[1]); de-emphasis is its direct-form IIR
// inverse y[n] = x[n] + a*y[n-1] (b=[1], a=[1, -a]). Applying one after the
// other restores the input up to floating-point error.
package emphasis

import "fmt"

// PreEmphasis boosts high-frequency content before analysis.
//
// The filter keeps one sample of state and is not safe for concurrent use.
type PreEmphasis struct {
	coefficient float64
	prevInput   float64
}

// DeEmphasis restores high-frequency balance after reconstruction.
//
// The filter keeps one sample of state and is not safe for concurrent use.
type DeEmphasis struct {
	coefficient float64
	prevOutput  float64
}

func validateCoefficient(coefficient float64) error {
	if !(coefficient > 0 && coefficient < 1) {
		return fmt.Errorf("emphasis coefficient must be in (0, 1): %f", coefficient)
	}
	return nil
}

// NewPreEmphasis creates a pre-emphasis filter. The coefficient must lie in
// (0, 1); 0.97 is the usual value for speech.
func NewPreEmphasis(coefficient float64) (*PreEmphasis, error) {
	if err := validateCoefficient(coefficient); err != nil {
		return nil, err
	}
	return &PreEmphasis{coefficient: coefficient}, nil
}

// NewDeEmphasis creates a de-emphasis filter. The coefficient must lie in
// (0, 1) and match the pre-emphasis coefficient used during data
// preparation.
func NewDeEmphasis(coefficient float64) (*DeEmphasis, error) {
	if err := validateCoefficient(coefficient); err != nil {
		return nil, err
	}
	return &DeEmphasis{coefficient: coefficient}, nil
}

// Coefficient returns the filter coefficient.
func (f *PreEmphasis) Coefficient() float64 { return f.coefficient }

// Process filters a single sample: y[n] = x[n] - a*x[n-1].
func (f *PreEmphasis) Process(input float64) float64 {
	out := input - f.coefficient*f.prevInput
	f.prevInput = input
	return out
}

// ProcessBuffer filters a buffer into a new slice.
func (f *PreEmphasis) ProcessBuffer(input []float64) []float64 {
	out := make([]float64, len(input))
	for i, v := range input {
		out[i] = f.Process(v)
	}
	return out
}

// Reset clears filter state. Call between discontinuous segments.
func (f *PreEmphasis) Reset() { f.prevInput = 0 }

// Coefficient returns the filter coefficient.
func (f *DeEmphasis) Coefficient() float64 { return f.coefficient }

// Process filters a single sample: y[n] = x[n] + a*y[n-1].
func (f *DeEmphasis) Process(input float64) float64 {
	out := input + f.coefficient*f.prevOutput
	f.prevOutput = out
	return out
}

// ProcessBuffer filters a buffer into a new slice.
func (f *DeEmphasis) ProcessBuffer(input []float64) []float64 {
	out := make([]float64, len(input))
	for i, v := range input {
		out[i] = f.Process(v)
	}
	return out
}

// Reset clears filter state. Call between discontinuous segments.
func (f *DeEmphasis) Reset() { f.prevOutput = 0 }
