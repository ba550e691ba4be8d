package emphasis

import (
	"math"
	"testing"

	"github.com/yuekaizhang/svs-vocoder/internal/testutil"
)

func TestNewRejectsInvalidCoefficient(t *testing.T) {
	invalid := []float64{0, 1, -0.5, 1.5, math.NaN()}

	for _, c := range invalid {
		if _, err := NewPreEmphasis(c); err == nil {
			t.Fatalf("NewPreEmphasis(%v) expected error", c)
		}
		if _, err := NewDeEmphasis(c); err == nil {
			t.Fatalf("NewDeEmphasis(%v) expected error", c)
		}
	}
}

func TestPreEmphasisDifferenceEquation(t *testing.T) {
	f, err := NewPreEmphasis(0.97)
	if err != nil {
		t.Fatalf("NewPreEmphasis() error = %v", err)
	}

	in := []float64{1, 2, 3}
	out := f.ProcessBuffer(in)

	want := []float64{1, 2 - 0.97*1, 3 - 0.97*2}
	testutil.RequireSliceNearlyEqual(t, out, want, 1e-15)
}

func TestDeEmphasisDifferenceEquation(t *testing.T) {
	f, err := NewDeEmphasis(0.5)
	if err != nil {
		t.Fatalf("NewDeEmphasis() error = %v", err)
	}

	in := []float64{1, 0, 0, 0}
	out := f.ProcessBuffer(in)

	// Impulse response of 1/(1 - 0.5 z^-1) is 0.5^n.
	want := []float64{1, 0.5, 0.25, 0.125}
	testutil.RequireSliceNearlyEqual(t, out, want, 1e-15)
}

func TestDeEmphasisInvertsPreEmphasis(t *testing.T) {
	const coef = 0.97

	pre, err := NewPreEmphasis(coef)
	if err != nil {
		t.Fatalf("NewPreEmphasis() error = %v", err)
	}

	de, err := NewDeEmphasis(coef)
	if err != nil {
		t.Fatalf("NewDeEmphasis() error = %v", err)
	}

	x := testutil.DeterministicNoise(5, 0.9, 512)
	y := de.ProcessBuffer(pre.ProcessBuffer(x))

	testutil.RequireSliceNearlyEqual(t, y, x, 1e-10)
}

func TestResetClearsState(t *testing.T) {
	f, err := NewDeEmphasis(0.9)
	if err != nil {
		t.Fatalf("NewDeEmphasis() error = %v", err)
	}

	first := f.ProcessBuffer([]float64{1, 1, 1})
	f.Reset()
	second := f.ProcessBuffer([]float64{1, 1, 1})

	testutil.RequireSliceNearlyEqual(t, second, first, 0)
}

func TestProcessBufferEmpty(t *testing.T) {
	f, err := NewPreEmphasis(0.97)
	if err != nil {
		t.Fatalf("NewPreEmphasis() error = %v", err)
	}

	if out := f.ProcessBuffer(nil); len(out) != 0 {
		t.Fatalf("expected empty output, got %d samples", len(out))
	}
}
