package trim

import (
	"math"
	"testing"
)

func paddedTone(lead, toneLen, tail int) []float64 {
	x := make([]float64, lead+toneLen+tail)
	for i := 0; i < toneLen; i++ {
		x[lead+i] = 0.8 * math.Sin(2*math.Pi*float64(i)/64)
	}
	return x
}

func TestSilenceTrimsPaddedTone(t *testing.T) {
	lead, toneLen, tail := 4096, 8192, 4096
	x := paddedTone(lead, toneLen, tail)

	start, end := Silence(x)
	if start == 0 && end == len(x) {
		t.Fatal("expected padding to be trimmed")
	}
	if start > lead {
		t.Errorf("start = %d, trimmed into the tone (tone starts at %d)", start, lead)
	}
	if end < lead+toneLen {
		t.Errorf("end = %d, trimmed into the tone (tone ends at %d)", end, lead+toneLen)
	}
	// Boundaries land on hop multiples, so allow one frame of slack.
	if lead-start > DefaultFrameLength {
		t.Errorf("start = %d, kept more than one frame of leading silence", start)
	}
	if end-(lead+toneLen) > DefaultFrameLength {
		t.Errorf("end = %d, kept more than one frame of trailing silence", end)
	}
}

func TestSilenceAllSilentReturnsEmpty(t *testing.T) {
	x := make([]float64, 8192)

	start, end := Silence(x)
	if start != 0 || end != 0 {
		t.Errorf("Silence(zeros) = (%d, %d), want (0, 0)", start, end)
	}
	if got := Apply(x); len(got) != 0 {
		t.Errorf("Apply(zeros) kept %d samples, want 0", len(got))
	}
}

func TestSilenceEmptyInput(t *testing.T) {
	start, end := Silence(nil)
	if start != 0 || end != 0 {
		t.Errorf("Silence(nil) = (%d, %d), want (0, 0)", start, end)
	}
}

func TestSilenceShorterThanFrameKeptWhole(t *testing.T) {
	x := []float64{0.5, -0.5, 0.5, -0.5}

	start, end := Silence(x)
	if start != 0 || end != len(x) {
		t.Errorf("Silence(short tone) = (%d, %d), want (0, %d)", start, end, len(x))
	}
}

func TestSilenceEndClampedToSignalLength(t *testing.T) {
	// Loud all the way to the end: (last+1)*hop can overshoot.
	x := paddedTone(0, 5000, 0)

	_, end := Silence(x)
	if end != len(x) {
		t.Errorf("end = %d, want clamped to %d", end, len(x))
	}
}

func TestSilenceOptionsControlAggressiveness(t *testing.T) {
	lead := 4096
	x := paddedTone(lead, 8192, 0)
	// Quiet but non-zero leading region.
	for i := 0; i < lead; i++ {
		x[i] = 1e-4 * math.Sin(2*math.Pi*float64(i)/64)
	}

	start, _ := Silence(x, WithTopDB(30))
	if start == 0 {
		t.Error("topDB=30 should trim the -78 dB leading region")
	}

	start, _ = Silence(x, WithTopDB(120))
	if start != 0 {
		t.Errorf("topDB=120 should keep the quiet leading region, start = %d", start)
	}
}

func TestApplyAliasesInput(t *testing.T) {
	x := paddedTone(2048, 4096, 2048)

	got := Apply(x)
	start, end := Silence(x)
	if len(got) != end-start {
		t.Fatalf("Apply length = %d, want %d", len(got), end-start)
	}
	if len(got) > 0 && &got[0] != &x[start] {
		t.Error("Apply should return a sub-slice of its input")
	}
}
