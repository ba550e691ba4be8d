package griffinlim

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/yuekaizhang/svs-vocoder/dsp/stft"
	"github.com/yuekaizhang/svs-vocoder/internal/testutil"
)

func newProc(t *testing.T, nfft, hop int) *stft.Processor {
	t.Helper()

	proc, err := stft.New(nfft, hop, nfft)
	if err != nil {
		t.Fatalf("stft.New() error = %v", err)
	}
	return proc
}

func TestReconstructRejectsBadInput(t *testing.T) {
	proc := newProc(t, 16, 4)

	if _, err := Reconstruct(nil, nil, 1); err == nil {
		t.Fatal("expected error for nil processor")
	}

	if _, err := Reconstruct(proc, nil, -1); err == nil {
		t.Fatal("expected error for negative iterations")
	}

	bad := [][]float64{make([]float64, 8)} // want 9 bins for nfft=16
	if _, err := Reconstruct(proc, bad, 1); err == nil {
		t.Fatal("expected error for bin count mismatch")
	}
}

func TestReconstructEmptySpectrogram(t *testing.T) {
	proc := newProc(t, 16, 4)

	out, err := Reconstruct(proc, nil, 5)
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty waveform, got %d samples", len(out))
	}
}

func TestReconstructZeroSpectrogramYieldsSilence(t *testing.T) {
	proc := newProc(t, 16, 4)
	mag := testutil.ConstantSpectrogram(6, 9, 0)

	for _, iters := range []int{0, 1, 7} {
		out, err := Reconstruct(proc, mag, iters)
		if err != nil {
			t.Fatalf("Reconstruct(iters=%d) error = %v", iters, err)
		}

		if want := proc.OutputLength(6); len(out) != want {
			t.Fatalf("length = %d, want %d", len(out), want)
		}

		for i, v := range out {
			if v != 0 {
				t.Fatalf("iters=%d sample %d = %v, want 0", iters, i, v)
			}
		}
	}
}

func TestProjectResetsMagnitudeExactly(t *testing.T) {
	target := [][]float64{
		{1, 2, 0.5, 3},
		{0.25, 4, 1.5, 2},
	}

	est := [][]complex128{
		{complex(1, 1), complex(-2, 0.5), complex(0, -3), complex(4, 4)},
		{complex(0.5, -0.5), complex(-1, -1), complex(2, 0), complex(0, 1)},
	}

	next := project(target, est, newScratch(4))

	for i := range next {
		for j, v := range next[i] {
			if diff := math.Abs(cmplx.Abs(v) - target[i][j]); diff > 1e-12 {
				t.Fatalf("frame %d bin %d: |X| = %v, want %v", i, j, cmplx.Abs(v), target[i][j])
			}

			// Phase must come from the estimate, not the target.
			if wantPhase := cmplx.Phase(est[i][j]); math.Abs(cmplx.Phase(v)-wantPhase) > 1e-12 {
				t.Fatalf("frame %d bin %d: phase = %v, want %v", i, j, cmplx.Phase(v), wantPhase)
			}
		}
	}
}

func TestProjectNearSilentBinUsesEpsilonFloor(t *testing.T) {
	target := [][]float64{{1}}
	est := [][]complex128{{complex(1e-12, 0)}}

	next := project(target, est, newScratch(1))

	v := next[0][0]
	if math.IsNaN(real(v)) || math.IsInf(real(v), 0) {
		t.Fatalf("non-finite projection: %v", v)
	}

	// |y| below Epsilon scales by target/Epsilon instead of dividing by |y|.
	want := 1e-12 / Epsilon
	if diff := math.Abs(cmplx.Abs(v) - want); diff > 1e-12 {
		t.Fatalf("|X| = %v, want %v", cmplx.Abs(v), want)
	}
}

func TestReconstructDeterministic(t *testing.T) {
	proc := newProc(t, 32, 8)

	x := testutil.DeterministicSine(500, 8000, 0.9, 320)
	spec, err := proc.Analyze(x)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	mag := make([][]float64, len(spec))
	for i, row := range spec {
		mag[i] = make([]float64, len(row))
		for j, c := range row {
			mag[i][j] = cmplx.Abs(c)
		}
	}

	a, err := Reconstruct(proc, mag, 10)
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}

	b, err := Reconstruct(proc, mag, 10)
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs between identical runs", i)
		}
	}
}

func TestReconstructImprovesMagnitudeFit(t *testing.T) {
	proc := newProc(t, 64, 16)

	x := testutil.DeterministicSine(440, 8000, 0.8, 640)
	spec, err := proc.Analyze(x)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	mag := make([][]float64, len(spec))
	for i, row := range spec {
		mag[i] = make([]float64, len(row))
		for j, c := range row {
			mag[i][j] = cmplx.Abs(c)
		}
	}

	distance := func(iters int) float64 {
		out, err := Reconstruct(proc, mag, iters)
		if err != nil {
			t.Fatalf("Reconstruct(iters=%d) error = %v", iters, err)
		}

		re, err := proc.Analyze(out)
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}

		sum := 0.0
		for i := range mag {
			for j := range mag[i] {
				d := cmplx.Abs(re[i][j]) - mag[i][j]
				sum += d * d
			}
		}
		return math.Sqrt(sum)
	}

	zero := distance(0)
	many := distance(30)

	if many >= zero {
		t.Fatalf("magnitude fit did not improve: %v (30 iters) >= %v (0 iters)", many, zero)
	}
}

func BenchmarkReconstruct(b *testing.B) {
	proc, err := stft.New(256, 64, 256)
	if err != nil {
		b.Fatalf("stft.New() error = %v", err)
	}

	mag := testutil.ConstantSpectrogram(40, 129, 0.5)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Reconstruct(proc, mag, 10); err != nil {
			b.Fatal(err)
		}
	}
}
