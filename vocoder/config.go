package vocoder

import "fmt"

// Defaults match common feature-extraction settings for 22.05 kHz singing
// and speech corpora.
const (
	DefaultSampleRate           = 22050
	DefaultFrameShift           = 0.0125
	DefaultFrameLength          = 0.05
	DefaultMaxDB                = 100.0
	DefaultRefDB                = 20.0
	DefaultPreemphasis          = 0.97
	DefaultPower                = 1.2
	DefaultGriffinLimIterations = 100
)

// Config holds every parameter of the reconstruction pipeline. The zero
// value is not usable; start from [DefaultConfig].
type Config struct {
	// SampleRate is the waveform sample rate in Hz.
	SampleRate int

	// FrameShift and FrameLength are the analysis hop and window in
	// seconds. The FFT size is tied to the window length.
	FrameShift  float64
	FrameLength float64

	// MaxDB and RefDB define the decibel normalization range: a normalized
	// value of 1 maps to RefDB, a value of 0 maps to RefDB-MaxDB.
	MaxDB float64
	RefDB float64

	// Preemphasis is the coefficient of the pre-emphasis filter applied
	// during feature extraction and inverted after reconstruction. Must be
	// in (0, 1).
	Preemphasis float64

	// Power sharpens denormalized magnitudes before phase estimation.
	Power float64

	// GriffinLimIterations is the fixed number of phase refinement passes.
	GriffinLimIterations int

	// TrimSilence removes low-energy leading and trailing regions from the
	// reconstructed waveform.
	TrimSilence bool
}

// DefaultConfig returns the standard 22.05 kHz reconstruction parameters.
func DefaultConfig() Config {
	return Config{
		SampleRate:           DefaultSampleRate,
		FrameShift:           DefaultFrameShift,
		FrameLength:          DefaultFrameLength,
		MaxDB:                DefaultMaxDB,
		RefDB:                DefaultRefDB,
		Preemphasis:          DefaultPreemphasis,
		Power:                DefaultPower,
		GriffinLimIterations: DefaultGriffinLimIterations,
		TrimSilence:          true,
	}
}

// Validate reports the first invalid parameter, if any.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("vocoder: sample rate must be positive, got %d", c.SampleRate)
	}
	if c.FrameShift <= 0 {
		return fmt.Errorf("vocoder: frame shift must be positive, got %g", c.FrameShift)
	}
	if c.FrameLength <= 0 {
		return fmt.Errorf("vocoder: frame length must be positive, got %g", c.FrameLength)
	}
	if c.MaxDB <= 0 {
		return fmt.Errorf("vocoder: max dB must be positive, got %g", c.MaxDB)
	}
	if !(c.Preemphasis > 0 && c.Preemphasis < 1) {
		return fmt.Errorf("vocoder: preemphasis coefficient must be in (0, 1), got %g", c.Preemphasis)
	}
	if c.Power <= 0 {
		return fmt.Errorf("vocoder: power exponent must be positive, got %g", c.Power)
	}
	if c.GriffinLimIterations < 0 {
		return fmt.Errorf("vocoder: iteration count must be non-negative, got %d", c.GriffinLimIterations)
	}

	hop, win := c.transformParams()
	if hop <= 0 {
		return fmt.Errorf("vocoder: frame shift %gs at %d Hz yields hop of %d samples", c.FrameShift, c.SampleRate, hop)
	}
	if win <= 0 {
		return fmt.Errorf("vocoder: frame length %gs at %d Hz yields window of %d samples", c.FrameLength, c.SampleRate, win)
	}

	return nil
}

// transformParams derives the hop and window sizes in samples. The FFT size
// equals the window size.
func (c Config) transformParams() (hopLength, winLength int) {
	hopLength = int(float64(c.SampleRate) * c.FrameShift)
	winLength = int(float64(c.SampleRate) * c.FrameLength)
	return hopLength, winLength
}
