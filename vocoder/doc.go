// Package vocoder turns normalized magnitude spectrograms back into
// waveforms.
//
// A spectrogram arrives as rows of frequency bins with values normalized
// into [0, 1] on a decibel scale. Reconstruction undoes that normalization,
// sharpens the magnitudes with a power exponent, estimates phase with the
// Griffin-Lim algorithm, undoes the pre-emphasis applied during feature
// extraction, and optionally trims leading and trailing silence. The result
// is a mono float32 waveform at the configured sample rate.
//
// The forward direction is also provided: [Synthesizer.WaveformToSpectrogram]
// computes the normalized spectrogram a waveform would have produced, using
// the same parameters, which is useful for preparing training features and
// for round-trip testing.
package vocoder
