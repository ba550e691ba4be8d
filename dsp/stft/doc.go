// Package stft implements the short-time transform engine used for
// magnitude-spectrogram waveform reconstruction: a windowed, overlapping
// forward transform (Analyze) and its overlap-add inverse (Synthesize).
//
// Both directions share one immutable parameter set held by a Processor, so
// a forward/inverse pair within one reconstruction can never disagree on
// frame size, hop size, or window shape.
package stft
