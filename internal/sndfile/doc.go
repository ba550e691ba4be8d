// Package sndfile reads and writes the audio and feature files used by the
// command-line tools: WAV and FLAC input, 16-bit mono WAV output, and a
// compact float16 container for magnitude spectrograms.
package sndfile
