// Package spectrum provides helpers over complex spectra and magnitude
// arrays: magnitude/power/phase extraction and decibel conversion.
//
// The package intentionally does not implement FFT itself. It operates on
// complex spectrum bins produced by external FFT backends.
package spectrum
