// Package griffinlim estimates a plausible phase for a magnitude-only
// spectrogram by alternating projections between the time and frequency
// domains (Griffin & Lim, 1984, in its raw form without momentum).
//
// Each iteration synthesizes a waveform from the current complex estimate,
// re-analyzes it to obtain a new phase, and resets the magnitude to the
// original target. The iteration count is fixed; the algorithm performs no
// convergence check and does not guarantee monotonic improvement per step.
package griffinlim
