// Package spectrum computes one-sided magnitude spectra of sample sequences.
//
// [Transform] is the spectral branch of the analysis pipeline: it tapers the
// whole input with a Hamming window, takes a real DFT of nFFT points (the
// windowed input is truncated or zero-padded to that length) and returns the
// nFFT/2+1 magnitudes with their bin frequencies.
//
// The window spans the full input while nFFT only sets the bin count and
// spacing, so the effective frequency resolution follows len(samples), not
// nFFT. Callers must not assume the two are equal.
package spectrum
