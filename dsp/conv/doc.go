// Package conv provides direct time-domain convolution.
//
// The kernels used by the analysis pipeline are short (a 10-tap moving
// average by default), so only the O(N*M) direct form is implemented.
//
// # Usage
//
//	full, err := conv.Direct(signal, kernel)
//	same, err := conv.Convolve(signal, kernel, conv.ModeSame)
//
// # Output modes
//
// [ModeSame] keeps len(a) samples centred on the full result. For a kernel of
// length M the first output sample is full[(M-1)/2], which is the alignment
// numpy's convolve(..., mode="same") uses. Samples outside a are treated as
// zero, so edge outputs average fewer real samples than interior ones.
package conv
