// Package resample converts decoded audio to the analysis sample rate.
//
// Conversion is rational (up/down) with a polyphase Kaiser-windowed sinc
// FIR. A [Converter] keeps filter history between Process calls so long
// recordings can be fed in blocks; [ToRate] is the one-shot form used when
// loading files and compensates the filter delay so output sample 0 lines
// up with input sample 0.
//
//	mode            taps/phase
//	QualityFast     16
//	QualityBalanced 32
//	QualityBest     64
package resample
