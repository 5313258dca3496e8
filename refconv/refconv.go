// Package refconv provides reference convolution routines used to
// cross-validate the dense operators in package circulant.
//
// The routines mirror what a tensor framework exposes for 1-D data: a
// "valid" convolution with configurable stride, its transpose counterpart,
// and circular convolution both in the time domain and via FFT. They are
// deliberately simple sliding-window loops; the operator packages treat
// them as a black-box collaborator and never depend on their internals.
//
// Valid and ValidStrided slide the kernel without flipping it, matching the
// banded operator G in package circulant (and the conv layers of common
// deep-learning frameworks, which compute cross-correlation).
package refconv

import "errors"

// Errors returned by the reference routines.
var (
	ErrEmptyInput     = errors.New("refconv: empty input")
	ErrEmptyKernel    = errors.New("refconv: empty kernel")
	ErrKernelTooLong  = errors.New("refconv: kernel longer than signal")
	ErrLengthMismatch = errors.New("refconv: length mismatch")
	ErrInvalidStride  = errors.New("refconv: stride must be positive")
)

// Valid performs a valid convolution of signal with kernel: a sliding dot
// product with no implicit padding. The output has length
// len(signal)-len(kernel)+1.
func Valid(signal, kernel []float64) ([]float64, error) {
	return ValidStrided(signal, kernel, 1)
}

// ValidStrided performs a valid convolution evaluated at every stride-th
// output position, starting at position 0.
func ValidStrided(signal, kernel []float64, stride int) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if len(kernel) > len(signal) {
		return nil, ErrKernelTooLong
	}
	if stride <= 0 {
		return nil, ErrInvalidStride
	}

	full := len(signal) - len(kernel) + 1
	out := make([]float64, (full+stride-1)/stride)
	for r := range out {
		start := r * stride
		sum := 0.0
		for p, w := range kernel {
			sum += w * signal[start+p]
		}
		out[r] = sum
	}
	return out, nil
}

// TransposeStrided performs a transpose (fractionally strided) convolution,
// the adjoint of ValidStrided. Each input sample scatters a scaled copy of
// the kernel into the output at stride-spaced positions:
//
//	out[i*stride+p] += y[i] * kernel[p]
//
// The output has length (len(y)-1)*stride + len(kernel), the shape a
// framework transpose-convolution reports before any output padding.
func TransposeStrided(y, kernel []float64, stride int) ([]float64, error) {
	if len(y) == 0 {
		return nil, ErrEmptyInput
	}
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if stride <= 0 {
		return nil, ErrInvalidStride
	}

	out := make([]float64, (len(y)-1)*stride+len(kernel))
	for i, v := range y {
		if v == 0 {
			continue
		}
		for p, w := range kernel {
			out[i*stride+p] += v * w
		}
	}
	return out, nil
}

// DirectCircular performs circular convolution of a and b in the time
// domain. Both inputs must have the same length n, and the result has
// length n.
func DirectCircular(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}

	n := len(a)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[(i+j)%n] += a[i] * b[j]
		}
	}
	return out, nil
}
