// Package circulant builds the dense operators behind periodic (circular)
// convolution of 1-D signals.
//
// For a signal of length n and a kernel of length p with center offset d,
// three matrices describe the same computation:
//
//   - K (n×n): the circular convolution itself, with index arithmetic
//     performed modulo n
//   - E ((n+p-1)×n): the periodic extension that replicates the wraparound
//     samples so no modular indexing is needed afterwards
//   - G (n×(n+p-1)): an ordinary "valid" convolution, banded Toeplitz
//
// The central identity is K = G·E: extending the signal periodically and
// running a valid convolution reproduces the circular result. Downsample and
// the adjoint helpers extend the identity to strided convolution and
// transpose (upsampling) convolution.
//
// All functions are pure and allocate fresh matrices; there is no shared
// state.
package circulant

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Errors returned by operator constructors and appliers.
var (
	ErrEmptyKernel   = errors.New("circulant: empty kernel")
	ErrInvalidLength = errors.New("circulant: signal length must be positive")
	ErrInvalidCenter = errors.New("circulant: kernel center out of range")
	ErrInvalidStride = errors.New("circulant: stride must be positive")
	ErrShapeMismatch = errors.New("circulant: shape mismatch")
)

// validate checks the (kernel, center, n) triple shared by the builders.
func validate(kernel []float64, center, n int) error {
	if len(kernel) == 0 {
		return ErrEmptyKernel
	}
	if n <= 0 {
		return ErrInvalidLength
	}
	if center < 0 || center >= len(kernel) {
		return ErrInvalidCenter
	}
	return nil
}

// mod returns a mod n with a result in [0, n).
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// Convolution returns the n×n circular convolution matrix K with
// K[i][j] accumulating kernel[p] over every tap p congruent to
// (j-i+center) modulo n. Accumulation (rather than selection) keeps the
// result correct when the kernel is longer than the signal and wraps
// around the domain more than once.
func Convolution(kernel []float64, center, n int) (*mat.Dense, error) {
	if err := validate(kernel, center, n); err != nil {
		return nil, err
	}
	k := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for p, w := range kernel {
			j := mod(i-center+p, n)
			k.Set(i, j, k.At(i, j)+w)
		}
	}
	return k, nil
}

// Extension returns the (n+p-1)×n periodic extension matrix E for a kernel
// of length p with the given center. Row i selects source sample
// (i-center) mod n, so every row holds exactly one 1 and the final p-1 rows
// duplicate the wraparound samples.
func Extension(p, center, n int) (*mat.Dense, error) {
	if p <= 0 {
		return nil, ErrEmptyKernel
	}
	if n <= 0 {
		return nil, ErrInvalidLength
	}
	if center < 0 || center >= p {
		return nil, ErrInvalidCenter
	}
	e := mat.NewDense(n+p-1, n, nil)
	for i := 0; i < n+p-1; i++ {
		e.Set(i, mod(i-center, n), 1)
	}
	return e, nil
}

// Valid returns the n×(n+p-1) valid convolution matrix G with
// G[i][j] = kernel[j-i] inside the band and zero elsewhere. Applied to an
// extended signal it performs a sliding dot product with no implicit
// padding, so G·E equals Convolution for every admissible center.
func Valid(kernel []float64, n int) (*mat.Dense, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if n <= 0 {
		return nil, ErrInvalidLength
	}
	p := len(kernel)
	g := mat.NewDense(n, n+p-1, nil)
	for i := 0; i < n; i++ {
		for j, w := range kernel {
			g.Set(i, i+j, w)
		}
	}
	return g, nil
}

// Extend applies E to x without materialising the matrix, returning the
// periodically extended signal of length len(x)+p-1.
func Extend(x []float64, p, center int) ([]float64, error) {
	if p <= 0 {
		return nil, ErrEmptyKernel
	}
	if len(x) == 0 {
		return nil, ErrInvalidLength
	}
	if center < 0 || center >= p {
		return nil, ErrInvalidCenter
	}
	n := len(x)
	out := make([]float64, n+p-1)
	for i := range out {
		out[i] = x[mod(i-center, n)]
	}
	return out, nil
}

// Fold applies Eᵗ to an extended vector t of length n+p-1, adding each
// duplicated wraparound sample back onto its source position in the
// periodic domain.
func Fold(t []float64, n, center int) ([]float64, error) {
	if n <= 0 {
		return nil, ErrInvalidLength
	}
	p := len(t) - n + 1
	if p <= 0 {
		return nil, ErrShapeMismatch
	}
	if center < 0 || center >= p {
		return nil, ErrInvalidCenter
	}
	out := make([]float64, n)
	for i, v := range t {
		out[mod(i-center, n)] += v
	}
	return out, nil
}
