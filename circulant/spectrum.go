package circulant

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrNonPowerOfTwo is returned by the spectral helpers, whose FFT plans
// only cover power-of-two domain sizes.
var ErrNonPowerOfTwo = errors.New("circulant: signal length must be a power of two")

// Symbol returns the length-n circulant symbol h of the operator, the
// single row that generates K: K·x equals the circular convolution x ⊛ h.
// h[m] accumulates kernel[p] over every tap p congruent to (center-m)
// modulo n.
func Symbol(kernel []float64, center, n int) ([]float64, error) {
	if err := validate(kernel, center, n); err != nil {
		return nil, err
	}
	h := make([]float64, n)
	for p, w := range kernel {
		h[mod(center-p, n)] += w
	}
	return h, nil
}

// Eigenvalues returns the eigenvalues of the circular convolution matrix K.
// Circulant matrices are diagonalised by the DFT, so the spectrum is simply
// the DFT of the symbol. n must be a power of two.
func Eigenvalues(kernel []float64, center, n int) ([]complex128, error) {
	if !isPowerOfTwo(n) {
		return nil, ErrNonPowerOfTwo
	}
	h, err := Symbol(kernel, center, n)
	if err != nil {
		return nil, err
	}
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("circulant: failed to create FFT plan: %w", err)
	}
	src := make([]complex128, n)
	for i, v := range h {
		src[i] = complex(v, 0)
	}
	eig := make([]complex128, n)
	if err := plan.Forward(eig, src); err != nil {
		return nil, fmt.Errorf("circulant: forward FFT failed: %w", err)
	}
	return eig, nil
}

// EigenvalueMagnitudes returns |λ| for each eigenvalue of K. A zero
// magnitude marks a frequency the periodic operator annihilates.
func EigenvalueMagnitudes(kernel []float64, center, n int) ([]float64, error) {
	eig, err := Eigenvalues(kernel, center, n)
	if err != nil {
		return nil, err
	}
	re := make([]float64, n)
	im := make([]float64, n)
	for i, v := range eig {
		re[i] = real(v)
		im[i] = imag(v)
	}
	out := make([]float64, n)
	vecmath.Magnitude(out, re, im)
	return out, nil
}

// isPowerOfTwo returns true if n is a power of 2.
func isPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
