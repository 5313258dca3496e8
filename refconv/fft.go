package refconv

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ErrNonPowerOfTwo is returned by CircularFFT for lengths its FFT plans do
// not cover.
var ErrNonPowerOfTwo = errors.New("refconv: length must be a power of two")

// CircularFFT performs circular convolution of a and b via the convolution
// theorem: pointwise multiplication in the frequency domain. Both inputs
// must share a power-of-two length.
func CircularFFT(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}
	n := len(a)
	if n&(n-1) != 0 {
		return nil, ErrNonPowerOfTwo
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("refconv: failed to create FFT plan: %w", err)
	}

	ta := make([]complex128, n)
	tb := make([]complex128, n)
	for i := 0; i < n; i++ {
		ta[i] = complex(a[i], 0)
		tb[i] = complex(b[i], 0)
	}

	fa := make([]complex128, n)
	fb := make([]complex128, n)
	if err := plan.Forward(fa, ta); err != nil {
		return nil, fmt.Errorf("refconv: forward FFT failed: %w", err)
	}
	if err := plan.Forward(fb, tb); err != nil {
		return nil, fmt.Errorf("refconv: forward FFT failed: %w", err)
	}

	for i := range fa {
		fa[i] *= fb[i]
	}

	result := make([]complex128, n)
	if err := plan.Inverse(result, fa); err != nil {
		return nil, fmt.Errorf("refconv: inverse FFT failed: %w", err)
	}

	out := make([]float64, n)
	for i, v := range result {
		out[i] = real(v)
	}
	return out, nil
}
