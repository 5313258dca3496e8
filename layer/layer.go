// Package layer provides a small periodic convolution layer built on the
// operators in package circulant.
//
// A single PeriodicConv type covers equisampled, downsampling, and
// upsampling convolution: the direction selects between the strided
// circular operator and its adjoint, and a stride of 1 recovers the plain
// periodic convolution. The layer never materialises the dense matrices;
// it applies the same modular index algebra directly.
package layer

import (
	"errors"
	"fmt"
)

// Direction selects which of the two operator variants a layer applies.
type Direction int

const (
	// Forward applies the strided circular convolution, mapping n input
	// samples to ceil(n/stride) output samples.
	Forward Direction = iota

	// Transpose applies the adjoint of the strided circular convolution,
	// mapping m input samples to m*stride output samples.
	Transpose
)

// Errors returned by the layer constructor and Apply.
var (
	ErrEmptyKernel      = errors.New("layer: empty kernel")
	ErrInvalidCenter    = errors.New("layer: kernel center out of range")
	ErrInvalidStride    = errors.New("layer: stride must be positive")
	ErrInvalidDirection = errors.New("layer: unknown direction")
	ErrEmptyInput       = errors.New("layer: empty input")
)

// PeriodicConv is a stateless 1-D convolution layer over a periodic domain.
// All parameters are fixed at construction; Apply is safe for concurrent
// use.
type PeriodicConv struct {
	kernel []float64
	center int
	stride int
	dir    Direction
}

// New creates a periodic convolution layer for the given kernel, center
// offset, stride, and direction. The kernel is copied.
func New(kernel []float64, center, stride int, dir Direction) (*PeriodicConv, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if center < 0 || center >= len(kernel) {
		return nil, fmt.Errorf("%w: center %d with kernel length %d", ErrInvalidCenter, center, len(kernel))
	}
	if stride <= 0 {
		return nil, ErrInvalidStride
	}
	if dir != Forward && dir != Transpose {
		return nil, ErrInvalidDirection
	}
	return &PeriodicConv{
		kernel: append([]float64(nil), kernel...),
		center: center,
		stride: stride,
		dir:    dir,
	}, nil
}

// NewDownsampling creates a forward layer: periodic convolution followed by
// keeping every stride-th sample.
func NewDownsampling(kernel []float64, center, stride int) (*PeriodicConv, error) {
	return New(kernel, center, stride, Forward)
}

// NewUpsampling creates a transpose layer: the adjoint of the downsampling
// convolution, expanding the input by the stride factor.
func NewUpsampling(kernel []float64, center, stride int) (*PeriodicConv, error) {
	return New(kernel, center, stride, Transpose)
}

// Kernel returns a copy of the layer kernel.
func (l *PeriodicConv) Kernel() []float64 {
	return append([]float64(nil), l.kernel...)
}

// Center returns the kernel center offset.
func (l *PeriodicConv) Center() int { return l.center }

// Stride returns the sampling interval.
func (l *PeriodicConv) Stride() int { return l.stride }

// Direction returns the operator variant the layer applies.
func (l *PeriodicConv) Direction() Direction { return l.dir }

// OutputLen returns the output length for an input of inLen samples.
func (l *PeriodicConv) OutputLen(inLen int) int {
	if inLen <= 0 {
		return 0
	}
	if l.dir == Forward {
		return (inLen + l.stride - 1) / l.stride
	}
	return inLen * l.stride
}

// Apply runs the layer on x and returns a fresh output slice.
//
// Forward computes y[r] = Σ_p kernel[p] · x[(r·stride - center + p) mod n].
// Transpose scatters instead of gathering, accumulating
// kernel[p] · y[r] into x[(r·stride - center + p) mod n] with n = len(y)·stride,
// which is exactly the matrix transpose of the forward pass on n samples.
func (l *PeriodicConv) Apply(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if l.dir == Forward {
		return l.applyForward(x), nil
	}
	return l.applyTranspose(x), nil
}

func (l *PeriodicConv) applyForward(x []float64) []float64 {
	n := len(x)
	out := make([]float64, (n+l.stride-1)/l.stride)
	for r := range out {
		base := r*l.stride - l.center
		sum := 0.0
		for p, w := range l.kernel {
			sum += w * x[mod(base+p, n)]
		}
		out[r] = sum
	}
	return out
}

func (l *PeriodicConv) applyTranspose(y []float64) []float64 {
	n := len(y) * l.stride
	out := make([]float64, n)
	for r, v := range y {
		if v == 0 {
			continue
		}
		base := r*l.stride - l.center
		for p, w := range l.kernel {
			out[mod(base+p, n)] += v * w
		}
	}
	return out
}

// mod returns a mod n with a result in [0, n).
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
