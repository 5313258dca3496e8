package refconv

import (
	"errors"
	"math"
	"testing"
)

func TestValid(t *testing.T) {
	tests := []struct {
		name     string
		signal   []float64
		kernel   []float64
		expected []float64
	}{
		{
			name:     "sliding dot product",
			signal:   []float64{1, 2, 3, 4, 5},
			kernel:   []float64{1, 2, 3},
			expected: []float64{14, 20, 26},
		},
		{
			name:     "impulse",
			signal:   []float64{1, 2, 3, 4, 5},
			kernel:   []float64{1},
			expected: []float64{1, 2, 3, 4, 5},
		},
		{
			name:     "kernel covers signal",
			signal:   []float64{1, 2, 3},
			kernel:   []float64{1, 1, 1},
			expected: []float64{6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Valid(tt.signal, tt.kernel)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result) != len(tt.expected) {
				t.Fatalf("length mismatch: got %d, expected %d", len(result), len(tt.expected))
			}
			for i := range result {
				if math.Abs(result[i]-tt.expected[i]) > 1e-12 {
					t.Errorf("result[%d] = %v, expected %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestValidStrided(t *testing.T) {
	signal := []float64{1, 2, 3, 4, 5, 6, 7}
	kernel := []float64{1, 1}

	result, err := ValidStrided(signal, kernel, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Full output is 3,5,7,9,11,13; stride 2 keeps positions 0, 2, 4.
	expected := []float64{3, 7, 11}
	if len(result) != len(expected) {
		t.Fatalf("length mismatch: got %d, expected %d", len(result), len(expected))
	}
	for i := range result {
		if math.Abs(result[i]-expected[i]) > 1e-12 {
			t.Errorf("result[%d] = %v, expected %v", i, result[i], expected[i])
		}
	}
}

func TestValidStridedCeilingLength(t *testing.T) {
	// 6 full output positions with stride 4 keep positions 0 and 4.
	signal := []float64{1, 2, 3, 4, 5, 6, 7}
	result, err := ValidStrided(signal, []float64{1, 1}, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []float64{3, 11}
	for i := range result {
		if math.Abs(result[i]-expected[i]) > 1e-12 {
			t.Errorf("result[%d] = %v, expected %v", i, result[i], expected[i])
		}
	}
	if len(result) != len(expected) {
		t.Fatalf("length mismatch: got %d, expected %d", len(result), len(expected))
	}
}

func TestTransposeStrided(t *testing.T) {
	y := []float64{1, 2, 3}
	kernel := []float64{1, 10}

	result, err := TransposeStrided(y, kernel, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// out[2i+p] += y[i]*kernel[p], length (3-1)*2+2 = 6.
	expected := []float64{1, 10, 2, 20, 3, 30}
	if len(result) != len(expected) {
		t.Fatalf("length mismatch: got %d, expected %d", len(result), len(expected))
	}
	for i := range result {
		if math.Abs(result[i]-expected[i]) > 1e-12 {
			t.Errorf("result[%d] = %v, expected %v", i, result[i], expected[i])
		}
	}
}

func TestTransposeStridedIsAdjoint(t *testing.T) {
	// <ValidStrided(x, k, s), y> == <x, TransposeStrided(y, k, s)> when the
	// stride divides the number of full output positions.
	signal := []float64{1, -2, 3, 0.5, -1, 2, 4, -3, 1, 0}
	kernel := []float64{0.5, -1, 2}
	const stride = 2

	forward, err := ValidStrided(signal, kernel, stride)
	if err != nil {
		t.Fatalf("forward failed: %v", err)
	}

	y := make([]float64, len(forward))
	for i := range y {
		y[i] = float64(i + 1)
	}

	back, err := TransposeStrided(y, kernel, stride)
	if err != nil {
		t.Fatalf("transpose failed: %v", err)
	}

	lhs := 0.0
	for i := range forward {
		lhs += forward[i] * y[i]
	}
	rhs := 0.0
	for i := range back {
		if i < len(signal) {
			rhs += back[i] * signal[i]
		}
	}
	if math.Abs(lhs-rhs) > 1e-9 {
		t.Fatalf("adjoint identity violated: %v vs %v", lhs, rhs)
	}
}

func TestDirectCircularImpulse(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{1, 0, 0, 0}

	result, err := DirectCircular(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range result {
		if math.Abs(result[i]-a[i]) > 1e-12 {
			t.Errorf("result[%d] = %v, expected %v", i, result[i], a[i])
		}
	}
}

func TestDirectCircularWrap(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{0, 1, 0, 0}

	result, err := DirectCircular(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A one-sample delay rotates the signal.
	expected := []float64{4, 1, 2, 3}
	for i := range result {
		if math.Abs(result[i]-expected[i]) > 1e-12 {
			t.Errorf("result[%d] = %v, expected %v", i, result[i], expected[i])
		}
	}
}

func TestErrors(t *testing.T) {
	if _, err := Valid(nil, []float64{1}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := Valid([]float64{1}, nil); !errors.Is(err, ErrEmptyKernel) {
		t.Errorf("expected ErrEmptyKernel, got %v", err)
	}
	if _, err := Valid([]float64{1}, []float64{1, 2}); !errors.Is(err, ErrKernelTooLong) {
		t.Errorf("expected ErrKernelTooLong, got %v", err)
	}
	if _, err := ValidStrided([]float64{1, 2}, []float64{1}, 0); !errors.Is(err, ErrInvalidStride) {
		t.Errorf("expected ErrInvalidStride, got %v", err)
	}
	if _, err := TransposeStrided([]float64{1}, []float64{1}, -1); !errors.Is(err, ErrInvalidStride) {
		t.Errorf("expected ErrInvalidStride, got %v", err)
	}
	if _, err := DirectCircular([]float64{1, 2}, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}
