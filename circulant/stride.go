package circulant

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"
)

// Downsample selects every stride-th row of m starting at row 0, emulating
// a strided convolution from the full operator. The result has
// ceil(rows/stride) rows; strides that do not divide the row count follow
// the same ceiling rule.
func Downsample(m mat.Matrix, stride int) (*mat.Dense, error) {
	if stride <= 0 {
		return nil, ErrInvalidStride
	}
	rows, cols := m.Dims()
	outRows := (rows + stride - 1) / stride
	out := mat.NewDense(outRows, cols, nil)
	for r := 0; r < outRows; r++ {
		for j := 0; j < cols; j++ {
			out.Set(r, j, m.At(r*stride, j))
		}
	}
	return out, nil
}

// Apply returns m·x as a fresh slice. Each output sample is the dot product
// of one operator row with the input.
func Apply(m mat.Matrix, x []float64) ([]float64, error) {
	rows, cols := m.Dims()
	if len(x) != cols {
		return nil, fmt.Errorf("%w: operator has %d columns, input has %d samples", ErrShapeMismatch, cols, len(x))
	}
	out := make([]float64, rows)
	row := make([]float64, cols)
	prod := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, m)
		vecmath.MulBlock(prod, row, x)
		sum := 0.0
		for _, v := range prod {
			sum += v
		}
		out[i] = sum
	}
	return out, nil
}

// TransposeApply returns mᵗ·y, the adjoint application used to validate
// transpose-convolution (upsampling) outputs.
func TransposeApply(m mat.Matrix, y []float64) ([]float64, error) {
	rows, cols := m.Dims()
	if len(y) != rows {
		return nil, fmt.Errorf("%w: operator has %d rows, input has %d samples", ErrShapeMismatch, rows, len(y))
	}
	out := make([]float64, cols)
	for i, w := range y {
		if w == 0 {
			continue
		}
		for j := 0; j < cols; j++ {
			out[j] += m.At(i, j) * w
		}
	}
	return out, nil
}

// TransposeUpsample applies the adjoint of the strided operator in one
// step: (Downsample(m, stride))ᵗ · y. With m the circular convolution
// matrix this is the periodic upsampling (transpose convolution) result.
func TransposeUpsample(m mat.Matrix, y []float64, stride int) ([]float64, error) {
	ms, err := Downsample(m, stride)
	if err != nil {
		return nil, err
	}
	return TransposeApply(ms, y)
}

// PadToExtended adjusts a raw framework transpose-convolution output t to
// the extended length n+p-1 expected by Fold. The raw output of upsampling
// m = n/stride samples has length (m-1)·stride+p; appending min(p,stride)-1
// zeros aligns it with the adjoint of the strided valid operator. The
// stride must divide n, and strides larger than the kernel fall outside the
// adjustment rule.
func PadToExtended(t []float64, n, p, stride int) ([]float64, error) {
	if p <= 0 {
		return nil, ErrEmptyKernel
	}
	if stride <= 0 {
		return nil, ErrInvalidStride
	}
	if n <= 0 || n%stride != 0 {
		return nil, fmt.Errorf("%w: stride %d does not divide signal length %d", ErrInvalidStride, stride, n)
	}
	m := n / stride
	if len(t) != (m-1)*stride+p {
		return nil, fmt.Errorf("%w: raw output has %d samples, want %d", ErrShapeMismatch, len(t), (m-1)*stride+p)
	}
	adjust := p
	if stride < p {
		adjust = stride
	}
	adjust--
	if len(t)+adjust != n+p-1 {
		return nil, fmt.Errorf("%w: adjustment of %d samples cannot reach extended length %d", ErrShapeMismatch, adjust, n+p-1)
	}
	out := make([]float64, n+p-1)
	copy(out, t)
	return out, nil
}
