package forecast

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoDesignMatrix     = errors.New("no design matrix")
	ErrNoTargetArray      = errors.New("no target array")
	ErrTargetLenMismatch  = errors.New("target length does not match design matrix rows")
	ErrFeatureLenMismatch = errors.New("number of features does not match number of model coefficients")
)

// olsRegression computes ordinary least squares using QR factorization. The
// design matrix is expected to already carry its intercept column.
type olsRegression struct {
	coef []float64
}

func (o *olsRegression) fit(x mat.Matrix, y []float64) error {
	if x == nil {
		return ErrNoDesignMatrix
	}
	if len(y) == 0 {
		return ErrNoTargetArray
	}
	m, n := x.Dims()
	if len(y) != m {
		return fmt.Errorf("design matrix has %d rows and target has %d, %w", m, len(y), ErrTargetLenMismatch)
	}

	yT := mat.NewDense(1, m, y)

	qr := new(mat.QR)
	qr.Factorize(x)

	q := new(mat.Dense)
	r := new(mat.Dense)
	qr.QTo(q)
	qr.RTo(r)

	yq := new(mat.Dense)
	yq.Mul(yT, q)

	c := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		c[i] = yq.At(0, i)
		for j := i + 1; j < n; j++ {
			c[i] -= c[j] * r.At(i, j)
		}
		c[i] /= r.At(i, i)
	}
	o.coef = c
	return nil
}

func (o *olsRegression) predict(x mat.Matrix) ([]float64, error) {
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	_, n := x.Dims()
	if n != len(o.coef) {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", n, len(o.coef), ErrFeatureLenMismatch)
	}

	coefMx := mat.NewDense(1, n, o.coef)
	var res mat.Dense
	res.Mul(coefMx, x.T())

	out := make([]float64, res.RawMatrix().Cols)
	copy(out, res.RawRowView(0))
	return out, nil
}
