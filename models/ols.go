package models

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

type OLSOptions struct {
	FitIntercept bool
}

func NewDefaultOLSOptions() *OLSOptions {
	return &OLSOptions{
		FitIntercept: true,
	}
}

// OLSRegression computes ordinary least squares using QR factorization.
type OLSRegression struct {
	opt       *OLSOptions
	coef      []float64
	intercept float64
}

func NewOLSRegression(opt *OLSOptions) *OLSRegression {
	if opt == nil {
		opt = NewDefaultOLSOptions()
	}
	return &OLSRegression{
		opt: opt,
	}
}

// Fit solves the least squares problem for the design matrix x against the
// single column target y.
func (o *OLSRegression) Fit(x, y mat.Matrix) error {
	if o.opt == nil {
		return ErrNoOptions
	}
	if x == nil {
		return ErrNoTrainingMatrix
	}
	if y == nil {
		return ErrNoTargetMatrix
	}

	m, _ := x.Dims()
	ym, yn := y.Dims()
	if yn != 1 {
		return fmt.Errorf("target has %d columns, %w", yn, ErrTargetNotColumn)
	}
	if ym != m {
		return fmt.Errorf("training data has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}

	if o.opt.FitIntercept {
		x = withInterceptColumn(x)
	}
	_, n := x.Dims()

	var qr mat.QR
	qr.Factorize(x)

	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, mat.DenseCopyOf(y)); err != nil {
		return fmt.Errorf("unable to solve least squares system, %w", err)
	}

	c := mat.Col(nil, 0, &beta)
	if len(c) != n {
		return fmt.Errorf("solved %d coefficients for %d features, %w", len(c), n, ErrFeatureLenMismatch)
	}
	if o.opt.FitIntercept {
		o.intercept = c[0]
		o.coef = c[1:]
		return nil
	}
	o.coef = c
	return nil
}

// Predict computes the fitted values for the design matrix x.
func (o *OLSRegression) Predict(x mat.Matrix) ([]float64, error) {
	if o.opt == nil {
		return nil, ErrNoOptions
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	if o.coef == nil {
		return nil, ErrFeatureLenMismatch
	}

	if o.opt.FitIntercept {
		x = withInterceptColumn(x)
	}

	coef := o.coef
	if o.opt.FitIntercept {
		coef = append([]float64{o.intercept}, o.coef...)
	}

	m, n := x.Dims()
	if n != len(coef) {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", n, len(coef), ErrFeatureLenMismatch)
	}

	coefVec := mat.NewVecDense(len(coef), coef)
	res := mat.NewVecDense(m, nil)
	res.MulVec(x, coefVec)
	return res.RawVector().Data, nil
}

// Score returns the coefficient of determination of the prediction against y.
func (o *OLSRegression) Score(x, y mat.Matrix) (float64, error) {
	if y == nil {
		return 0.0, ErrNoTargetMatrix
	}
	res, err := o.Predict(x)
	if err != nil {
		return 0.0, err
	}
	ySlice := mat.Col(nil, 0, y)
	if len(res) != len(ySlice) {
		return 0.0, fmt.Errorf("predicted %d rows for %d targets, %w", len(res), len(ySlice), ErrTargetLenMismatch)
	}
	return stat.RSquaredFrom(res, ySlice, nil), nil
}

func (o *OLSRegression) Intercept() float64 {
	return o.intercept
}

func (o *OLSRegression) Coef() []float64 {
	c := make([]float64, len(o.coef))
	copy(c, o.coef)
	return c
}

func withInterceptColumn(x mat.Matrix) mat.Matrix {
	m, n := x.Dims()
	aug := mat.NewDense(m, n+1, nil)
	for i := 0; i < m; i++ {
		aug.Set(i, 0, 1.0)
		for j := 0; j < n; j++ {
			aug.Set(i, j+1, x.At(i, j))
		}
	}
	return aug
}
