// Package arima implements ARIMA(p,d,q) model fitting by conditional sum of
// squares along with AIC-based order selection over a fixed candidate grid.
// Stationarity and invertibility are not enforced during fitting so that
// short series still produce usable candidates; fits that go non-finite are
// reported as errors and skipped by the selector.
package arima

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

var (
	ErrInsufficientData = errors.New("insufficient observations for the requested order")
	ErrUntrainedModel   = errors.New("model has not been fit yet")
	ErrInvalidHorizon   = errors.New("forecast horizon must be at least one step")
	ErrDegenerateFit    = errors.New("fit produced non-finite parameters")
)

// minFitSlack is the number of observations required beyond the order terms
// before a fit is attempted.
const minFitSlack = 10

// Order identifies one ARIMA configuration by its (p,d,q) triple.
type Order struct {
	P int `json:"p"`
	D int `json:"d"`
	Q int `json:"q"`
}

func (o Order) String() string {
	return fmt.Sprintf("(%d,%d,%d)", o.P, o.D, o.Q)
}

func (o Order) numParams() int {
	return o.P + o.Q + 1
}

// Options configures the conditional sum of squares optimizer.
type Options struct {
	MaxIter      int
	Tolerance    float64
	LearningRate float64
}

// NewDefaultOptions returns the default optimizer options with the iteration
// cap at 50.
func NewDefaultOptions() *Options {
	return &Options{
		MaxIter:      50,
		Tolerance:    1e-6,
		LearningRate: 0.01,
	}
}

// Model represents a single ARIMA model for one training series.
type Model struct {
	order Order
	opt   *Options

	arCoef    []float64
	maCoef    []float64
	intercept float64
	variance  float64
	logLik    float64
	aic       float64

	y         []float64
	diff      []float64
	residuals []float64
	trained   bool
}

// New creates an unfit model with the given order. If no options are provided
// a default is used.
func New(order Order, opt *Options) *Model {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	return &Model{
		order:  order,
		opt:    opt,
		arCoef: make([]float64, order.P),
		maCoef: make([]float64, order.Q),
	}
}

// Order returns the model order.
func (m *Model) Order() Order {
	return m.order
}

// AIC returns the Akaike information criterion of the fit model. NaN when the
// likelihood is undefined.
func (m *Model) AIC() float64 {
	if !m.trained {
		return math.NaN()
	}
	return m.aic
}

// Fit estimates the model parameters from the training values.
func (m *Model) Fit(y []float64) error {
	if len(y) < m.order.P+m.order.D+m.order.Q+minFitSlack {
		return fmt.Errorf("%d observations for order %s, %w", len(y), m.order, ErrInsufficientData)
	}

	m.y = make([]float64, len(y))
	copy(m.y, y)

	diff := m.y
	for i := 0; i < m.order.D; i++ {
		diff = difference(diff)
	}
	m.diff = diff

	if m.order.P > 0 {
		r := acf(m.diff, m.order.P)
		if ar := yuleWalker(r, m.order.P); ar != nil {
			copy(m.arCoef, ar)
		}
	}
	for i := range m.maCoef {
		m.maCoef[i] = 0.1
	}

	if err := m.optimize(); err != nil {
		return err
	}

	m.computeResiduals()
	m.computeAIC()
	m.trained = true
	return nil
}

// optimize refines the AR and MA coefficients by gradient steps on the
// conditional sum of squares, capped at MaxIter passes.
func (m *Model) optimize() error {
	y := m.diff
	n := len(y)
	p := m.order.P
	q := m.order.Q

	m.intercept = stat.Mean(y, nil)
	if p == 0 && q == 0 {
		return nil
	}

	residuals := make([]float64, n)
	start := max(p, q)
	prevSSE := math.Inf(1)

	for iter := 0; iter < m.opt.MaxIter; iter++ {
		sse := 0.0
		for t := start; t < n; t++ {
			residuals[t] = y[t] - m.predictAt(y, residuals, t)
			sse += residuals[t] * residuals[t]
		}
		if math.IsNaN(sse) || math.IsInf(sse, 0) {
			return ErrDegenerateFit
		}
		if math.Abs(prevSSE-sse) < m.opt.Tolerance {
			break
		}
		prevSSE = sse

		arGrad := make([]float64, p)
		maGrad := make([]float64, q)
		for t := start; t < n; t++ {
			for i := 0; i < p; i++ {
				arGrad[i] -= 2 * residuals[t] * (y[t-i-1] - m.intercept)
			}
			for i := 0; i < q; i++ {
				maGrad[i] -= 2 * residuals[t] * residuals[t-i-1]
			}
		}
		for i := 0; i < p; i++ {
			m.arCoef[i] -= m.opt.LearningRate * arGrad[i] / float64(n)
			m.arCoef[i] = clamp(m.arCoef[i])
		}
		for i := 0; i < q; i++ {
			m.maCoef[i] -= m.opt.LearningRate * maGrad[i] / float64(n)
			m.maCoef[i] = clamp(m.maCoef[i])
		}
	}

	for _, c := range m.arCoef {
		if math.IsNaN(c) {
			return ErrDegenerateFit
		}
	}
	for _, c := range m.maCoef {
		if math.IsNaN(c) {
			return ErrDegenerateFit
		}
	}
	return nil
}

// predictAt computes the one-step prediction at index t of the differenced
// series using current coefficients and prior residuals.
func (m *Model) predictAt(y, residuals []float64, t int) float64 {
	pred := m.intercept
	for i := 0; i < m.order.P && t-i-1 >= 0; i++ {
		pred += m.arCoef[i] * (y[t-i-1] - m.intercept)
	}
	for i := 0; i < m.order.Q && t-i-1 >= 0; i++ {
		pred += m.maCoef[i] * residuals[t-i-1]
	}
	return pred
}

func (m *Model) computeResiduals() {
	y := m.diff
	n := len(y)
	start := max(m.order.P, m.order.Q)

	m.residuals = make([]float64, n)
	for t := 0; t < n; t++ {
		if t < start {
			m.residuals[t] = y[t] - m.intercept
			continue
		}
		m.residuals[t] = y[t] - m.predictAt(y, m.residuals, t)
	}

	sse := 0.0
	count := 0
	for t := start; t < n; t++ {
		sse += m.residuals[t] * m.residuals[t]
		count++
	}
	dof := count - m.order.P - m.order.Q - 1
	if dof > 0 {
		m.variance = sse / float64(dof)
		return
	}
	m.variance = sse / float64(count)
}

func (m *Model) computeAIC() {
	n := float64(len(m.residuals))
	k := float64(m.order.numParams())

	sse := 0.0
	for _, r := range m.residuals {
		sse += r * r
	}
	if m.variance <= 0 {
		m.logLik = math.Inf(-1)
		m.aic = math.NaN()
		return
	}
	m.logLik = -n/2*math.Log(2*math.Pi) - n/2*math.Log(m.variance) - sse/(2*m.variance)
	m.aic = -2*m.logLik + 2*k
	if math.IsInf(m.aic, 0) {
		m.aic = math.NaN()
	}
}

// Forecast generates h steps ahead from the end of the training series,
// integrating back through any differencing.
func (m *Model) Forecast(h int) ([]float64, error) {
	if !m.trained {
		return nil, ErrUntrainedModel
	}
	if h < 1 {
		return nil, ErrInvalidHorizon
	}

	n := len(m.diff)
	extY := make([]float64, n+h)
	copy(extY, m.diff)
	extRes := make([]float64, n+h)
	copy(extRes, m.residuals)

	for step := 0; step < h; step++ {
		t := n + step
		pred := m.intercept
		for i := 0; i < m.order.P && t-i-1 >= 0; i++ {
			pred += m.arCoef[i] * (extY[t-i-1] - m.intercept)
		}
		// future residuals have expectation zero
		for i := 0; i < m.order.Q && t-i-1 >= 0 && t-i-1 < n; i++ {
			pred += m.maCoef[i] * extRes[t-i-1]
		}
		extY[t] = pred
	}

	forecasts := make([]float64, h)
	copy(forecasts, extY[n:])
	if m.order.D > 0 {
		forecasts = m.integrate(forecasts)
	}
	return forecasts, nil
}

// integrate undoes differencing to return forecasts on the original scale.
func (m *Model) integrate(forecasts []float64) []float64 {
	result := make([]float64, len(forecasts))
	copy(result, forecasts)
	for i := 0; i < m.order.D; i++ {
		last := m.y[len(m.y)-1-i]
		for j := range result {
			if j == 0 {
				result[j] += last
				continue
			}
			result[j] += result[j-1]
		}
	}
	return result
}

func difference(y []float64) []float64 {
	if len(y) < 2 {
		return nil
	}
	d := make([]float64, len(y)-1)
	for i := 1; i < len(y); i++ {
		d[i-1] = y[i] - y[i-1]
	}
	return d
}

// acf computes sample autocorrelations r[0..maxLag] with r[0] = 1.
func acf(y []float64, maxLag int) []float64 {
	n := len(y)
	if n == 0 || maxLag < 0 {
		return nil
	}
	mean := stat.Mean(y, nil)

	var c0 float64
	for _, v := range y {
		c0 += (v - mean) * (v - mean)
	}

	r := make([]float64, maxLag+1)
	r[0] = 1.0
	if c0 == 0 {
		return r
	}
	for lag := 1; lag <= maxLag && lag < n; lag++ {
		var ck float64
		for t := lag; t < n; t++ {
			ck += (y[t] - mean) * (y[t-lag] - mean)
		}
		r[lag] = ck / c0
	}
	return r
}

// yuleWalker estimates AR coefficients from autocorrelations using the
// Levinson-Durbin recursion.
func yuleWalker(r []float64, order int) []float64 {
	if order <= 0 || len(r) <= order {
		return nil
	}

	phi := make([]float64, order)
	phi[0] = r[1]
	if order == 1 {
		return phi
	}

	v := 1 - phi[0]*phi[0]
	for i := 1; i < order; i++ {
		lambda := r[i+1]
		for j := 0; j < i; j++ {
			lambda -= phi[j] * r[i-j]
		}
		lambda /= v

		next := make([]float64, i+1)
		for j := 0; j < i; j++ {
			next[j] = phi[j] - lambda*phi[i-1-j]
		}
		next[i] = lambda
		copy(phi, next)

		v *= 1 - lambda*lambda
		if v <= 0 {
			break
		}
	}
	return phi
}

func clamp(c float64) float64 {
	return math.Max(-0.99, math.Min(0.99, c))
}
