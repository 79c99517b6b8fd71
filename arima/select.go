package arima

import (
	"errors"
	"math"
)

// Grid bounds for order selection. The (0,0,0) order is excluded leaving 17
// candidates.
const (
	MaxP = 2
	MaxD = 1
	MaxQ = 2
)

var ErrNoViableModel = errors.New("no arima candidate produced a usable fit")

// SearchResult holds the best model found by Search along with how many
// candidates fit successfully.
type SearchResult struct {
	Model     *Model
	Order     Order
	AIC       float64
	Evaluated int
}

// EnumerateOrders returns the candidate orders in deterministic product order
// (p outermost, then d, then q), excluding (0,0,0).
func EnumerateOrders() []Order {
	orders := make([]Order, 0, (MaxP+1)*(MaxD+1)*(MaxQ+1)-1)
	for p := 0; p <= MaxP; p++ {
		for d := 0; d <= MaxD; d++ {
			for q := 0; q <= MaxQ; q++ {
				if p == 0 && d == 0 && q == 0 {
					continue
				}
				orders = append(orders, Order{P: p, D: d, Q: q})
			}
		}
	}
	return orders
}

// Search fits every candidate order against the training values and keeps the
// model with the lowest finite AIC. Individual fit failures are skipped; ties
// keep the first-encountered order. ErrNoViableModel is returned when every
// candidate fails or scores an undefined AIC.
func Search(y []float64, opt *Options) (*SearchResult, error) {
	var best *SearchResult
	var evaluated int

	for _, order := range EnumerateOrders() {
		m := New(order, opt)
		if err := m.Fit(y); err != nil {
			continue
		}
		evaluated++

		aic := m.AIC()
		if math.IsNaN(aic) {
			continue
		}
		if best == nil || aic < best.AIC {
			best = &SearchResult{
				Model: m,
				Order: order,
				AIC:   aic,
			}
		}
	}

	if best == nil {
		return nil, ErrNoViableModel
	}
	best.Evaluated = evaluated
	return best, nil
}
