// Package curve supplies a concrete reference RateCurve, the external
// collaborator the pricing engine consumes through an interface. Curve
// construction and interpolation are kept out of the engine itself, which
// only ever depends on the RateCurve interface; this package exists so the
// engine is runnable end to end against real numbers, built on gonum's
// piecewise-linear interpolator.
package curve

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/interp"

	"github.com/joseph-blackelite/riskengine/dates"
)

// RateCurve is the read-only yield/borrow curve collaborator consumed by
// the pricing engine: a discount factor from a pay date back to a discount
// date.
type RateCurve interface {
	// Df returns the discount factor applicable to a unit of currency paid
	// at payDate, valued as of discountDate.
	Df(payDate, discountDate dates.Date) (float64, error)
}

// Act365Flat is a continuously-compounded zero curve, flat-extrapolated
// before its first point and after its last, linearly interpolated
// between points, with year fractions measured Act/365 from a base date.
type Act365Flat struct {
	base   dates.Date
	xs     []float64
	rates  []float64
	interp interp.PiecewiseLinear
}

// Point is a (date, annualised zero rate) pair used to build a curve.
type Point struct {
	Date dates.Date
	Rate float64
}

// NewAct365Flat builds a flat/flat Act/365 zero curve from base and the
// supplied points, which may come in any order (they are sorted by date
// here) and must contain at least one entry.
func NewAct365Flat(base dates.Date, points []Point) (*Act365Flat, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("curve: at least one point required")
	}
	sorted := append([]Point(nil), points...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	xs := make([]float64, len(sorted))
	rates := make([]float64, len(sorted))
	for i, p := range sorted {
		xs[i] = float64(dates.DaysBetween(base, p.Date))
		rates[i] = p.Rate
	}

	var pl interp.PiecewiseLinear
	if len(xs) > 1 {
		if err := pl.Fit(xs, rates); err != nil {
			return nil, fmt.Errorf("curve: fit: %w", err)
		}
	}
	return &Act365Flat{base: base, xs: xs, rates: rates, interp: pl}, nil
}

// rateAt returns the annualised zero rate at the given day offset from the
// curve's base date, flat-extrapolated beyond the first/last point.
func (c *Act365Flat) rateAt(days float64) float64 {
	if len(c.xs) == 1 {
		return c.rates[0]
	}
	if days <= c.xs[0] {
		return c.rates[0]
	}
	last := len(c.xs) - 1
	if days >= c.xs[last] {
		return c.rates[last]
	}
	return c.interp.Predict(days)
}

func (c *Act365Flat) discountFactorFromBase(d dates.Date) float64 {
	days := float64(dates.DaysBetween(c.base, d))
	r := c.rateAt(days)
	yearFraction := days / 365.0
	return expNeg(r * yearFraction)
}

// Df computes the discount factor from payDate back to discountDate as the
// ratio of the curve's discount factors at each date relative to its base.
func (c *Act365Flat) Df(payDate, discountDate dates.Date) (float64, error) {
	denom := c.discountFactorFromBase(discountDate)
	if denom == 0 {
		return 0, fmt.Errorf("curve: degenerate discount factor at %s", discountDate)
	}
	return c.discountFactorFromBase(payDate) / denom, nil
}

// Bump returns a new curve with every rate shifted by delta (flat,
// annualised), used by BumpYield/BumpBorrow.
func (c *Act365Flat) Bump(delta float64) *Act365Flat {
	shifted := make([]float64, len(c.rates))
	for i, r := range c.rates {
		shifted[i] = r + delta
	}
	var pl interp.PiecewiseLinear
	if len(c.xs) > 1 {
		// xs/rates were already validated at construction; a Fit error here
		// would mean the source curve was built inconsistently.
		_ = pl.Fit(c.xs, shifted)
	}
	return &Act365Flat{base: c.base, xs: append([]float64(nil), c.xs...), rates: shifted, interp: pl}
}
