package pricing

import (
	"github.com/joseph-blackelite/riskengine/curve"
	"github.com/joseph-blackelite/riskengine/dates"
)

// Instrument is the minimal surface the pricing context needs from an
// instrument in order to resolve its market data: an identity, the credit
// curve that discounts it, its settlement rule, and the two vol-surface
// decorators that account for a shifted spot date or forward. The richer
// instrument contract (instruments.Instrument) satisfies this interface
// structurally; no import cycle is needed.
type Instrument interface {
	ID() string
	CreditID() string
	Settlement() dates.DateRule
	VolTimeDynamics() TimeDynamics
	VolForwardDynamics() ForwardDynamics
}

// Forward is the expected spot path after dividends and cost of carry,
// keyed implicitly by the instrument it was built for.
type Forward interface {
	// Value returns the forward price for delivery at d.
	Value(d dates.Date) (float64, error)
}

// VolSurface is a read-only implied-volatility surface.
type VolSurface interface {
	// Vol returns the implied volatility for the given strike and expiry.
	Vol(strike float64, expiry dates.Date) (float64, error)
}

// TimeDynamics decorates a vol surface to account for the passage of time
// (a shifted spot date).
type TimeDynamics interface {
	Modify(vol VolSurface, spotDate dates.Date) (VolSurface, error)
}

// ForwardDynamics decorates a vol surface to account for a shifted forward.
type ForwardDynamics interface {
	Modify(vol VolSurface, forward Forward) (VolSurface, error)
}

// Context is the read-only pricing-context contract. Every read is a pure
// function of the implementation's current state; no read may mutate
// anything reachable by the caller.
type Context interface {
	// SpotDate returns the valuation date at which quoted spot prices apply.
	SpotDate() dates.Date

	// DiscountDate returns the date to which present value is computed, and
	// whether one was configured; when absent every instrument discounts to
	// its own settlement date.
	DiscountDate() (dates.Date, bool)

	// YieldCurve resolves the yield curve for a credit id. highWaterMark is
	// advisory: implementations must not reject a request whose high water
	// mark lies within the one declared during dependency collection.
	YieldCurve(creditID string, highWaterMark dates.Date) (curve.RateCurve, error)

	// Spot resolves the screen price for id.
	Spot(id string) (float64, error)

	// ForwardCurve resolves the forward curve for instrument.
	ForwardCurve(instrument Instrument, highWaterMark dates.Date) (Forward, error)

	// VolSurface resolves the (possibly decorated) vol surface for
	// instrument, given its forward.
	VolSurface(instrument Instrument, forward Forward, highWaterMark dates.Date) (VolSurface, error)

	// Correlation resolves the correlation between two instruments. Most
	// implementations return ErrCorrelationUnsupported; it is exposed as a
	// hook only, with no working implementation required.
	Correlation(a, b Instrument) (float64, error)
}
