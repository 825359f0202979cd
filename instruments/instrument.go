// Package instruments supplies the Instrument/Priceable contract and two
// canonical implementations sufficient to exercise the risk engine: spot
// assets (currencies, credit entities, equities) and zero-coupon bonds, plus
// a spot-starting European option to exercise the vol/forward dependency
// chain end to end.
package instruments

import (
	"github.com/joseph-blackelite/riskengine/dates"
	"github.com/joseph-blackelite/riskengine/pricing"
)

// Instrument is the full identity contract every instrument in this module
// implements. It structurally satisfies pricing.Instrument and
// pricing.Dependent without the pricing package importing this one.
type Instrument interface {
	ID() string
	CreditID() string
	Settlement() dates.DateRule
	VolTimeDynamics() pricing.TimeDynamics
	VolForwardDynamics() pricing.ForwardDynamics

	// PayoffCurrency names the currency the instrument settles in.
	PayoffCurrency() *Currency

	// Dependencies declares the instrument's market-data requirements and
	// reports whether it reads its own spot price.
	Dependencies(ctx pricing.DependencyContext) (pricing.SpotRequirement, error)
}

// Priceable is implemented by instruments that can value themselves against
// a pricing context.
type Priceable interface {
	Instrument
	Price(ctx pricing.Context) (float64, error)
}

// discountFromSpot is the shared pricing logic for instruments worth a
// fixed unit of currency at their own settlement date: one, unless the
// context asks for a different discount date, in which case the yield
// curve bridges the two.
func discountFromSpot(instrument Instrument, ctx pricing.Context) (float64, error) {
	discountDate, ok := ctx.DiscountDate()
	if !ok {
		return 1.0, nil
	}
	spotDate := ctx.SpotDate()
	payDate := instrument.Settlement().Apply(spotDate)
	if discountDate == payDate {
		return 1.0, nil
	}
	yc, err := ctx.YieldCurve(instrument.CreditID(), discountDate.Max(payDate))
	if err != nil {
		return 0, err
	}
	return yc.Df(payDate, discountDate)
}

// dependenceOnSpotDiscount declares the yield-curve requirement shared by
// every instrument priced through discountFromSpot. The context is assumed
// to already provide discounting up to its own discount date, so only the
// instrument's own pay date needs declaring.
func dependenceOnSpotDiscount(instrument Instrument, ctx pricing.DependencyContext) {
	payDate := instrument.Settlement().Apply(ctx.SpotDate())
	ctx.YieldCurve(instrument.CreditID(), payDate)
}
