package instruments

import (
	"github.com/joseph-blackelite/riskengine/dates"
	"github.com/joseph-blackelite/riskengine/marketdata"
	"github.com/joseph-blackelite/riskengine/pricing"
)

// ZeroCoupon is a single currency amount paid on a fixed payment date,
// discounted against its own credit id's yield curve: it can therefore
// represent a risky bond. settlement is only used when the context supplies
// no explicit discount date; it should normally be the settlement rule of
// whatever instrument the zero coupon was spun off from (e.g. an option's
// premium leg).
type ZeroCoupon struct {
	id          string
	creditID    string
	currency    *Currency
	paymentDate dates.Date
	settlement  dates.DateRule
}

// NewZeroCoupon constructs a zero-coupon bond.
func NewZeroCoupon(id, creditID string, currency *Currency, paymentDate dates.Date, settlement dates.DateRule) *ZeroCoupon {
	return &ZeroCoupon{id: id, creditID: creditID, currency: currency, paymentDate: paymentDate, settlement: settlement}
}

func (z *ZeroCoupon) ID() string                               { return z.id }
func (z *ZeroCoupon) CreditID() string                         { return z.creditID }
func (z *ZeroCoupon) Settlement() dates.DateRule                { return z.settlement }
func (z *ZeroCoupon) PayoffCurrency() *Currency                 { return z.currency }
func (z *ZeroCoupon) VolTimeDynamics() pricing.TimeDynamics     { return marketdata.NoTimeDynamics{} }
func (z *ZeroCoupon) VolForwardDynamics() pricing.ForwardDynamics { return marketdata.NoForwardDynamics{} }
func (z *ZeroCoupon) String() string                            { return z.id }

// Dependencies implements Instrument.
func (z *ZeroCoupon) Dependencies(ctx pricing.DependencyContext) (pricing.SpotRequirement, error) {
	ctx.YieldCurve(z.creditID, z.paymentDate)
	return pricing.SpotNotRequired, nil
}

// Price implements Priceable: one unit of currency paid on paymentDate,
// discounted to the context's discount date, falling back to the zero's
// own settlement-applied spot date when none was supplied.
func (z *ZeroCoupon) Price(ctx pricing.Context) (float64, error) {
	discountDate, ok := ctx.DiscountDate()
	if !ok {
		discountDate = z.settlement.Apply(ctx.SpotDate())
	}
	if discountDate == z.paymentDate {
		return 1.0, nil
	}
	yc, err := ctx.YieldCurve(z.creditID, discountDate.Max(z.paymentDate))
	if err != nil {
		return 0, err
	}
	return yc.Df(z.paymentDate, discountDate)
}
