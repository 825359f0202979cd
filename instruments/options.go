package instruments

import (
	"github.com/joseph-blackelite/riskengine/dates"
	"github.com/joseph-blackelite/riskengine/marketdata"
	"github.com/joseph-blackelite/riskengine/pricing"
)

// SpotStartingEuropean is a European option on an equity, struck and
// expiring at fixed dates known at trade time (as opposed to a
// forward-starting option, which is out of scope). It is the one composite
// instrument in this module: pricing and declaring its dependencies both
// route through its underlying equity's forward and vol surface.
type SpotStartingEuropean struct {
	id         string
	creditID   string
	currency   *Currency
	underlying *Equity
	putCall    PutCall
	strike     float64
	expiry     dates.Date
	settlement dates.DateRule
}

// NewSpotStartingEuropean constructs a European option on underlying,
// discounted against its own creditID (typically a clearing house or
// dealer credit, distinct from the underlying's).
func NewSpotStartingEuropean(id, creditID string, currency *Currency, underlying *Equity, putCall PutCall, strike float64, expiry dates.Date, settlement dates.DateRule) *SpotStartingEuropean {
	return &SpotStartingEuropean{
		id:         id,
		creditID:   creditID,
		currency:   currency,
		underlying: underlying,
		putCall:    putCall,
		strike:     strike,
		expiry:     expiry,
		settlement: settlement,
	}
}

func (o *SpotStartingEuropean) ID() string                               { return o.id }
func (o *SpotStartingEuropean) CreditID() string                         { return o.creditID }
func (o *SpotStartingEuropean) Settlement() dates.DateRule                { return o.settlement }
func (o *SpotStartingEuropean) PayoffCurrency() *Currency                 { return o.currency }
func (o *SpotStartingEuropean) VolTimeDynamics() pricing.TimeDynamics     { return marketdata.NoTimeDynamics{} }
func (o *SpotStartingEuropean) VolForwardDynamics() pricing.ForwardDynamics { return marketdata.NoForwardDynamics{} }
func (o *SpotStartingEuropean) String() string                            { return o.id }

// paymentDate is when the option's cash settlement is paid: its settlement
// rule applied to its own expiry, not to the pricing context's spot date.
func (o *SpotStartingEuropean) paymentDate() dates.Date {
	return o.settlement.Apply(o.expiry)
}

// Dependencies implements Instrument: it declares a yield curve for its own
// discounting, and recursively pulls in its underlying's forward and vol
// requirements out to expiry.
func (o *SpotStartingEuropean) Dependencies(ctx pricing.DependencyContext) (pricing.SpotRequirement, error) {
	ctx.YieldCurve(o.creditID, o.paymentDate())
	ctx.ExtendForward(o.underlying, o.expiry)
	ctx.Vol(o.underlying, o.expiry)
	return pricing.SpotNotRequired, nil
}

// Price implements Priceable: Black-76 on the underlying's forward to
// expiry, discounted from the option's own payment date.
func (o *SpotStartingEuropean) Price(ctx pricing.Context) (float64, error) {
	forward, err := ctx.ForwardCurve(o.underlying, o.expiry)
	if err != nil {
		return 0, err
	}
	fwd, err := forward.Value(o.expiry)
	if err != nil {
		return 0, err
	}
	volSurface, err := ctx.VolSurface(o.underlying, forward, o.expiry)
	if err != nil {
		return 0, err
	}
	vol, err := volSurface.Vol(o.strike, o.expiry)
	if err != nil {
		return 0, err
	}

	t := float64(dates.DaysBetween(ctx.SpotDate(), o.expiry)) / 365.0

	pay := o.paymentDate()
	discountDate, ok := ctx.DiscountDate()
	if !ok {
		discountDate = pay
	}
	df := 1.0
	if discountDate != pay {
		yc, err := ctx.YieldCurve(o.creditID, discountDate.Max(pay))
		if err != nil {
			return 0, err
		}
		df, err = yc.Df(pay, discountDate)
		if err != nil {
			return 0, err
		}
	}

	return blackScholes(o.putCall, fwd, o.strike, vol, t, df)
}
