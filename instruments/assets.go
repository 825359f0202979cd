package instruments

import (
	"github.com/joseph-blackelite/riskengine/dates"
	"github.com/joseph-blackelite/riskengine/marketdata"
	"github.com/joseph-blackelite/riskengine/pricing"
)

// Currency represents a world currency. It always represents major units
// (dollars, pounds), never minor units (cents, pence).
type Currency struct {
	id         string
	settlement dates.DateRule
}

// NewCurrency constructs a currency, settling according to settlement.
func NewCurrency(id string, settlement dates.DateRule) *Currency {
	return &Currency{id: id, settlement: settlement}
}

func (c *Currency) ID() string                               { return c.id }
func (c *Currency) CreditID() string                         { return c.id }
func (c *Currency) Settlement() dates.DateRule                { return c.settlement }
func (c *Currency) VolTimeDynamics() pricing.TimeDynamics     { return marketdata.NoTimeDynamics{} }
func (c *Currency) VolForwardDynamics() pricing.ForwardDynamics { return marketdata.NoForwardDynamics{} }
func (c *Currency) PayoffCurrency() *Currency                 { return c }
func (c *Currency) String() string                            { return c.id }

// Dependencies implements Instrument. A currency is worth exactly one unit
// of itself, so it never needs its own spot quoted.
func (c *Currency) Dependencies(ctx pricing.DependencyContext) (pricing.SpotRequirement, error) {
	dependenceOnSpotDiscount(c, ctx)
	return pricing.SpotNotRequired, nil
}

// Price implements Priceable: a currency is worth one unit of itself,
// discounted to the context's discount date if one was requested.
func (c *Currency) Price(ctx pricing.Context) (float64, error) {
	return discountFromSpot(c, ctx)
}

// CreditEntity names a credit curve an instrument can be discounted
// against, distinct from the currency it settles in (e.g. a corporate
// issuer whose bonds trade at a spread to its funding currency). Like a
// currency, it is itself worth one unit of its payoff currency.
type CreditEntity struct {
	id         string
	currency   *Currency
	settlement dates.DateRule
}

// NewCreditEntity constructs a credit entity settling in currency.
func NewCreditEntity(id string, currency *Currency, settlement dates.DateRule) *CreditEntity {
	return &CreditEntity{id: id, currency: currency, settlement: settlement}
}

func (c *CreditEntity) ID() string                               { return c.id }
func (c *CreditEntity) CreditID() string                         { return c.id }
func (c *CreditEntity) Settlement() dates.DateRule                { return c.settlement }
func (c *CreditEntity) PayoffCurrency() *Currency                 { return c.currency }
func (c *CreditEntity) VolTimeDynamics() pricing.TimeDynamics     { return marketdata.NoTimeDynamics{} }
func (c *CreditEntity) VolForwardDynamics() pricing.ForwardDynamics { return marketdata.NoForwardDynamics{} }
func (c *CreditEntity) String() string                            { return c.id }

// Dependencies implements Instrument. A credit entity is worth exactly one
// unit of its payoff currency, so it never needs its own spot quoted.
func (c *CreditEntity) Dependencies(ctx pricing.DependencyContext) (pricing.SpotRequirement, error) {
	dependenceOnSpotDiscount(c, ctx)
	return pricing.SpotNotRequired, nil
}

// Price implements Priceable.
func (c *CreditEntity) Price(ctx pricing.Context) (float64, error) {
	return discountFromSpot(c, ctx)
}

// Equity represents an equity single name, index, fund or ETF.
type Equity struct {
	id         string
	creditID   string
	currency   *Currency
	settlement dates.DateRule
}

// NewEquity constructs an equity settling in currency, discounted against
// creditID's yield curve.
func NewEquity(id, creditID string, currency *Currency, settlement dates.DateRule) *Equity {
	return &Equity{id: id, creditID: creditID, currency: currency, settlement: settlement}
}

func (e *Equity) ID() string                               { return e.id }
func (e *Equity) CreditID() string                         { return e.creditID }
func (e *Equity) Settlement() dates.DateRule                { return e.settlement }
func (e *Equity) PayoffCurrency() *Currency                 { return e.currency }
func (e *Equity) VolTimeDynamics() pricing.TimeDynamics     { return marketdata.NoTimeDynamics{} }
func (e *Equity) VolForwardDynamics() pricing.ForwardDynamics { return marketdata.NoForwardDynamics{} }
func (e *Equity) String() string                            { return e.id }

// TimeToDayFraction converts a time-of-day observation into a fractional
// trading day, hard-coded per the convention: open and EDSP observations
// happen at the start of the day, close observations 80% of the way
// through it.
func (e *Equity) TimeToDayFraction(dt dates.DateTime) dates.DateDayFraction {
	var fraction float64
	switch dt.TimeOfDay() {
	case dates.Open, dates.EDSP:
		fraction = 0.0
	case dates.Close:
		fraction = 0.8
	}
	return dates.NewDateDayFraction(dt.Date(), fraction)
}

// Dependencies implements Instrument. An equity reads its own spot price.
func (e *Equity) Dependencies(ctx pricing.DependencyContext) (pricing.SpotRequirement, error) {
	dependenceOnSpotDiscount(e, ctx)
	return pricing.SpotRequired, nil
}

// Price implements Priceable: an equity is worth its screen price,
// discounted to the context's discount date if one was requested.
func (e *Equity) Price(ctx pricing.Context) (float64, error) {
	spot, err := ctx.Spot(e.id)
	if err != nil {
		return 0, err
	}
	df, err := discountFromSpot(e, ctx)
	if err != nil {
		return 0, err
	}
	return spot * df, nil
}
