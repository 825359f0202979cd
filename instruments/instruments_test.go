package instruments_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-blackelite/riskengine/curve"
	"github.com/joseph-blackelite/riskengine/dates"
	"github.com/joseph-blackelite/riskengine/instruments"
	"github.com/joseph-blackelite/riskengine/ledger"
	"github.com/joseph-blackelite/riskengine/marketdata"
)

func sampleRateCurve(t *testing.T) *curve.Act365Flat {
	t.Helper()
	base := dates.FromYMD(2018, time.May, 30)
	points := []curve.Point{
		{Date: base.Add(0), Rate: 0.05},
		{Date: base.Add(14), Rate: 0.08},
		{Date: base.Add(56), Rate: 0.09},
		{Date: base.Add(112), Rate: 0.085},
		{Date: base.Add(224), Rate: 0.082},
	}
	c, err := curve.NewAct365Flat(base, points)
	require.NoError(t, err)
	return c
}

func weekdaySettlement(step int) dates.DateRule {
	return dates.NewBusinessDays(dates.NewWeekdayCalendar(), step)
}

// Setup A: unit currency priced when discount date equals its own
// settlement-applied spot date.
func TestCurrencyPriceAtSettlementIsOne(t *testing.T) {
	spotDate := dates.FromYMD(2018, time.June, 1)
	discountDate := dates.FromYMD(2018, time.June, 5) // T+2 business days
	gbp := instruments.NewCurrency("GBP", weekdaySettlement(2))

	md := marketdata.New(spotDate, &discountDate,
		map[string]float64{},
		map[string]ledger.RateCurve{"GBP": sampleRateCurve(t)},
		map[string]ledger.RateCurve{},
		map[string]*marketdata.DividendStream{},
		map[string]*marketdata.FlatVolSurface{},
	)

	price, err := gbp.Price(md)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, price, 1e-12)
}

// Setup B: unit currency priced with a settlement/discount-date mismatch.
func TestCurrencyPriceWithSettlementMismatch(t *testing.T) {
	spotDate := dates.FromYMD(2018, time.June, 1)
	discountDate := dates.FromYMD(2018, time.June, 5)
	gbp := instruments.NewCurrency("GBP", weekdaySettlement(3))

	md := marketdata.New(spotDate, &discountDate,
		map[string]float64{},
		map[string]ledger.RateCurve{"GBP": sampleRateCurve(t)},
		map[string]ledger.RateCurve{},
		map[string]*marketdata.DividendStream{},
		map[string]*marketdata.FlatVolSurface{},
	)

	price, err := gbp.Price(md)
	require.NoError(t, err)
	assert.InDelta(t, 0.9997867155076675, price, 1e-12)
}

// Setup C/D: an equity's price equals spot when settlement matches the
// discount date, and is discounted by the same factor as the currency case
// when it does not.
func TestEquityPriceReflectsSpotAndDiscountMismatch(t *testing.T) {
	spotDate := dates.FromYMD(2018, time.June, 1)
	discountDate := dates.FromYMD(2018, time.June, 5)
	gbp := instruments.NewCurrency("GBP", weekdaySettlement(2))

	spots := map[string]float64{"BP.L": 123.4}
	curves := map[string]ledger.RateCurve{"LSE": sampleRateCurve(t)}
	borrow := map[string]ledger.RateCurve{}
	divs := map[string]*marketdata.DividendStream{}
	vols := map[string]*marketdata.FlatVolSurface{}

	matching := instruments.NewEquity("BP.L", "LSE", gbp, weekdaySettlement(2))
	mdMatching := marketdata.New(spotDate, &discountDate, spots, curves, borrow, divs, vols)
	price, err := matching.Price(mdMatching)
	require.NoError(t, err)
	assert.InDelta(t, 123.4, price, 1e-12)

	mismatched := instruments.NewEquity("BP.L", "LSE", gbp, weekdaySettlement(3))
	mdMismatched := marketdata.New(spotDate, &discountDate, spots, curves, borrow, divs, vols)
	price, err = mismatched.Price(mdMismatched)
	require.NoError(t, err)
	assert.InDelta(t, 123.4*0.9997867155076675, price, 1e-12)
}

// Setup E: a zero coupon is identical whether an explicit discount date or
// the settlement-implied one is used, as long as both resolve the same way
// relative to the payment date.
func TestZeroCouponPriceMatchesWithAndWithoutExplicitDiscountDate(t *testing.T) {
	spotDate := dates.FromYMD(2018, time.June, 1)
	discountDate := dates.FromYMD(2018, time.June, 5)
	paymentDate := dates.FromYMD(2018, time.July, 5)
	gbp := instruments.NewCurrency("GBP", weekdaySettlement(2))

	curves := map[string]ledger.RateCurve{"OPT": sampleRateCurve(t)}

	zero := instruments.NewZeroCoupon("GBP.2018-07-05", "OPT", gbp, paymentDate, weekdaySettlement(2))

	mdExplicit := marketdata.New(spotDate, &discountDate,
		map[string]float64{}, curves, map[string]ledger.RateCurve{},
		map[string]*marketdata.DividendStream{}, map[string]*marketdata.FlatVolSurface{})
	price, err := zero.Price(mdExplicit)
	require.NoError(t, err)
	assert.InDelta(t, 0.9926533426860358, price, 1e-12)

	mdImplicit := marketdata.New(spotDate, nil,
		map[string]float64{}, curves, map[string]ledger.RateCurve{},
		map[string]*marketdata.DividendStream{}, map[string]*marketdata.FlatVolSurface{})
	price, err = zero.Price(mdImplicit)
	require.NoError(t, err)
	assert.InDelta(t, 0.9926533426860358, price, 1e-12)
}

// Setup E (payment == discount): identity case.
func TestZeroCouponIdentityAtPaymentDate(t *testing.T) {
	spotDate := dates.FromYMD(2018, time.June, 1)
	paymentDate := dates.FromYMD(2018, time.June, 5)
	gbp := instruments.NewCurrency("GBP", weekdaySettlement(2))
	zero := instruments.NewZeroCoupon("Z", "OPT", gbp, paymentDate, weekdaySettlement(2))

	md := marketdata.New(spotDate, &paymentDate,
		map[string]float64{}, map[string]ledger.RateCurve{"OPT": sampleRateCurve(t)},
		map[string]ledger.RateCurve{}, map[string]*marketdata.DividendStream{}, map[string]*marketdata.FlatVolSurface{})

	price, err := zero.Price(md)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, price, 1e-12)
}
