package selfpricer_test

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-blackelite/riskengine/bump"
	"github.com/joseph-blackelite/riskengine/curve"
	"github.com/joseph-blackelite/riskengine/dates"
	"github.com/joseph-blackelite/riskengine/instruments"
	"github.com/joseph-blackelite/riskengine/marketdata"
	"github.com/joseph-blackelite/riskengine/selfpricer"
)

func flatCurve(t *testing.T, rate float64) *curve.Act365Flat {
	t.Helper()
	base := dates.FromYMD(2018, time.June, 1)
	c, err := curve.NewAct365Flat(base, []curve.Point{{Date: base, Rate: rate}})
	require.NoError(t, err)
	return c
}

// buildBook returns a one-underlying, one-option book: long the option,
// short the underlying (a textbook delta-hedged position), wired through a
// realistic set of curves, dividends and a flat vol surface.
func buildBook(t *testing.T, spot, vol float64) (*marketdata.MarketData, []selfpricer.Component, *instruments.Equity, *instruments.SpotStartingEuropean) {
	t.Helper()
	spotDate := dates.FromYMD(2018, time.June, 1)
	expiry := dates.FromYMD(2018, time.December, 1)
	settle2 := dates.NewBusinessDays(dates.NewWeekdayCalendar(), 2)

	gbp := instruments.NewCurrency("GBP", settle2)
	equity := instruments.NewEquity("BP.L", "LSE", gbp, settle2)
	option := instruments.NewSpotStartingEuropean("BP.L-C100-DEC18", "OPT", gbp, equity, instruments.Call, 100.0, expiry, settle2)

	divs := marketdata.NewDividendStream([]marketdata.CashDividend{
		{Date: dates.FromYMD(2018, time.September, 1), Cash: 2.0},
	})

	md := marketdata.New(spotDate, nil,
		map[string]float64{"BP.L": spot},
		map[string]curve.RateCurve{"LSE": flatCurve(t, 0.05), "OPT": flatCurve(t, 0.05)},
		map[string]curve.RateCurve{"BP.L": flatCurve(t, 0.01)},
		map[string]*marketdata.DividendStream{"BP.L": divs},
		map[string]*marketdata.FlatVolSurface{"BP.L": marketdata.NewFlatVolSurface(spotDate, vol)},
	)

	components := []selfpricer.Component{
		{Weight: 1.0, Instrument: option},
		{Weight: -1.0, Instrument: equity},
	}
	return md, components, equity, option
}

func TestPricerPricesWeightedSumOfComponents(t *testing.T) {
	md, components, _, _ := buildBook(t, 100.0, 0.3)
	pricer, err := selfpricer.New(components, md, nil, nil)
	require.NoError(t, err)

	price, err := pricer.Price()
	require.NoError(t, err)
	assert.NotEqual(t, 0.0, price)
}

// A spot bump must move the book's price; restoring must recover the exact
// original price bit for bit.
func TestPricerSpotBumpChangesPriceThenRestoreRecoversIt(t *testing.T) {
	md, components, _, _ := buildBook(t, 100.0, 0.3)
	pricer, err := selfpricer.New(components, md, nil, nil)
	require.NoError(t, err)

	base, err := pricer.Price()
	require.NoError(t, err)

	save := pricer.NewSaveable()
	changed, err := pricer.BumpSpot("BP.L", bump.Spot{Size: 0.01, Relative: true}, save)
	require.NoError(t, err)
	assert.True(t, changed)

	bumped, err := pricer.Price()
	require.NoError(t, err)
	assert.NotEqual(t, base, bumped)

	require.NoError(t, pricer.Restore(save))
	restored, err := pricer.Price()
	require.NoError(t, err)
	assert.Equal(t, base, restored)
}

// Raising volatility must raise the value of a long call position.
func TestPricerVolBumpIncreasesLongCallValue(t *testing.T) {
	md, components, _, option := buildBook(t, 100.0, 0.3)
	pricer, err := selfpricer.New(components, md, nil, nil)
	require.NoError(t, err)

	optionOnly := []selfpricer.Component{{Weight: 1.0, Instrument: option}}
	optionPricer, err := selfpricer.New(optionOnly, md, nil, nil)
	require.NoError(t, err)

	base, err := optionPricer.Price()
	require.NoError(t, err)

	save := optionPricer.NewSaveable()
	changed, err := optionPricer.BumpVol("BP.L", bump.Vol{Size: 0.01}, save)
	require.NoError(t, err)
	assert.True(t, changed)

	bumped, err := optionPricer.Price()
	require.NoError(t, err)
	assert.Greater(t, bumped, base)

	require.NoError(t, optionPricer.Restore(save))

	_ = pricer
}

// A yield-curve bump on the option's own discounting credit id must not
// silently no-op: it has to be reported as a change even though it does not
// touch the underlying's forward.
func TestPricerDiscountCreditYieldBumpReportsChange(t *testing.T) {
	md, _, _, option := buildBook(t, 100.0, 0.3)
	components := []selfpricer.Component{{Weight: 1.0, Instrument: option}}
	pricer, err := selfpricer.New(components, md, nil, nil)
	require.NoError(t, err)

	save := pricer.NewSaveable()
	changed, err := pricer.BumpYield("OPT", bump.Yield{Size: 0.01}, save)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestPricerBumpTimeIsUnsupported(t *testing.T) {
	md, components, _, _ := buildBook(t, 100.0, 0.3)
	pricer, err := selfpricer.New(components, md, nil, nil)
	require.NoError(t, err)

	save := pricer.NewSaveable()
	_, err = pricer.BumpTime(dates.FromYMD(2018, time.July, 1), save)
	assert.Error(t, err)
}

func TestNewRejectsEmptyComponentList(t *testing.T) {
	md, _, _, _ := buildBook(t, 100.0, 0.3)
	_, err := selfpricer.New(nil, md, nil, nil)
	assert.Error(t, err)
}

// A real, registered Metrics must actually observe prices and bumps: this
// is the one place the prometheus collectors are exercised end to end
// instead of passed as nil.
func TestPricerWithRealMetricsCountsPricesBumpsAndRefetchDuration(t *testing.T) {
	md, components, _, _ := buildBook(t, 100.0, 0.3)
	registry := prometheus.NewRegistry()
	metrics := selfpricer.NewMetrics(registry)

	pricer, err := selfpricer.New(components, md, metrics, nil)
	require.NoError(t, err)

	_, err = pricer.Price()
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Prices))

	save := pricer.NewSaveable()
	changed, err := pricer.BumpSpot("BP.L", bump.Spot{Size: 0.01, Relative: true}, save)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Bumps.WithLabelValues("spot")))

	h, ok := metrics.RefetchDuration.WithLabelValues("spot").(prometheus.Histogram)
	require.True(t, ok)
	var sample dto.Metric
	require.NoError(t, h.Write(&sample))
	assert.Equal(t, uint64(1), sample.GetHistogram().GetSampleCount())

	require.NoError(t, pricer.Restore(save))
}
