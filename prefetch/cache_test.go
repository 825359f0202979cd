package prefetch_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-blackelite/riskengine/bump"
	"github.com/joseph-blackelite/riskengine/curve"
	"github.com/joseph-blackelite/riskengine/dates"
	"github.com/joseph-blackelite/riskengine/instruments"
	"github.com/joseph-blackelite/riskengine/marketdata"
	"github.com/joseph-blackelite/riskengine/pricing"
	"github.com/joseph-blackelite/riskengine/prefetch"
)

func flatCurve(t *testing.T, rate float64) *curve.Act365Flat {
	t.Helper()
	base := dates.FromYMD(2018, time.June, 1)
	c, err := curve.NewAct365Flat(base, []curve.Point{{Date: base, Rate: rate}})
	require.NoError(t, err)
	return c
}

func newTestBook(t *testing.T) (*marketdata.MarketData, *instruments.Equity, *pricing.Collector) {
	t.Helper()
	spotDate := dates.FromYMD(2018, time.June, 1)
	gbp := instruments.NewCurrency("GBP", dates.NewBusinessDays(dates.NewWeekdayCalendar(), 2))
	equity := instruments.NewEquity("BP.L", "LSE", gbp, dates.NewBusinessDays(dates.NewWeekdayCalendar(), 2))

	md := marketdata.New(spotDate, nil,
		map[string]float64{"BP.L": 100.0},
		map[string]curve.RateCurve{"LSE": flatCurve(t, 0.05)},
		map[string]curve.RateCurve{"BP.L": flatCurve(t, 0.01)},
		map[string]*marketdata.DividendStream{"BP.L": marketdata.NewDividendStream(nil)},
		map[string]*marketdata.FlatVolSurface{"BP.L": marketdata.NewFlatVolSurface(spotDate, 0.3)},
	)

	collector := pricing.NewCollector(spotDate)
	_, err := equity.Dependencies(collector)
	require.NoError(t, err)
	collector.Spot(equity)

	return md, equity, collector
}

func TestCacheServesPrefetchedForward(t *testing.T) {
	md, equity, collector := newTestBook(t)
	cache, err := prefetch.New(md, collector, nil)
	require.NoError(t, err)

	fwd, err := cache.ForwardCurve(equity, dates.FromYMD(2018, time.July, 1))
	require.NoError(t, err)
	value, err := fwd.Value(dates.FromYMD(2018, time.July, 1))
	require.NoError(t, err)
	assert.Greater(t, value, 0.0)
}

func TestCacheForwardCurveReportsMissingDependency(t *testing.T) {
	spotDate := dates.FromYMD(2018, time.June, 1)
	gbp := instruments.NewCurrency("GBP", dates.NewBusinessDays(dates.NewWeekdayCalendar(), 2))
	equity := instruments.NewEquity("BP.L", "LSE", gbp, dates.NewBusinessDays(dates.NewWeekdayCalendar(), 2))

	md := marketdata.New(spotDate, nil,
		map[string]float64{"BP.L": 100.0},
		map[string]curve.RateCurve{"LSE": flatCurve(t, 0.05)},
		map[string]curve.RateCurve{"BP.L": flatCurve(t, 0.01)},
		map[string]*marketdata.DividendStream{"BP.L": marketdata.NewDividendStream(nil)},
		map[string]*marketdata.FlatVolSurface{"BP.L": marketdata.NewFlatVolSurface(spotDate, 0.3)},
	)

	emptyCollector := pricing.NewCollector(spotDate)
	cache, err := prefetch.New(md, emptyCollector, nil)
	require.NoError(t, err)

	_, err = cache.ForwardCurve(equity, spotDate.Add(30))
	assert.Error(t, err)
}

func TestCacheBumpSpotRefetchesForwardAndRestoreUndoesIt(t *testing.T) {
	md, equity, collector := newTestBook(t)
	cache, err := prefetch.New(md, collector, nil)
	require.NoError(t, err)

	payDate := dates.FromYMD(2018, time.July, 1)
	before, err := cache.ForwardCurve(equity, payDate)
	require.NoError(t, err)
	beforeValue, err := before.Value(payDate)
	require.NoError(t, err)

	save := cache.NewSaveable()
	changed, err := cache.BumpSpot("BP.L", bump.Spot{Size: 0.1, Relative: true}, save)
	require.NoError(t, err)
	assert.True(t, changed)

	after, err := cache.ForwardCurve(equity, payDate)
	require.NoError(t, err)
	afterValue, err := after.Value(payDate)
	require.NoError(t, err)
	assert.Greater(t, afterValue, beforeValue)

	require.NoError(t, cache.Restore(save))
	restored, err := cache.ForwardCurve(equity, payDate)
	require.NoError(t, err)
	restoredValue, err := restored.Value(payDate)
	require.NoError(t, err)
	assert.InDelta(t, beforeValue, restoredValue, 1e-9)
}

func TestCacheBumpYieldRefetchesEveryInstrumentOnThatCredit(t *testing.T) {
	md, equity, collector := newTestBook(t)
	cache, err := prefetch.New(md, collector, nil)
	require.NoError(t, err)

	payDate := dates.FromYMD(2018, time.July, 1)
	before, err := cache.ForwardCurve(equity, payDate)
	require.NoError(t, err)
	beforeValue, err := before.Value(payDate)
	require.NoError(t, err)

	save := cache.NewSaveable()
	changed, err := cache.BumpYield("LSE", bump.Yield{Size: 0.01}, save)
	require.NoError(t, err)
	assert.True(t, changed)

	after, err := cache.ForwardCurve(equity, payDate)
	require.NoError(t, err)
	afterValue, err := after.Value(payDate)
	require.NoError(t, err)
	assert.NotEqual(t, beforeValue, afterValue)

	require.NoError(t, cache.Restore(save))
}
