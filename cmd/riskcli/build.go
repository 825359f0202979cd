package main

import (
	"fmt"

	"github.com/joseph-blackelite/riskengine/bump"
	"github.com/joseph-blackelite/riskengine/config"
	"github.com/joseph-blackelite/riskengine/curve"
	"github.com/joseph-blackelite/riskengine/dates"
	"github.com/joseph-blackelite/riskengine/instruments"
	"github.com/joseph-blackelite/riskengine/ledger"
	"github.com/joseph-blackelite/riskengine/marketdata"
	"github.com/joseph-blackelite/riskengine/selfpricer"
)

type built struct {
	marketData *marketdata.MarketData
	components []selfpricer.Component
}

func curvePoints(points []config.CurvePoint, base dates.Date) []curve.Point {
	out := make([]curve.Point, len(points))
	for i, p := range points {
		out[i] = curve.Point{Date: base.Add(p.Days), Rate: p.Rate}
	}
	return out
}

// build turns a scenario description into market data plus a weighted
// component list, wiring every equity's own spot/vol/borrow/div entries and
// every curve keyed by the id it names.
func build(scenario *config.Scenario) (*built, error) {
	spotDate, err := dates.Parse(scenario.SpotDate)
	if err != nil {
		return nil, fmt.Errorf("spot_date: %w", err)
	}
	var discountDate *dates.Date
	if scenario.DiscountDate != "" {
		d, err := dates.Parse(scenario.DiscountDate)
		if err != nil {
			return nil, fmt.Errorf("discount_date: %w", err)
		}
		discountDate = &d
	}

	calendar := dates.NewWeekdayCalendar()
	currencySettle := dates.NewBusinessDays(calendar, scenario.CurrencySettle)
	currency := instruments.NewCurrency(scenario.CurrencyID, currencySettle)

	spots := make(map[string]float64)
	yieldCurves := make(map[string]ledger.RateCurve)
	borrowCurves := make(map[string]ledger.RateCurve)
	divs := make(map[string]*marketdata.DividendStream)
	vols := make(map[string]*marketdata.FlatVolSurface)

	for _, c := range scenario.Curves {
		base, err := dates.Parse(c.Base)
		if err != nil {
			return nil, fmt.Errorf("curve %s: base: %w", c.ID, err)
		}
		flat, err := curve.NewAct365Flat(base, curvePoints(c.Points, base))
		if err != nil {
			return nil, fmt.Errorf("curve %s: %w", c.ID, err)
		}
		yieldCurves[c.ID] = flat
		borrowCurves[c.ID] = flat
	}

	equities := make(map[string]*instruments.Equity)
	var components []selfpricer.Component

	for _, e := range scenario.Equities {
		settle := dates.NewBusinessDays(calendar, e.SettleDays)
		equity := instruments.NewEquity(e.ID, e.CreditID, currency, settle)
		equities[e.ID] = equity
		spots[e.ID] = e.Spot
		vols[e.ID] = marketdata.NewFlatVolSurface(spotDate, e.Vol)

		var cashDivs []marketdata.CashDividend
		for _, d := range e.Dividends {
			payDate, err := dates.Parse(d.PayDate)
			if err != nil {
				return nil, fmt.Errorf("equity %s: dividend: %w", e.ID, err)
			}
			cashDivs = append(cashDivs, marketdata.CashDividend{
				Date: payDate, Cash: d.Cash, Relative: d.Relative, IsRelative: d.IsRelative,
			})
		}
		divs[e.ID] = marketdata.NewDividendStream(cashDivs)

		if e.BorrowCurve != "" {
			if bc, ok := borrowCurves[e.BorrowCurve]; ok {
				borrowCurves[e.ID] = bc
			}
		}

		components = append(components, selfpricer.Component{Weight: 1, Instrument: equity})
	}

	for _, o := range scenario.Options {
		equity, ok := equities[o.Underlying]
		if !ok {
			return nil, fmt.Errorf("option %s: unknown underlying %q", o.ID, o.Underlying)
		}
		expiry, err := dates.Parse(o.Expiry)
		if err != nil {
			return nil, fmt.Errorf("option %s: expiry: %w", o.ID, err)
		}
		putCall := instruments.Call
		if o.PutCall == "put" {
			putCall = instruments.Put
		}
		settle := dates.NewBusinessDays(calendar, o.SettleDays)
		option := instruments.NewSpotStartingEuropean(o.ID, o.CreditID, currency, equity, putCall, o.Strike, expiry, settle)
		components = append(components, selfpricer.Component{Weight: 1, Instrument: option})
	}

	marketData := marketdata.New(spotDate, discountDate, spots, yieldCurves, borrowCurves, divs, vols)
	return &built{marketData: marketData, components: components}, nil
}

func dispatchBump(pricer *selfpricer.Pricer, b config.Bump, save ledger.Saveable) (bool, error) {
	switch b.Kind {
	case "spot":
		return pricer.BumpSpot(b.TargetID, bump.Spot{Size: b.Size, Relative: b.Relative}, save)
	case "yield":
		return pricer.BumpYield(b.TargetID, bump.Yield{Size: b.Size}, save)
	case "borrow":
		return pricer.BumpBorrow(b.TargetID, bump.Yield{Size: b.Size}, save)
	case "divs":
		return pricer.BumpDivs(b.TargetID, bump.Divs{Size: b.Size}, save)
	case "vol":
		return pricer.BumpVol(b.TargetID, bump.Vol{Size: b.Size}, save)
	default:
		return false, fmt.Errorf("unknown bump kind %q", b.Kind)
	}
}
