// Package marketdata provides the concrete, uncached pricing.Context: a
// flat bag of spots, curves, dividend streams and vol surfaces keyed by id,
// together with the in-place bump/restore machinery every other market data
// implementation in this module is built on top of.
package marketdata

import (
	"fmt"

	"github.com/joseph-blackelite/riskengine/bump"
	"github.com/joseph-blackelite/riskengine/curve"
	"github.com/joseph-blackelite/riskengine/dates"
	"github.com/joseph-blackelite/riskengine/ledger"
	"github.com/joseph-blackelite/riskengine/pricing"
)

// MarketData is the base market data set for a valuation: one spot date,
// an optional discount date, and five id-keyed collections. All market
// data is identified by a single string; where real data is keyed by
// several fields (a yield curve by currency and credit entity, say) the
// convention is to combine them into one id before storing.
type MarketData struct {
	spotDate     dates.Date
	discountDate *dates.Date
	spots        map[string]float64
	yieldCurves  map[string]curve.RateCurve
	borrowCurves map[string]curve.RateCurve
	dividends    map[string]*DividendStream
	volSurfaces  map[string]*FlatVolSurface
}

// New builds a market data set. discountDate may be nil, in which case
// every instrument discounts to its own settlement date.
func New(
	spotDate dates.Date,
	discountDate *dates.Date,
	spots map[string]float64,
	yieldCurves map[string]curve.RateCurve,
	borrowCurves map[string]curve.RateCurve,
	dividends map[string]*DividendStream,
	volSurfaces map[string]*FlatVolSurface,
) *MarketData {
	return &MarketData{
		spotDate:     spotDate,
		discountDate: discountDate,
		spots:        spots,
		yieldCurves:  yieldCurves,
		borrowCurves: borrowCurves,
		dividends:    dividends,
		volSurfaces:  volSurfaces,
	}
}

func find[T any](id string, collection map[string]T, what string) (T, error) {
	v, ok := collection[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("marketdata: %s not found: %q", what, id)
	}
	return v, nil
}

// SpotDate implements pricing.Context.
func (m *MarketData) SpotDate() dates.Date { return m.spotDate }

// DiscountDate implements pricing.Context.
func (m *MarketData) DiscountDate() (dates.Date, bool) {
	if m.discountDate == nil {
		return 0, false
	}
	return *m.discountDate, true
}

// YieldCurve implements pricing.Context.
func (m *MarketData) YieldCurve(creditID string, highWaterMark dates.Date) (curve.RateCurve, error) {
	return find(creditID, m.yieldCurves, "yield curve")
}

// Spot implements pricing.Context.
func (m *MarketData) Spot(id string) (float64, error) {
	return find(id, m.spots, "spot")
}

// ForwardCurve implements pricing.Context. It assumes instrument is an
// equity-like asset with its own spot, dividends and borrow curve; an
// instrument with none of those (a currency, say) should never have its
// forward curve requested.
func (m *MarketData) ForwardCurve(instrument pricing.Instrument, highWaterMark dates.Date) (pricing.Forward, error) {
	id := instrument.ID()
	spot, err := find(id, m.spots, "spot")
	if err != nil {
		return nil, err
	}
	divs, err := find(id, m.dividends, "dividends")
	if err != nil {
		return nil, err
	}
	borrow, err := find(id, m.borrowCurves, "borrow curve")
	if err != nil {
		return nil, err
	}
	yieldCurve, err := find(instrument.CreditID(), m.yieldCurves, "yield curve for forward")
	if err != nil {
		return nil, err
	}
	return NewEquityForward(m.spotDate, spot, yieldCurve, borrow, divs, highWaterMark), nil
}

// VolSurface implements pricing.Context: it fetches the raw surface, then
// decorates it for time and forward dynamics as instrument requires.
func (m *MarketData) VolSurface(instrument pricing.Instrument, forward pricing.Forward, highWaterMark dates.Date) (pricing.VolSurface, error) {
	vol, err := find(instrument.ID(), m.volSurfaces, "vol surface")
	if err != nil {
		return nil, err
	}
	var decorated pricing.VolSurface = vol
	decorated, err = instrument.VolTimeDynamics().Modify(decorated, m.spotDate)
	if err != nil {
		return nil, err
	}
	decorated, err = instrument.VolForwardDynamics().Modify(decorated, forward)
	if err != nil {
		return nil, err
	}
	return decorated, nil
}

// Correlation implements pricing.Context; cross-instrument correlation is a
// Non-goal.
func (m *MarketData) Correlation(a, b pricing.Instrument) (float64, error) {
	return 0, pricing.ErrCorrelationUnsupported
}

// Context implements ledger.BumpablePricingContext, handing back the same
// instance as the pricing.Context half of the facade.
func (m *MarketData) Context() pricing.Context { return m }

// NewSaveable implements ledger.Bumpable.
func (m *MarketData) NewSaveable() ledger.Saveable { return newSavedData() }

func savedDataOf(save ledger.Saveable) (*SavedData, error) {
	s, ok := save.(*SavedData)
	if !ok {
		return nil, ledger.ErrWrongLedgerType
	}
	return s, nil
}

// applyBump mutates store[id] in place and records, the FIRST time id is
// touched in this save, the value it held before any bump landed. A second
// bump against the same save must never overwrite that first snapshot, or
// Restore would only undo the most recent bump instead of all of them.
func applyBump[T any](id string, apply func(T) T, store map[string]T, saved map[string]T) bool {
	old, ok := store[id]
	if !ok {
		return false
	}
	if _, already := saved[id]; !already {
		saved[id] = old
	}
	store[id] = apply(old)
	return true
}

// BumpSpot implements ledger.Bumpable.
func (m *MarketData) BumpSpot(id string, b bump.Spot, save ledger.Saveable) (bool, error) {
	saved, err := savedDataOf(save)
	if err != nil {
		return false, err
	}
	return applyBump(id, b.Apply, m.spots, saved.spots), nil
}

// BumpYield implements ledger.Bumpable.
func (m *MarketData) BumpYield(creditID string, b bump.Yield, save ledger.Saveable) (bool, error) {
	saved, err := savedDataOf(save)
	if err != nil {
		return false, err
	}
	return applyBump(creditID, b.Apply, m.yieldCurves, saved.yieldCurves), nil
}

// BumpBorrow implements ledger.Bumpable.
func (m *MarketData) BumpBorrow(id string, b bump.Yield, save ledger.Saveable) (bool, error) {
	saved, err := savedDataOf(save)
	if err != nil {
		return false, err
	}
	return applyBump(id, b.Apply, m.borrowCurves, saved.borrowCurves), nil
}

// BumpDivs implements ledger.Bumpable.
func (m *MarketData) BumpDivs(id string, b bump.Divs, save ledger.Saveable) (bool, error) {
	saved, err := savedDataOf(save)
	if err != nil {
		return false, err
	}
	apply := func(old *DividendStream) *DividendStream {
		return b.Apply(old).(*DividendStream)
	}
	return applyBump(id, apply, m.dividends, saved.dividends), nil
}

// BumpVol implements ledger.Bumpable.
func (m *MarketData) BumpVol(id string, b bump.Vol, save ledger.Saveable) (bool, error) {
	saved, err := savedDataOf(save)
	if err != nil {
		return false, err
	}
	apply := func(old *FlatVolSurface) *FlatVolSurface {
		return b.Apply(old).(*FlatVolSurface)
	}
	return applyBump(id, apply, m.volSurfaces, saved.volSurfaces), nil
}

// BumpDiscountDate implements ledger.Bumpable.
func (m *MarketData) BumpDiscountDate(replacement dates.Date, save ledger.Saveable) (bool, error) {
	saved, err := savedDataOf(save)
	if err != nil {
		return false, err
	}
	if !saved.replacedDiscountDate {
		saved.discountDate = m.discountDate
		saved.replacedDiscountDate = true
	}
	changed := m.discountDate == nil || *m.discountDate != replacement
	m.discountDate = &replacement
	return changed, nil
}

// ForwardIDByCreditID implements ledger.Bumpable. Bare market data has no
// dependency index; the prefetch cache layers one on top.
func (m *MarketData) ForwardIDByCreditID(creditID string) ([]string, error) {
	return nil, ledger.ErrNoDependencyIndex
}

// Restore implements ledger.Bumpable.
func (m *MarketData) Restore(save ledger.Saveable) error {
	saved, err := savedDataOf(save)
	if err != nil {
		return err
	}
	if saved.replacedDiscountDate {
		m.discountDate = saved.discountDate
	}
	copyInto(m.spots, saved.spots)
	copyInto(m.yieldCurves, saved.yieldCurves)
	copyInto(m.borrowCurves, saved.borrowCurves)
	copyInto(m.dividends, saved.dividends)
	copyInto(m.volSurfaces, saved.volSurfaces)
	return nil
}

func copyInto[T any](to, from map[string]T) {
	for k, v := range from {
		to[k] = v
	}
}
