// Package prefetch wraps marketdata.MarketData in a cache that prefetches
// every forward curve and vol surface a book of instruments declared a
// dependency on, then serves pricing.Context reads for those two kinds of
// data straight out of the cache instead of rebuilding them on every price
// call. A bump that invalidates a forward or vol triggers a deterministic
// refetch of exactly the entries it affects; nothing here is a
// lazily-populated cache in the usual sense.
package prefetch

import (
	"fmt"
	"log/slog"

	"github.com/joseph-blackelite/riskengine/bump"
	"github.com/joseph-blackelite/riskengine/dates"
	"github.com/joseph-blackelite/riskengine/ledger"
	"github.com/joseph-blackelite/riskengine/marketdata"
	"github.com/joseph-blackelite/riskengine/pricing"
)

// Cache is a pricing.Context and ledger.Bumpable that prefetches forwards
// and vol surfaces ahead of pricing, and refetches exactly the affected
// entries after a bump.
type Cache struct {
	context      *marketdata.MarketData
	dependencies *pricing.Collector
	forwards     map[string]pricing.Forward
	vols         map[string]pricing.VolSurface
	logger       *slog.Logger
}

// New builds a prefetch cache over context using dependencies, walking
// every declared forward and vol dependency up front. logger is optional;
// a nil logger defaults to slog.Default().
func New(context *marketdata.MarketData, dependencies *pricing.Collector, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Cache{
		context:      context,
		dependencies: dependencies,
		forwards:     make(map[string]pricing.Forward),
		vols:         make(map[string]pricing.VolSurface),
		logger:       logger,
	}
	if err := c.walkDependencies(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Cache) walkDependencies() error {
	for id, dep := range c.dependencies.ForwardDependencies() {
		c.logger.Debug("prefetch: walking dependency", "id", id, "forward_hwm", dep.HWM)
		forward, err := c.context.ForwardCurve(dep.Instrument, dep.HWM)
		if err != nil {
			return err
		}
		if volHWM, ok := c.dependencies.VolHighWaterMark(id); ok {
			vol, err := c.context.VolSurface(dep.Instrument, forward, volHWM)
			if err != nil {
				return err
			}
			c.vols[id] = vol
		}
		c.forwards[id] = forward
	}
	return nil
}

func findCached[T any](id string, collection map[string]T, what string) (T, error) {
	v, ok := collection[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("prefetch: %s not found (incorrect dependencies?): %q", what, id)
	}
	return v, nil
}

// SpotDate implements pricing.Context; there is no benefit to caching it.
func (c *Cache) SpotDate() dates.Date { return c.context.SpotDate() }

// DiscountDate implements pricing.Context; there is no benefit to caching it.
func (c *Cache) DiscountDate() (dates.Date, bool) { return c.context.DiscountDate() }

// YieldCurve implements pricing.Context. Yield curves are not prefetched:
// there is no work involved in fetching one from the underlying market
// data, so caching it would only add complexity.
func (c *Cache) YieldCurve(creditID string, highWaterMark dates.Date) (ledger.RateCurve, error) {
	return c.context.YieldCurve(creditID, highWaterMark)
}

// Spot implements pricing.Context; there is no benefit to caching it.
func (c *Cache) Spot(id string) (float64, error) { return c.context.Spot(id) }

// ForwardCurve implements pricing.Context by serving the prefetched entry.
func (c *Cache) ForwardCurve(instrument pricing.Instrument, highWaterMark dates.Date) (pricing.Forward, error) {
	return findCached(instrument.ID(), c.forwards, "forward")
}

// VolSurface implements pricing.Context by serving the prefetched entry.
func (c *Cache) VolSurface(instrument pricing.Instrument, forward pricing.Forward, highWaterMark dates.Date) (pricing.VolSurface, error) {
	return findCached(instrument.ID(), c.vols, "vol surface")
}

// Correlation implements pricing.Context.
func (c *Cache) Correlation(a, b pricing.Instrument) (float64, error) {
	return c.context.Correlation(a, b)
}

// refetch rebuilds the cached forward and/or vol surface for id after a
// bump that is known to affect it, saving the pre-bump entries into saved
// first. It is a no-op, reporting no change, if neither flag is set.
func (c *Cache) refetch(id string, bumpedForward, bumpedVol bool, saved *SavedPrefetch) (bool, error) {
	if !bumpedForward && !bumpedVol {
		return false, nil
	}
	fwd, ok := c.forwards[id]
	if !ok {
		return false, fmt.Errorf("prefetch: cannot find prefetched forward for %q", id)
	}
	instrument, ok := c.dependencies.Instrument(id)
	if !ok {
		return false, fmt.Errorf("prefetch: cannot find instrument %q", id)
	}

	if bumpedForward {
		if _, already := saved.forwards[id]; !already {
			saved.forwards[id] = fwd
		}
		hwm, ok := c.dependencies.ForwardHighWaterMark(id)
		if !ok {
			return false, fmt.Errorf("prefetch: cannot find forward high water mark for %q", id)
		}
		refetched, err := c.context.ForwardCurve(instrument, hwm)
		if err != nil {
			return false, err
		}
		fwd = refetched
		c.forwards[id] = fwd
	}

	if bumpedVol {
		if vol, ok := c.vols[id]; ok {
			if _, already := saved.vols[id]; !already {
				saved.vols[id] = vol
			}
			volHWM, ok := c.dependencies.VolHighWaterMark(id)
			if !ok {
				return false, fmt.Errorf("prefetch: cannot find vol high water mark for %q", id)
			}
			refetched, err := c.context.VolSurface(instrument, fwd, volHWM)
			if err != nil {
				return false, err
			}
			c.vols[id] = refetched
		}
	}

	return true, nil
}

func savedPrefetchOf(save ledger.Saveable) (*SavedPrefetch, error) {
	s, ok := save.(*SavedPrefetch)
	if !ok {
		return nil, ledger.ErrWrongLedgerType
	}
	return s, nil
}

// Context implements ledger.BumpablePricingContext.
func (c *Cache) Context() pricing.Context { return c }

// NewSaveable implements ledger.Bumpable.
func (c *Cache) NewSaveable() ledger.Saveable {
	return &SavedPrefetch{
		marketData: c.context.NewSaveable(),
		forwards:   make(map[string]pricing.Forward),
		vols:       make(map[string]pricing.VolSurface),
	}
}

// BumpSpot implements ledger.Bumpable.
func (c *Cache) BumpSpot(id string, b bump.Spot, save ledger.Saveable) (bool, error) {
	saved, err := savedPrefetchOf(save)
	if err != nil {
		return false, err
	}
	bumped, err := c.context.BumpSpot(id, b, saved.marketData)
	if err != nil {
		return false, err
	}
	if !bumped {
		c.logger.Warn("prefetch: bump spot against missing slot", "id", id)
		return false, nil
	}
	return c.refetch(id, bumped, false, saved)
}

// BumpYield implements ledger.Bumpable. A yield-curve bump affects the
// forward of every instrument discounted against creditID.
func (c *Cache) BumpYield(creditID string, b bump.Yield, save ledger.Saveable) (bool, error) {
	saved, err := savedPrefetchOf(save)
	if err != nil {
		return false, err
	}
	bumped, err := c.context.BumpYield(creditID, b, saved.marketData)
	if err != nil {
		return false, err
	}
	if !bumped {
		c.logger.Warn("prefetch: bump yield against missing slot", "credit_id", creditID)
		return false, nil
	}
	for _, id := range c.dependencies.InstrumentsByCreditID(creditID) {
		if _, err := c.refetch(id, bumped, false, saved); err != nil {
			return false, err
		}
	}
	return bumped, nil
}

// BumpBorrow implements ledger.Bumpable.
func (c *Cache) BumpBorrow(id string, b bump.Yield, save ledger.Saveable) (bool, error) {
	saved, err := savedPrefetchOf(save)
	if err != nil {
		return false, err
	}
	bumped, err := c.context.BumpBorrow(id, b, saved.marketData)
	if err != nil {
		return false, err
	}
	if !bumped {
		c.logger.Warn("prefetch: bump borrow against missing slot", "id", id)
		return false, nil
	}
	return c.refetch(id, bumped, false, saved)
}

// BumpDivs implements ledger.Bumpable.
func (c *Cache) BumpDivs(id string, b bump.Divs, save ledger.Saveable) (bool, error) {
	saved, err := savedPrefetchOf(save)
	if err != nil {
		return false, err
	}
	bumped, err := c.context.BumpDivs(id, b, saved.marketData)
	if err != nil {
		return false, err
	}
	if !bumped {
		c.logger.Warn("prefetch: bump divs against missing slot", "id", id)
		return false, nil
	}
	return c.refetch(id, bumped, false, saved)
}

// BumpVol implements ledger.Bumpable.
func (c *Cache) BumpVol(id string, b bump.Vol, save ledger.Saveable) (bool, error) {
	saved, err := savedPrefetchOf(save)
	if err != nil {
		return false, err
	}
	bumped, err := c.context.BumpVol(id, b, saved.marketData)
	if err != nil {
		return false, err
	}
	if !bumped {
		c.logger.Warn("prefetch: bump vol against missing slot", "id", id)
		return false, nil
	}
	return c.refetch(id, false, bumped, saved)
}

// BumpDiscountDate implements ledger.Bumpable. The cached forwards and vols
// do not depend on the discount date, so nothing needs refetching.
func (c *Cache) BumpDiscountDate(replacement dates.Date, save ledger.Saveable) (bool, error) {
	saved, err := savedPrefetchOf(save)
	if err != nil {
		return false, err
	}
	return c.context.BumpDiscountDate(replacement, saved.marketData)
}

// ForwardIDByCreditID implements ledger.Bumpable.
func (c *Cache) ForwardIDByCreditID(creditID string) ([]string, error) {
	return c.dependencies.InstrumentsByCreditID(creditID), nil
}

// Restore implements ledger.Bumpable: the underlying market data restores
// first, then the cached forwards and vols roll back over it.
func (c *Cache) Restore(save ledger.Saveable) error {
	saved, err := savedPrefetchOf(save)
	if err != nil {
		return err
	}
	if err := c.context.Restore(saved.marketData); err != nil {
		return err
	}
	for id, fwd := range saved.forwards {
		c.forwards[id] = fwd
	}
	for id, vol := range saved.vols {
		c.vols[id] = vol
	}
	return nil
}
