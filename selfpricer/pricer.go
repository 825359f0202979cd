// Package selfpricer evaluates a weighted book of instruments through their
// own Priceable.Price method against a prefetch cache, and exposes the
// result as a Bumpable/Pricer pair for risk calculation.
package selfpricer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/joseph-blackelite/riskengine/bump"
	"github.com/joseph-blackelite/riskengine/dates"
	"github.com/joseph-blackelite/riskengine/instruments"
	"github.com/joseph-blackelite/riskengine/ledger"
	"github.com/joseph-blackelite/riskengine/marketdata"
	"github.com/joseph-blackelite/riskengine/pricing"
	"github.com/joseph-blackelite/riskengine/prefetch"
)

// Component is one weighted instrument in a book; the weight is the
// multiple of the instrument's own Price() contributing to the total (a
// unit holding is weight 1, a short position weight -1, and so on).
type Component struct {
	Weight     float64
	Instrument instruments.Priceable
}

// Metrics is an optional set of prometheus collectors a Pricer reports
// through. A nil Metrics disables instrumentation entirely; every call
// site must tolerate it being nil.
type Metrics struct {
	Prices          prometheus.Counter
	Bumps           *prometheus.CounterVec
	RefetchDuration *prometheus.HistogramVec
}

// NewMetrics builds a Metrics collecting into the given prometheus
// registerer and returns it, ready to pass to New. Call it once per
// process; passing the same registerer twice panics on the duplicate
// registration prometheus itself detects.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Prices: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "riskengine",
			Subsystem: "selfpricer",
			Name:      "prices_total",
			Help:      "Number of times a Pricer has priced its book.",
		}),
		Bumps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riskengine",
			Subsystem: "selfpricer",
			Name:      "bumps_total",
			Help:      "Number of bumps applied, by kind.",
		}, []string{"kind"}),
		RefetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "riskengine",
			Subsystem: "selfpricer",
			Name:      "refetch_duration_seconds",
			Help:      "Wall-clock cost of a bump's prefetch-cache refetch, by kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.Prices, m.Bumps, m.RefetchDuration)
	return m
}

// Pricer evaluates a book of instruments by calling each one's own
// Priceable.Price against a shared prefetch cache.
type Pricer struct {
	components []Component
	cache      *prefetch.Cache
	metrics    *Metrics
}

// New builds a Pricer for components, priced against marketData. It
// collects every component's dependency declarations and prefetches the
// forwards and vol surfaces they name, so market data missing for a
// declared dependency fails here rather than at price time; a read that was
// never declared still fails only at price time. metrics and logger
// are both optional; logger defaults to slog.Default() when nil.
func New(components []Component, marketData *marketdata.MarketData, metrics *Metrics, logger *slog.Logger) (*Pricer, error) {
	if len(components) == 0 {
		return nil, fmt.Errorf("selfpricer: at least one component required")
	}

	collector := pricing.NewCollector(marketData.SpotDate())
	for _, c := range components {
		req, err := c.Instrument.Dependencies(collector)
		if err != nil {
			return nil, fmt.Errorf("selfpricer: dependencies for %q: %w", c.Instrument.ID(), err)
		}
		// Only a component that reads its own spot price needs the driver to
		// register its forward dependency directly; a composite instrument
		// (an option) already pulled its underlying's forward in via its own
		// Dependencies call, and one that never reads a spot (a currency, a
		// zero coupon) has no forward to prefetch at all.
		if req == pricing.SpotRequired {
			collector.Spot(c.Instrument)
		}
	}

	cache, err := prefetch.New(marketData, collector, logger)
	if err != nil {
		return nil, fmt.Errorf("selfpricer: %w", err)
	}

	return &Pricer{components: components, cache: cache, metrics: metrics}, nil
}

// Price implements ledger.Pricer: the weighted sum of each component's own
// price under the pricer's current (possibly bumped) market data.
func (p *Pricer) Price() (float64, error) {
	total := 0.0
	for _, c := range p.components {
		price, err := c.Instrument.Price(p.cache)
		if err != nil {
			return 0, fmt.Errorf("selfpricer: pricing %q: %w", c.Instrument.ID(), err)
		}
		total += c.Weight * price
	}
	if p.metrics != nil {
		p.metrics.Prices.Inc()
	}
	return total, nil
}

// timeBump calls fn, counting it under kind and, if metrics are enabled,
// observing its wall-clock cost (which includes any prefetch-cache
// refetch fn triggers) into RefetchDuration.
func (p *Pricer) timeBump(kind string, fn func() (bool, error)) (bool, error) {
	if p.metrics == nil {
		return fn()
	}
	p.metrics.Bumps.WithLabelValues(kind).Inc()
	start := time.Now()
	changed, err := fn()
	p.metrics.RefetchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	return changed, err
}

// Context implements ledger.BumpablePricingContext.
func (p *Pricer) Context() pricing.Context { return p.cache }

// NewSaveable implements ledger.Bumpable.
func (p *Pricer) NewSaveable() ledger.Saveable { return p.cache.NewSaveable() }

// BumpSpot implements ledger.Bumpable.
func (p *Pricer) BumpSpot(id string, b bump.Spot, save ledger.Saveable) (bool, error) {
	return p.timeBump("spot", func() (bool, error) { return p.cache.BumpSpot(id, b, save) })
}

// BumpYield implements ledger.Bumpable.
func (p *Pricer) BumpYield(creditID string, b bump.Yield, save ledger.Saveable) (bool, error) {
	return p.timeBump("yield", func() (bool, error) { return p.cache.BumpYield(creditID, b, save) })
}

// BumpBorrow implements ledger.Bumpable.
func (p *Pricer) BumpBorrow(id string, b bump.Yield, save ledger.Saveable) (bool, error) {
	return p.timeBump("borrow", func() (bool, error) { return p.cache.BumpBorrow(id, b, save) })
}

// BumpDivs implements ledger.Bumpable.
func (p *Pricer) BumpDivs(id string, b bump.Divs, save ledger.Saveable) (bool, error) {
	return p.timeBump("divs", func() (bool, error) { return p.cache.BumpDivs(id, b, save) })
}

// BumpVol implements ledger.Bumpable.
func (p *Pricer) BumpVol(id string, b bump.Vol, save ledger.Saveable) (bool, error) {
	return p.timeBump("vol", func() (bool, error) { return p.cache.BumpVol(id, b, save) })
}

// BumpDiscountDate implements ledger.Bumpable.
func (p *Pricer) BumpDiscountDate(replacement dates.Date, save ledger.Saveable) (bool, error) {
	return p.timeBump("discount_date", func() (bool, error) { return p.cache.BumpDiscountDate(replacement, save) })
}

// ForwardIDByCreditID implements ledger.Bumpable.
func (p *Pricer) ForwardIDByCreditID(creditID string) ([]string, error) {
	return p.cache.ForwardIDByCreditID(creditID)
}

// Restore implements ledger.Bumpable.
func (p *Pricer) Restore(save ledger.Saveable) error {
	return p.cache.Restore(save)
}

// BumpTime implements ledger.TimeBumpable. Theta bumping is an explicit
// Non-goal; every caller gets the same sentinel error the original pricer
// returned for "not yet supported".
func (p *Pricer) BumpTime(newSpotDate dates.Date, save ledger.Saveable) (bool, error) {
	return false, pricing.ErrTimeBumpUnsupported
}
