package pricing

import "github.com/joseph-blackelite/riskengine/dates"

// SpotRequirement records whether an instrument needs its own spot price
// quoted directly, as opposed to only needing it indirectly through a
// forward curve built from some other instrument's spot.
type SpotRequirement int

const (
	// SpotNotRequired means the instrument discounts or otherwise prices
	// without ever reading a spot price directly (e.g. a currency or a
	// zero-coupon bond).
	SpotNotRequired SpotRequirement = iota
	// SpotRequired means the instrument reads its own spot price.
	SpotRequired
)

// Dependent is implemented by anything that can declare its market-data
// requirements against a DependencyContext.
type Dependent interface {
	// Dependencies declares every forward, vol and yield-curve requirement
	// reachable from this instrument, recursively through any instruments it
	// is composed of, and reports whether it needs its own spot price.
	Dependencies(ctx DependencyContext) (SpotRequirement, error)
}

// DependencyContext is the write-only sink an instrument declares its
// market-data requirements into. It carries no read access: an instrument
// cannot observe what has already been collected, only add to it.
type DependencyContext interface {
	// SpotDate returns the valuation date dependencies are measured from.
	SpotDate() dates.Date

	// Spot declares that instrument needs a forward curve (and, through it,
	// a spot price), with a high water mark derived from instrument's own
	// settlement rule applied to the spot date.
	Spot(instrument Instrument)

	// Vol declares that instrument needs a vol surface with high water mark
	// requiredDate, extending any existing high water mark to the max of
	// old and new.
	Vol(instrument Instrument, requiredDate dates.Date)

	// ExtendForward raises instrument's forward-curve high water mark to
	// the max of its current value and requiredDate, registering the
	// dependency via Spot first if it has not already been declared. A
	// composite instrument (e.g. an option) calls this to reach beyond its
	// underlying's own settlement-implied high water mark, out to its own
	// expiry.
	ExtendForward(instrument Instrument, requiredDate dates.Date)

	// YieldCurve declares a need for creditID's yield curve, extending any
	// existing high water mark to the max of old and new.
	YieldCurve(creditID string, requiredDate dates.Date)
}

// ForwardDependency pairs an instrument with the high water mark its
// forward curve was declared at.
type ForwardDependency struct {
	Instrument Instrument
	HWM        dates.Date
}

// Collector is the concrete DependencyContext built once per pricer and
// replayed against every instrument's Dependencies call before prefetching
// forwards and vols.
type Collector struct {
	spotDate    dates.Date
	forwardDeps map[string]ForwardDependency
	volDeps     map[string]dates.Date
	yieldHWM    map[string]dates.Date
	byCreditID  map[string][]string
}

// NewCollector builds an empty dependency collector valued as of spotDate.
func NewCollector(spotDate dates.Date) *Collector {
	return &Collector{
		spotDate:    spotDate,
		forwardDeps: make(map[string]ForwardDependency),
		volDeps:     make(map[string]dates.Date),
		yieldHWM:    make(map[string]dates.Date),
		byCreditID:  make(map[string][]string),
	}
}

// SpotDate implements DependencyContext.
func (c *Collector) SpotDate() dates.Date { return c.spotDate }

// Spot implements DependencyContext.
func (c *Collector) Spot(instrument Instrument) {
	id := instrument.ID()
	hwm := instrument.Settlement().Apply(c.spotDate)
	if existing, ok := c.forwardDeps[id]; ok {
		hwm = hwm.Max(existing.HWM)
	}
	c.forwardDeps[id] = ForwardDependency{Instrument: instrument, HWM: hwm}

	creditID := instrument.CreditID()
	ids := c.byCreditID[creditID]
	for _, existing := range ids {
		if existing == id {
			return
		}
	}
	c.byCreditID[creditID] = append(ids, id)
}

// ExtendForward implements DependencyContext.
func (c *Collector) ExtendForward(instrument Instrument, requiredDate dates.Date) {
	id := instrument.ID()
	existing, ok := c.forwardDeps[id]
	if !ok {
		c.Spot(instrument)
		existing = c.forwardDeps[id]
	}
	existing.HWM = requiredDate.Max(existing.HWM)
	c.forwardDeps[id] = existing
}

// Vol implements DependencyContext.
func (c *Collector) Vol(instrument Instrument, requiredDate dates.Date) {
	id := instrument.ID()
	if existing, ok := c.volDeps[id]; ok {
		requiredDate = requiredDate.Max(existing)
	}
	c.volDeps[id] = requiredDate
}

// YieldCurve implements DependencyContext.
func (c *Collector) YieldCurve(creditID string, requiredDate dates.Date) {
	if existing, ok := c.yieldHWM[creditID]; ok {
		requiredDate = requiredDate.Max(existing)
	}
	c.yieldHWM[creditID] = requiredDate
}

// ForwardDependencies returns every instrument a forward curve must be
// prefetched for, with its high water mark.
func (c *Collector) ForwardDependencies() map[string]ForwardDependency {
	return c.forwardDeps
}

// ForwardHighWaterMark reports the forward-curve high water mark declared
// for id, if any.
func (c *Collector) ForwardHighWaterMark(id string) (dates.Date, bool) {
	dep, ok := c.forwardDeps[id]
	if !ok {
		return 0, false
	}
	return dep.HWM, true
}

// VolHighWaterMark reports the vol-surface high water mark declared for id,
// if any.
func (c *Collector) VolHighWaterMark(id string) (dates.Date, bool) {
	hwm, ok := c.volDeps[id]
	return hwm, ok
}

// YieldHighWaterMark reports the yield-curve high water mark declared for
// creditID, if any.
func (c *Collector) YieldHighWaterMark(creditID string) (dates.Date, bool) {
	hwm, ok := c.yieldHWM[creditID]
	return hwm, ok
}

// InstrumentsByCreditID returns the ids of every instrument whose forward
// curve was declared against creditID, used to find what must be refetched
// when that credit's yield curve is bumped.
func (c *Collector) InstrumentsByCreditID(creditID string) []string {
	return c.byCreditID[creditID]
}

// Instrument returns the instrument a forward dependency was declared for.
func (c *Collector) Instrument(id string) (Instrument, bool) {
	dep, ok := c.forwardDeps[id]
	if !ok {
		return nil, false
	}
	return dep.Instrument, true
}
