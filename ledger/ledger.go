// Package ledger defines the bump/save/restore contract shared by every
// mutable pricing context: market data, the prefetch cache, and the
// self-pricer that sits on top of both.
package ledger

import (
	"github.com/joseph-blackelite/riskengine/bump"
	"github.com/joseph-blackelite/riskengine/curve"
	"github.com/joseph-blackelite/riskengine/dates"
	"github.com/joseph-blackelite/riskengine/pricing"
)

// Saveable is a transactional snapshot a Bumpable writes its pre-bump state
// into. A single Saveable may receive several bumps in sequence (e.g. when
// walking the list of instruments to reprice each under the same bumped
// context); only the value from BEFORE the first bump of a given key may
// ever be written, so that Restore always recovers the true original state
// regardless of how many bumps landed in between.
type Saveable interface {
	// Clear empties the ledger so it can be reused for the next bump.
	Clear()
}

// Bumpable is implemented by anything whose internal market data can be
// shifted in place and later restored from a Saveable snapshot.
type Bumpable interface {
	// NewSaveable returns an empty ledger matched to this Bumpable's
	// internal representation.
	NewSaveable() Saveable

	BumpSpot(id string, b bump.Spot, save Saveable) (bool, error)
	BumpYield(creditID string, b bump.Yield, save Saveable) (bool, error)
	BumpBorrow(id string, b bump.Yield, save Saveable) (bool, error)
	BumpDivs(id string, b bump.Divs, save Saveable) (bool, error)
	BumpVol(id string, b bump.Vol, save Saveable) (bool, error)
	BumpDiscountDate(replacement dates.Date, save Saveable) (bool, error)

	// ForwardIDByCreditID lists every instrument id whose forward curve
	// depends on creditID's yield curve, so a yield bump knows what to
	// refetch. Implementations with no dependency index (bare market data)
	// return ErrNoDependencyIndex.
	ForwardIDByCreditID(creditID string) ([]string, error)

	// Restore undoes every bump recorded in save, in place.
	Restore(save Saveable) error
}

// TimeBumpable is a Non-goal hook: every implementation in this module
// returns pricing.ErrTimeBumpUnsupported.
type TimeBumpable interface {
	BumpTime(newSpotDate dates.Date, save Saveable) (bool, error)
}

// BumpablePricingContext couples a Bumpable with the read-only
// pricing.Context it mutates, so a driver can bump and reprice through a
// single handle.
type BumpablePricingContext interface {
	Bumpable
	Context() pricing.Context
}

// Pricer prices a book of instruments under its current (possibly bumped)
// market data.
type Pricer interface {
	Price() (float64, error)
}

// RateCurve re-exports curve.RateCurve so callers of this package do not
// need a second import for the common case of reading a curve back out of
// a ledger entry.
type RateCurve = curve.RateCurve
