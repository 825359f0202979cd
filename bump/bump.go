// Package bump supplies the value-object bump taxonomy applied to market
// data: each bump is a pure function old -> new, with no knowledge of where
// the value it is bumping lives.
package bump

import (
	"math/big"

	"github.com/joseph-blackelite/riskengine/curve"
)

// Spot is a bump applied to a single screen price, either a relative shift
// (size is a fraction, e.g. 0.01 for 1%) or an absolute shift (size is
// added directly).
type Spot struct {
	Size     float64
	Relative bool
}

// Apply returns the bumped spot.
func (b Spot) Apply(old float64) float64 {
	if b.Relative {
		return old * (1 + b.Size)
	}
	return old + b.Size
}

// PreciseSpot mirrors Spot but carries out the shift in exact big.Rat
// arithmetic instead of float64, so an audit trail can show a bump's
// effect with more digits than float64 rounding preserves.
type PreciseSpot struct {
	Size     *big.Rat
	Relative bool
}

// NewPreciseSpot converts a float64 bump size to an exact rational and
// returns the PreciseSpot that applies it the same way Spot would.
func NewPreciseSpot(size float64, relative bool) PreciseSpot {
	r := new(big.Rat).SetFloat64(size)
	if r == nil {
		r = new(big.Rat)
	}
	return PreciseSpot{Size: r, Relative: relative}
}

// Delta returns the exact rational change this bump applies to old,
// computed without ever rounding through float64: old*Size for a relative
// bump, Size itself for an absolute one.
func (b PreciseSpot) Delta(old float64) *big.Rat {
	oldRat := new(big.Rat).SetFloat64(old)
	if oldRat == nil {
		return new(big.Rat)
	}
	if b.Relative {
		return new(big.Rat).Mul(oldRat, b.Size)
	}
	return new(big.Rat).Set(b.Size)
}

// Apply returns the bumped spot, rounding the exact Delta back to float64
// only at the end.
func (b PreciseSpot) Apply(old float64) float64 {
	oldRat := new(big.Rat).SetFloat64(old)
	if oldRat == nil {
		return old
	}
	newRat := new(big.Rat).Add(oldRat, b.Delta(old))
	f, _ := newRat.Float64()
	return f
}

// Yield is a flat, annualised additive bump applied to a yield or borrow
// curve.
type Yield struct {
	Size float64
}

// Apply returns the bumped curve. old must be an *curve.Act365Flat; any
// other RateCurve implementation cannot be bumped this way.
func (b Yield) Apply(old curve.RateCurve) curve.RateCurve {
	flat, ok := old.(*curve.Act365Flat)
	if !ok {
		return old
	}
	return flat.Bump(b.Size)
}

// Divs is a relative bump applied uniformly to every cashflow in a dividend
// stream.
type Divs struct {
	Size float64
}

// Apply returns a dividend stream with every amount scaled by 1+Size.
func (b Divs) Apply(old Dividends) Dividends {
	return old.Scale(1 + b.Size)
}

// Vol is a flat, additive bump applied to every point of a vol surface.
type Vol struct {
	Size float64
}

// Dividends is the minimal surface bump.Divs needs from a dividend stream;
// marketdata.DividendStream implements it.
type Dividends interface {
	Scale(factor float64) Dividends
}

// VolSurface is the minimal surface bump.Vol needs from a vol surface;
// marketdata.FlatVolSurface implements it.
type VolSurface interface {
	Shift(amount float64) VolSurface
}

// Apply returns a vol surface with every vol shifted by Size.
func (b Vol) Apply(old VolSurface) VolSurface {
	return old.Shift(b.Size)
}
