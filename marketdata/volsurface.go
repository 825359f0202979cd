package marketdata

import (
	"fmt"

	"github.com/joseph-blackelite/riskengine/bump"
	"github.com/joseph-blackelite/riskengine/dates"
	"github.com/joseph-blackelite/riskengine/pricing"
)

// FlatVolSurface is a single implied volatility applied to every strike and
// expiry, the simplest vol surface that can exercise the bump/dynamics
// machinery end to end.
type FlatVolSurface struct {
	baseDate dates.Date
	vol      float64
}

// NewFlatVolSurface builds a flat vol surface quoted as of baseDate.
func NewFlatVolSurface(baseDate dates.Date, vol float64) *FlatVolSurface {
	return &FlatVolSurface{baseDate: baseDate, vol: vol}
}

// Vol implements pricing.VolSurface.
func (s *FlatVolSurface) Vol(strike float64, expiry dates.Date) (float64, error) {
	if s.vol < 0 {
		return 0, fmt.Errorf("marketdata: negative vol %v after bump", s.vol)
	}
	return s.vol, nil
}

// Shift returns a vol surface with the flat vol moved by amount, satisfying
// bump.VolSurface for BumpVol.
func (s *FlatVolSurface) Shift(amount float64) bump.VolSurface {
	return &FlatVolSurface{baseDate: s.baseDate, vol: s.vol + amount}
}

// NoTimeDynamics leaves a vol surface unchanged when the spot date moves;
// it is the default for instruments that do not need sticky-strike or
// sticky-delta time decay.
type NoTimeDynamics struct{}

// Modify implements pricing.TimeDynamics.
func (NoTimeDynamics) Modify(vol pricing.VolSurface, spotDate dates.Date) (pricing.VolSurface, error) {
	return vol, nil
}

// NoForwardDynamics leaves a vol surface unchanged when the forward moves;
// it is the default for a sticky-strike vol surface.
type NoForwardDynamics struct{}

// Modify implements pricing.ForwardDynamics.
func (NoForwardDynamics) Modify(vol pricing.VolSurface, forward pricing.Forward) (pricing.VolSurface, error) {
	return vol, nil
}
