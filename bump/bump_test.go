package bump_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-blackelite/riskengine/bump"
	"github.com/joseph-blackelite/riskengine/curve"
	"github.com/joseph-blackelite/riskengine/dates"
)

func TestSpotApplyRelative(t *testing.T) {
	b := bump.Spot{Size: 0.01, Relative: true}
	assert.InDelta(t, 101.0, b.Apply(100.0), 1e-12)
}

func TestSpotApplyAbsolute(t *testing.T) {
	b := bump.Spot{Size: 5.0, Relative: false}
	assert.InDelta(t, 105.0, b.Apply(100.0), 1e-12)
}

func TestPreciseSpotDeltaRelativeIsExactProduct(t *testing.T) {
	// 0.5 is exactly representable in binary64, so the product stays exact
	// through big.Rat and is safe to compare for equality.
	b := bump.NewPreciseSpot(0.5, true)
	delta := b.Delta(100.0)
	assert.Equal(t, big.NewRat(50, 1), delta)
	assert.InDelta(t, 150.0, b.Apply(100.0), 1e-12)
}

func TestPreciseSpotDeltaAbsoluteIsExactSize(t *testing.T) {
	b := bump.NewPreciseSpot(5.0, false)
	delta := b.Delta(100.0)
	assert.Equal(t, big.NewRat(5, 1), delta)
	assert.InDelta(t, 105.0, b.Apply(100.0), 1e-12)
}

func TestYieldApplyBumpsFlatCurve(t *testing.T) {
	base := dates.FromYMD(2018, time.June, 1)
	c, err := curve.NewAct365Flat(base, []curve.Point{{Date: base, Rate: 0.05}})
	require.NoError(t, err)

	b := bump.Yield{Size: 0.01}
	bumped := b.Apply(c)

	before, err := c.Df(base.Add(365), base)
	require.NoError(t, err)
	after, err := bumped.Df(base.Add(365), base)
	require.NoError(t, err)
	assert.Less(t, after, before)
}

type fakeDividends struct{ scaled float64 }

func (f fakeDividends) Scale(factor float64) bump.Dividends {
	return fakeDividends{scaled: f.scaled * factor}
}

func TestDivsApplyScalesByOnePlusSize(t *testing.T) {
	b := bump.Divs{Size: 0.1}
	out := b.Apply(fakeDividends{scaled: 10.0}).(fakeDividends)
	assert.InDelta(t, 11.0, out.scaled, 1e-12)
}

type fakeVolSurface struct{ vol float64 }

func (f fakeVolSurface) Shift(amount float64) bump.VolSurface {
	return fakeVolSurface{vol: f.vol + amount}
}

func TestVolApplyShiftsByAmount(t *testing.T) {
	b := bump.Vol{Size: 0.01}
	out := b.Apply(fakeVolSurface{vol: 0.3}).(fakeVolSurface)
	assert.InDelta(t, 0.31, out.vol, 1e-12)
}
