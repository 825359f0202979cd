package marketdata

import (
	"github.com/joseph-blackelite/riskengine/curve"
	"github.com/joseph-blackelite/riskengine/dates"
)

// EquityForward is the escrowed-dividend forward price of an equity: the
// spot grown at the risk-free rate and discounted for cost of borrow, net
// of the present value of cash dividends paid before delivery and the
// cumulative effect of relative dividends.
type EquityForward struct {
	spotDate      dates.Date
	spot          float64
	yieldCurve    curve.RateCurve
	borrowCurve   curve.RateCurve
	divs          *DividendStream
	highWaterMark dates.Date
}

// NewEquityForward builds the forward for an equity priced as of spotDate.
// highWaterMark is the latest date the forward will ever be asked for; the
// dividend schedule need only be complete up to that date.
func NewEquityForward(spotDate dates.Date, spot float64, yieldCurve, borrowCurve curve.RateCurve, divs *DividendStream, highWaterMark dates.Date) *EquityForward {
	return &EquityForward{
		spotDate:      spotDate,
		spot:          spot,
		yieldCurve:    yieldCurve,
		borrowCurve:   borrowCurve,
		divs:          divs,
		highWaterMark: highWaterMark,
	}
}

// Value implements pricing.Forward.
func (f *EquityForward) Value(payDate dates.Date) (float64, error) {
	riskFreeDf, err := f.yieldCurve.Df(payDate, f.spotDate)
	if err != nil {
		return 0, err
	}
	borrowDf, err := f.borrowCurve.Df(payDate, f.spotDate)
	if err != nil {
		return 0, err
	}

	escrow := f.spot
	relativeFactor := 1.0
	for _, div := range f.divs.Before(payDate) {
		if div.IsRelative {
			relativeFactor *= 1 - div.Relative
			continue
		}
		divDf, err := f.yieldCurve.Df(div.Date, f.spotDate)
		if err != nil {
			return 0, err
		}
		escrow -= div.Cash * divDf
	}

	return escrow * relativeFactor * borrowDf / riskFreeDf, nil
}
