package marketdata

import (
	"github.com/joseph-blackelite/riskengine/curve"
	"github.com/joseph-blackelite/riskengine/dates"
)

// SavedData is the ledger.Saveable matched to MarketData: it mirrors every
// collection MarketData holds, but only ever contains the entries a bump
// actually touched.
type SavedData struct {
	discountDate         *dates.Date
	replacedDiscountDate bool
	spots                map[string]float64
	yieldCurves          map[string]curve.RateCurve
	borrowCurves         map[string]curve.RateCurve
	dividends            map[string]*DividendStream
	volSurfaces          map[string]*FlatVolSurface
}

func newSavedData() *SavedData {
	return &SavedData{
		spots:        make(map[string]float64),
		yieldCurves:  make(map[string]curve.RateCurve),
		borrowCurves: make(map[string]curve.RateCurve),
		dividends:    make(map[string]*DividendStream),
		volSurfaces:  make(map[string]*FlatVolSurface),
	}
}

// Clear implements ledger.Saveable.
func (s *SavedData) Clear() {
	s.discountDate = nil
	s.replacedDiscountDate = false
	for k := range s.spots {
		delete(s.spots, k)
	}
	for k := range s.yieldCurves {
		delete(s.yieldCurves, k)
	}
	for k := range s.borrowCurves {
		delete(s.borrowCurves, k)
	}
	for k := range s.dividends {
		delete(s.dividends, k)
	}
	for k := range s.volSurfaces {
		delete(s.volSurfaces, k)
	}
}
