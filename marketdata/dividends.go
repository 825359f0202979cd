package marketdata

import (
	"sort"

	"github.com/joseph-blackelite/riskengine/bump"
	"github.com/joseph-blackelite/riskengine/dates"
)

// CashDividend is a single future dividend, either a fixed cash amount or a
// relative (percentage) payment. Exactly one of Cash or Relative is
// meaningful, selected by the IsRelative flag, mirroring how dividends are
// quoted on screen.
type CashDividend struct {
	Date       dates.Date
	Cash       float64
	Relative   float64
	IsRelative bool
}

// DividendStream is the escrow-model dividend schedule for a single equity,
// sorted by pay date.
type DividendStream struct {
	divs []CashDividend
}

// NewDividendStream builds a dividend stream, sorting by date.
func NewDividendStream(divs []CashDividend) *DividendStream {
	sorted := append([]CashDividend(nil), divs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	return &DividendStream{divs: sorted}
}

// Before returns every cash dividend paid on or before cutoff.
func (d *DividendStream) Before(cutoff dates.Date) []CashDividend {
	var out []CashDividend
	for _, div := range d.divs {
		if div.Date > cutoff {
			break
		}
		out = append(out, div)
	}
	return out
}

// Scale returns a dividend stream with every amount scaled by factor,
// satisfying bump.Dividends for BumpDivs.
func (d *DividendStream) Scale(factor float64) bump.Dividends {
	scaled := make([]CashDividend, len(d.divs))
	for i, div := range d.divs {
		scaled[i] = div
		if div.IsRelative {
			scaled[i].Relative = div.Relative * factor
		} else {
			scaled[i].Cash = div.Cash * factor
		}
	}
	return &DividendStream{divs: scaled}
}
