package prefetch

import (
	"github.com/joseph-blackelite/riskengine/ledger"
	"github.com/joseph-blackelite/riskengine/pricing"
)

// SavedPrefetch is the ledger.Saveable matched to Cache: the underlying
// market data's own ledger, plus whatever prefetched forwards and vols a
// bump displaced.
type SavedPrefetch struct {
	marketData ledger.Saveable
	forwards   map[string]pricing.Forward
	vols       map[string]pricing.VolSurface
}

// Clear implements ledger.Saveable.
func (s *SavedPrefetch) Clear() {
	s.marketData.Clear()
	for k := range s.forwards {
		delete(s.forwards, k)
	}
	for k := range s.vols {
		delete(s.vols, k)
	}
}
