// Package config loads a pricing scenario description from a TOML file,
// writing out a sample default file the first time a given path is loaded.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// CurvePoint is one (offset in days from the curve's base date, annualised
// rate) pair, as loaded from TOML.
type CurvePoint struct {
	Days int     `toml:"days"`
	Rate float64 `toml:"rate"`
}

// Curve describes a yield or borrow curve keyed by credit/instrument id.
type Curve struct {
	ID     string       `toml:"id"`
	Base   string       `toml:"base"`
	Points []CurvePoint `toml:"points"`
}

// Dividend describes a single dividend cashflow on an equity.
type Dividend struct {
	PayDate    string  `toml:"pay_date"`
	Cash       float64 `toml:"cash"`
	Relative   float64 `toml:"relative"`
	IsRelative bool    `toml:"is_relative"`
}

// Equity describes a priceable equity and its dividend schedule.
type Equity struct {
	ID           string     `toml:"id"`
	CreditID     string     `toml:"credit_id"`
	Currency     string     `toml:"currency"`
	SettleDays   int        `toml:"settle_days"`
	Spot         float64    `toml:"spot"`
	Vol          float64    `toml:"vol"`
	BorrowCurve  string     `toml:"borrow_curve"`
	Dividends    []Dividend `toml:"dividends"`
}

// Option describes a spot-starting European option on one of the
// scenario's equities.
type Option struct {
	ID         string  `toml:"id"`
	CreditID   string  `toml:"credit_id"`
	Underlying string  `toml:"underlying"`
	Strike     float64 `toml:"strike"`
	Expiry     string  `toml:"expiry"`
	PutCall    string  `toml:"put_call"`
	SettleDays int     `toml:"settle_days"`
}

// Bump describes one bump to apply and report the repriced book under.
type Bump struct {
	Kind     string  `toml:"kind"` // spot, yield, borrow, divs, vol
	TargetID string  `toml:"target_id"`
	Size     float64 `toml:"size"`
	Relative bool    `toml:"relative"`
}

// Scenario is the full input to the demo CLI: a spot/discount date, a
// currency, zero or more equities and options, the curves they reference,
// and the bumps to report sensitivities for.
type Scenario struct {
	SpotDate        string   `toml:"spot_date"`
	DiscountDate    string   `toml:"discount_date"`
	CurrencyID      string   `toml:"currency_id"`
	CurrencySettle  int      `toml:"currency_settle_days"`
	Curves          []Curve  `toml:"curve"`
	Equities        []Equity `toml:"equity"`
	Options         []Option `toml:"option"`
	Bumps           []Bump   `toml:"bump"`
}

// Load reads a scenario from path, creating a sample default scenario file
// if none exists yet, so a fresh checkout has something to run against.
func Load(path string) (*Scenario, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}
	var s Scenario
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	s.Normalise()
	return &s, nil
}

// Normalise fills in defaults left unset by a partially-specified scenario
// file.
func (s *Scenario) Normalise() {
	if s.CurrencyID == "" {
		s.CurrencyID = "GBP"
	}
	if s.CurrencySettle == 0 {
		s.CurrencySettle = 2
	}
}

func createDefault(path string) (*Scenario, error) {
	today := time.Now().UTC().Format("2006-01-02")
	s := &Scenario{
		SpotDate:       today,
		CurrencyID:     "GBP",
		CurrencySettle: 2,
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return nil, fmt.Errorf("config: write default %s: %w", path, err)
	}
	return s, nil
}
