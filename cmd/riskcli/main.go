// Command riskcli loads a pricing scenario from a TOML file, prices the
// book it describes, then applies each configured bump in turn, reporting
// the bumped price and its delta from the base price, and restoring the base
// market data before the next bump.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/big"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/joseph-blackelite/riskengine/bump"
	"github.com/joseph-blackelite/riskengine/config"
	"github.com/joseph-blackelite/riskengine/ledger"
	"github.com/joseph-blackelite/riskengine/marketdata"
	"github.com/joseph-blackelite/riskengine/selfpricer"
)

func main() {
	path := flag.String("scenario", "scenario.toml", "path to a scenario TOML file")
	precise := flag.Bool("precise", false, "print bump deltas as exact rationals")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	registry := prometheus.NewRegistry()
	metrics := selfpricer.NewMetrics(registry)

	if err := run(*path, *precise, logger, metrics); err != nil {
		logger.Error("riskcli failed", "error", err)
		os.Exit(1)
	}
}

func run(path string, precise bool, logger *slog.Logger, metrics *selfpricer.Metrics) error {
	scenario, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("riskcli: %w", err)
	}

	built, err := build(scenario)
	if err != nil {
		return fmt.Errorf("riskcli: %w", err)
	}

	pricer, err := selfpricer.New(built.components, built.marketData, metrics, logger)
	if err != nil {
		return fmt.Errorf("riskcli: %w", err)
	}

	base, err := pricer.Price()
	if err != nil {
		return fmt.Errorf("riskcli: base price: %w", err)
	}
	logger.Info("priced base scenario", "value", base, "components", len(built.components))
	fmt.Printf("base price: %.10f\n", base)

	save := pricer.NewSaveable()
	for _, b := range scenario.Bumps {
		if err := reportBump(pricer, built.marketData, b, base, save, precise); err != nil {
			return fmt.Errorf("riskcli: bump %s/%s: %w", b.Kind, b.TargetID, err)
		}
	}

	return nil
}

func reportBump(pricer *selfpricer.Pricer, md *marketdata.MarketData, b config.Bump, base float64, save ledger.Saveable, precise bool) error {
	var preciseSpotDelta *big.Rat
	if precise && b.Kind == "spot" {
		if oldSpot, err := md.Spot(b.TargetID); err == nil {
			preciseSpotDelta = bump.NewPreciseSpot(b.Size, b.Relative).Delta(oldSpot)
		}
	}

	changed, err := dispatchBump(pricer, b, save)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Printf("bump %s/%s: no-op (id not found)\n", b.Kind, b.TargetID)
		return nil
	}

	bumped, err := pricer.Price()
	if err != nil {
		return fmt.Errorf("bumped price: %w", err)
	}
	delta := bumped - base

	switch {
	case precise && preciseSpotDelta != nil:
		r := new(big.Rat).SetFloat64(delta)
		fmt.Printf("bump %s/%s: price=%.10f delta=%s spot_delta=%s\n", b.Kind, b.TargetID, bumped, r.RatString(), preciseSpotDelta.RatString())
	case precise:
		r := new(big.Rat).SetFloat64(delta)
		fmt.Printf("bump %s/%s: price=%.10f delta=%s\n", b.Kind, b.TargetID, bumped, r.RatString())
	default:
		fmt.Printf("bump %s/%s: price=%.10f delta=%.10f\n", b.Kind, b.TargetID, bumped, delta)
	}

	if err := pricer.Restore(save); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	save.Clear()
	return nil
}
