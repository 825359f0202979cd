package pricing

import "errors"

// Sentinel errors for conditions that carry no extra argument, each
// following the "<pkg>: <message>" convention used throughout this module.
var (
	// ErrCorrelationUnsupported is returned by market data contexts that do
	// not implement cross-instrument correlation.
	ErrCorrelationUnsupported = errors.New("pricing: correlation not implemented")

	// ErrNotPriceable names the not-priceable error kind. Nothing in this
	// module returns it: selfpricer.Component holds an instruments.Priceable,
	// so an instrument with no Price method is rejected at compile time.
	ErrNotPriceable = errors.New("pricing: instrument is not priceable")

	// ErrTimeBumpUnsupported is returned by every TimeBumpable in this
	// module; theta bumping is an explicit Non-goal.
	ErrTimeBumpUnsupported = errors.New("pricing: time bump not supported")
)
