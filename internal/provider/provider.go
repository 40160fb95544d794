// Package provider holds the price source adapters. Each adapter normalizes
// its own source's field names and swallows its own transient failures,
// returning zero values plus an error instead of ever panicking; the
// consensus engine treats all of them as interchangeable.
package provider

import "context"

// Provider is the contract every price source adapter implements.
type Provider interface {
	// GetLatestPrice returns the last traded price, or 0 and an error.
	GetLatestPrice(ctx context.Context, symbol string) (float64, error)
	// GetStockDetails returns the source's raw normalized payload. The price
	// key differs per source; the consensus engine knows how to read each.
	GetStockDetails(ctx context.Context, symbol string) (map[string]any, error)
	// SourceName identifies the adapter in weight tables and logs.
	SourceName() string
}
