// Package broker defines the narrow brokerage interface the tool surface
// depends on, and provides the Alpaca implementation plus an in-memory
// simulator.
package broker

import (
	"context"

	"alpacamcp/internal/domain"
)

// Broker abstracts the brokerage operations the adapter needs. Every call
// maps to one synchronous remote call that may fail; failures surface
// immediately and are never retried here.
type Broker interface {
	// Name returns the broker identifier (e.g. "alpaca", "simulator").
	Name() string

	// GetQuote returns the latest trade price for a symbol. A quote with a
	// nil Price means the upstream snapshot had no last trade.
	GetQuote(ctx context.Context, symbol string) (domain.Quote, error)

	// GetAccount returns a snapshot of the account's financial metrics.
	GetAccount(ctx context.Context) (domain.Account, error)

	// GetPositions returns all open positions in upstream order.
	GetPositions(ctx context.Context) ([]domain.Position, error)

	// SubmitOrder sends a market order to the brokerage for execution.
	SubmitOrder(ctx context.Context, order domain.OrderRequest) (domain.OrderResult, error)

	// ClosePosition closes the entire position for a symbol.
	ClosePosition(ctx context.Context, symbol string) error
}
