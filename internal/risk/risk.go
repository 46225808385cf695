// Package risk implements the pre-trade gate applied to every order before
// it is forwarded to the brokerage.
package risk

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"alpacamcp/internal/domain"
	"alpacamcp/internal/universe"
)

// Limits are the static order limits, fixed for the process lifetime.
type Limits struct {
	MaxPositionSize  int64   // share count cap per order
	MaxPositionValue float64 // notional dollar cap per buy order
}

// RejectReason classifies why an order failed the risk check.
type RejectReason string

const (
	ReasonSymbolNotAllowed RejectReason = "symbol_not_allowed"
	ReasonQuantityExceeded RejectReason = "quantity_exceeded"
	ReasonPriceUnavailable RejectReason = "price_unavailable"
	ReasonNotionalExceeded RejectReason = "notional_exceeded"
)

// Rejection is an expected, user-facing refusal of an order. It is an error
// so it can flow through the normal return path, but callers should render
// it as a plain-text message rather than treating it as a failure.
type Rejection struct {
	Reason  RejectReason
	message string
}

func (r *Rejection) Error() string {
	return r.message
}

func reject(reason RejectReason, format string, args ...any) *Rejection {
	return &Rejection{Reason: reason, message: fmt.Sprintf(format, args...)}
}

// QuoteFetcher is the one brokerage capability the gate needs: the latest
// trade price for a symbol.
type QuoteFetcher interface {
	GetQuote(ctx context.Context, symbol string) (domain.Quote, error)
}

// Manager evaluates orders against the allow-list and the static limits.
type Manager struct {
	universe *universe.Universe
	limits   Limits
	quotes   QuoteFetcher
}

// NewManager creates a Manager with the given allow-list, limits, and quote
// source.
func NewManager(u *universe.Universe, limits Limits, quotes QuoteFetcher) *Manager {
	return &Manager{
		universe: u,
		limits:   limits,
		quotes:   quotes,
	}
}

// CheckOrder decides whether the order may be forwarded to the brokerage.
// On success it returns the latest trade price used for the notional check.
// A policy refusal comes back as a *Rejection; any other error is a quote
// fetch failure from the brokerage.
//
// The checks run cheapest-and-most-restrictive first: the allow-list and the
// quantity cap need no network call, so a bad order is turned away before
// the price fetch. The fetch itself happens for both sides; only buy orders
// are held to the notional cap. Sells are assumed to reduce exposure and are
// exempt, which also means an unlimited-value sell passes — see DESIGN.md.
func (m *Manager) CheckOrder(ctx context.Context, order domain.OrderRequest) (float64, error) {
	order.Normalize()

	if !m.universe.Allows(order.Symbol) {
		return 0, reject(ReasonSymbolNotAllowed,
			"%s is not in the allowed universe (risk check failed).", order.Symbol)
	}

	if order.Qty > m.limits.MaxPositionSize {
		return 0, reject(ReasonQuantityExceeded,
			"qty=%d exceeds MAX_POSITION_SIZE=%d", order.Qty, m.limits.MaxPositionSize)
	}

	quote, err := m.quotes.GetQuote(ctx, order.Symbol)
	if err != nil {
		return 0, fmt.Errorf("fetching quote for %s: %w", order.Symbol, err)
	}
	if quote.Price == nil || *quote.Price == 0 {
		return 0, reject(ReasonPriceUnavailable, "Could not fetch latest price")
	}
	price := *quote.Price

	notional := float64(order.Qty) * price
	if order.Side == domain.OrderSideBuy && notional > m.limits.MaxPositionValue {
		return 0, reject(ReasonNotionalExceeded,
			"Order value $%s exceeds MAX_POSITION_VALUE $%s",
			humanize.FormatFloat("#,###.##", notional),
			humanize.FormatFloat("#,###.##", m.limits.MaxPositionValue))
	}

	return price, nil
}
