package broker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"

	"alpacamcp/internal/domain"
)

// Compile-time interface check.
var _ Broker = (*AlpacaBroker)(nil)

// AlpacaBroker implements the Broker interface using the Alpaca trading and
// market-data APIs. The SDK clients carry their own HTTP plumbing, so the
// context arguments are not threaded through.
type AlpacaBroker struct {
	trading *alpaca.Client
	data    *marketdata.Client
}

// NewAlpacaBroker creates an AlpacaBroker configured with the given
// credentials and trading API endpoint. Market data always goes to the
// default data endpoint regardless of paper/live base URL.
func NewAlpacaBroker(apiKey, apiSecret, baseURL string) *AlpacaBroker {
	return &AlpacaBroker{
		trading: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   baseURL,
		}),
		data: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
	}
}

// Name returns "alpaca".
func (b *AlpacaBroker) Name() string {
	return "alpaca"
}

// GetQuote fetches the symbol snapshot and extracts the latest trade price.
func (b *AlpacaBroker) GetQuote(_ context.Context, symbol string) (domain.Quote, error) {
	symbol = strings.ToUpper(symbol)

	snap, err := b.data.GetSnapshot(symbol, marketdata.GetSnapshotRequest{})
	if err != nil {
		return domain.Quote{}, fmt.Errorf("GetSnapshot %s: %w", symbol, err)
	}

	quote := domain.Quote{Symbol: symbol}
	if snap != nil && snap.LatestTrade != nil {
		price := snap.LatestTrade.Price
		quote.Price = &price
	}
	return quote, nil
}

// GetAccount returns the current account information.
func (b *AlpacaBroker) GetAccount(_ context.Context) (domain.Account, error) {
	acct, err := b.trading.GetAccount()
	if err != nil {
		return domain.Account{}, fmt.Errorf("GetAccount: %w", err)
	}

	return domain.Account{
		Status:      string(acct.Status),
		Equity:      acct.Equity.InexactFloat64(),
		Cash:        acct.Cash.InexactFloat64(),
		BuyingPower: acct.BuyingPower.InexactFloat64(),
	}, nil
}

// GetPositions returns all open positions in the order Alpaca reports them.
func (b *AlpacaBroker) GetPositions(_ context.Context) ([]domain.Position, error) {
	positions, err := b.trading.GetPositions()
	if err != nil {
		return nil, fmt.Errorf("GetPositions: %w", err)
	}

	out := make([]domain.Position, 0, len(positions))
	for _, p := range positions {
		out = append(out, domain.Position{
			Symbol:         p.Symbol,
			Qty:            p.Qty.IntPart(),
			CurrentPrice:   derefDecimal(p.CurrentPrice),
			MarketValue:    derefDecimal(p.MarketValue),
			UnrealizedPL:   derefDecimal(p.UnrealizedPL),
			UnrealizedPLPC: derefDecimal(p.UnrealizedPLPC),
		})
	}
	return out, nil
}

// SubmitOrder places a market order.
func (b *AlpacaBroker) SubmitOrder(_ context.Context, order domain.OrderRequest) (domain.OrderResult, error) {
	qty := decimal.NewFromInt(order.Qty)

	placed, err := b.trading.PlaceOrder(alpaca.PlaceOrderRequest{
		Symbol:      order.Symbol,
		Qty:         &qty,
		Side:        alpaca.Side(order.Side),
		Type:        alpaca.Market,
		TimeInForce: alpaca.TimeInForce(order.TimeInForce),
	})
	if err != nil {
		return domain.OrderResult{}, fmt.Errorf("PlaceOrder %s: %w", order.Symbol, err)
	}

	result := domain.OrderResult{
		Status:    "submitted",
		OrderID:   placed.ID,
		Symbol:    placed.Symbol,
		Side:      string(placed.Side),
		CreatedAt: placed.CreatedAt.Format(time.RFC3339Nano),
	}
	if placed.Qty != nil {
		result.Qty = placed.Qty.IntPart()
	}
	return result, nil
}

// ClosePosition liquidates the entire position for a symbol.
func (b *AlpacaBroker) ClosePosition(_ context.Context, symbol string) error {
	symbol = strings.ToUpper(symbol)
	if _, err := b.trading.ClosePosition(symbol, alpaca.ClosePositionRequest{}); err != nil {
		return fmt.Errorf("ClosePosition %s: %w", symbol, err)
	}
	return nil
}

func derefDecimal(d *decimal.Decimal) float64 {
	if d == nil {
		return 0
	}
	return d.InexactFloat64()
}
