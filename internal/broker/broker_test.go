package broker

import (
	"context"
	"testing"

	"alpacamcp/internal/domain"
)

func TestAlpacaBrokerName(t *testing.T) {
	b := NewAlpacaBroker("key", "secret", "https://paper-api.alpaca.markets")
	if got := b.Name(); got != "alpaca" {
		t.Errorf("AlpacaBroker.Name() = %q, want %q", got, "alpaca")
	}
}

func TestSimulatorBrokerName(t *testing.T) {
	b := NewSimulatorBroker()
	if got := b.Name(); got != "simulator" {
		t.Errorf("SimulatorBroker.Name() = %q, want %q", got, "simulator")
	}
}

func TestSimulatorQuotes(t *testing.T) {
	ctx := context.Background()
	b := NewSimulatorBroker()
	b.SetPrice("aapl", 187.5)
	b.SetPriceUnavailable("HALT")

	q, err := b.GetQuote(ctx, "AAPL")
	if err != nil {
		t.Fatalf("GetQuote returned error: %v", err)
	}
	if q.Price == nil || *q.Price != 187.5 {
		t.Errorf("GetQuote price = %v, want 187.5", q.Price)
	}

	q, err = b.GetQuote(ctx, "HALT")
	if err != nil {
		t.Fatalf("GetQuote returned error: %v", err)
	}
	if q.Price != nil {
		t.Errorf("GetQuote price = %v, want nil for a snapshot without a trade", *q.Price)
	}

	if _, err := b.GetQuote(ctx, "UNKNOWN"); err == nil {
		t.Error("GetQuote for an unregistered symbol should fail")
	}
}

func TestSimulatorSubmitOrder(t *testing.T) {
	ctx := context.Background()
	b := NewSimulatorBroker()

	res, err := b.SubmitOrder(ctx, domain.OrderRequest{
		Symbol: "AAPL", Qty: 5, Side: domain.OrderSideBuy, TimeInForce: domain.TimeInForceDay,
	})
	if err != nil {
		t.Fatalf("SubmitOrder returned error: %v", err)
	}
	if res.Status != "submitted" {
		t.Errorf("Status = %q, want %q", res.Status, "submitted")
	}
	if res.OrderID == "" {
		t.Error("OrderID is empty")
	}
	if res.Qty != 5 || res.Side != "buy" || res.Symbol != "AAPL" {
		t.Errorf("unexpected order result: %+v", res)
	}
	if res.CreatedAt == "" {
		t.Error("CreatedAt is empty")
	}
}

func TestSimulatorClosePosition(t *testing.T) {
	ctx := context.Background()
	b := NewSimulatorBroker()
	b.SetPositions([]domain.Position{
		{Symbol: "AAPL", Qty: 10, MarketValue: 1000},
		{Symbol: "MSFT", Qty: 5, MarketValue: 500},
	})

	if err := b.ClosePosition(ctx, "aapl"); err != nil {
		t.Fatalf("ClosePosition returned error: %v", err)
	}

	positions, err := b.GetPositions(ctx)
	if err != nil {
		t.Fatalf("GetPositions returned error: %v", err)
	}
	if len(positions) != 1 || positions[0].Symbol != "MSFT" {
		t.Errorf("positions after close = %+v, want only MSFT", positions)
	}

	if err := b.ClosePosition(ctx, "AAPL"); err == nil {
		t.Error("closing an absent position should fail")
	}
}
