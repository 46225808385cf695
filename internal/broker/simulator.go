package broker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"alpacamcp/internal/domain"
)

// Compile-time interface check.
var _ Broker = (*SimulatorBroker)(nil)

// SimulatorBroker implements the Broker interface in memory, without
// external API calls. It backs the test suite and local experimentation.
type SimulatorBroker struct {
	mu        sync.Mutex
	account   domain.Account
	prices    map[string]*float64
	positions []domain.Position
	nextID    int
	now       func() time.Time
}

// NewSimulatorBroker creates a SimulatorBroker with an active account and no
// positions or prices.
func NewSimulatorBroker() *SimulatorBroker {
	return &SimulatorBroker{
		account: domain.Account{
			Status:      "ACTIVE",
			Equity:      100000,
			Cash:        100000,
			BuyingPower: 200000,
		},
		prices: make(map[string]*float64),
		now:    time.Now,
	}
}

// Name returns "simulator".
func (b *SimulatorBroker) Name() string {
	return "simulator"
}

// SetPrice fixes the latest trade price served for a symbol.
func (b *SimulatorBroker) SetPrice(symbol string, price float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prices[strings.ToUpper(symbol)] = &price
}

// SetPriceUnavailable registers a symbol whose snapshot has no last trade.
func (b *SimulatorBroker) SetPriceUnavailable(symbol string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prices[strings.ToUpper(symbol)] = nil
}

// SetPositions replaces the open position list.
func (b *SimulatorBroker) SetPositions(positions []domain.Position) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.positions = append([]domain.Position(nil), positions...)
}

// GetQuote serves the registered price for a symbol. Unknown symbols fail
// the way the real API does.
func (b *SimulatorBroker) GetQuote(_ context.Context, symbol string) (domain.Quote, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	symbol = strings.ToUpper(symbol)
	price, ok := b.prices[symbol]
	if !ok {
		return domain.Quote{}, fmt.Errorf("no snapshot for %s", symbol)
	}
	return domain.Quote{Symbol: symbol, Price: price}, nil
}

// GetAccount returns the simulated account.
func (b *SimulatorBroker) GetAccount(_ context.Context) (domain.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.account, nil
}

// GetPositions returns a copy of the simulated positions.
func (b *SimulatorBroker) GetPositions(_ context.Context) ([]domain.Position, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.Position(nil), b.positions...), nil
}

// SubmitOrder accepts the order and fabricates a submitted result with a
// sequential order ID. It does not model fills or adjust positions.
func (b *SimulatorBroker) SubmitOrder(_ context.Context, order domain.OrderRequest) (domain.OrderResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	return domain.OrderResult{
		Status:    "submitted",
		OrderID:   fmt.Sprintf("sim-%d", b.nextID),
		Symbol:    order.Symbol,
		Qty:       order.Qty,
		Side:      string(order.Side),
		CreatedAt: b.now().Format(time.RFC3339Nano),
	}, nil
}

// ClosePosition removes the position for a symbol, failing when none exists.
func (b *SimulatorBroker) ClosePosition(_ context.Context, symbol string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	symbol = strings.ToUpper(symbol)
	for i, p := range b.positions {
		if p.Symbol == symbol {
			b.positions = append(b.positions[:i], b.positions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("position does not exist for %s", symbol)
}
