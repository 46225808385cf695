// Package domain defines the core data types shared across the alpacamcp
// adapter: quotes, account snapshots, positions, and order shapes.
package domain

import "strings"

// OrderSide is the direction of an order.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

// TimeInForce is the order lifetime policy.
type TimeInForce string

const (
	TimeInForceDay TimeInForce = "day"
	TimeInForceGTC TimeInForce = "gtc"
)

// Quote is the latest trade price for a symbol. Price is nil when the
// upstream snapshot carried no last trade.
type Quote struct {
	Symbol string   `json:"symbol"`
	Price  *float64 `json:"price"`
}

// Account is a snapshot of the brokerage account's financial metrics.
type Account struct {
	Status      string  `json:"status"`
	Equity      float64 `json:"equity"`
	Cash        float64 `json:"cash"`
	BuyingPower float64 `json:"buying_power"`
}

// Position is a single open position. UnrealizedPLPC is a fraction, not a
// percent; multiply by 100 before displaying it as a percentage.
type Position struct {
	Symbol         string  `json:"symbol"`
	Qty            int64   `json:"qty"`
	CurrentPrice   float64 `json:"current_price"`
	MarketValue    float64 `json:"market_value"`
	UnrealizedPL   float64 `json:"unrealized_pl"`
	UnrealizedPLPC float64 `json:"unrealized_plpc"`
}

// OrderRequest is a proposed market order as received from a tool call.
type OrderRequest struct {
	Symbol      string      `json:"symbol"`
	Qty         int64       `json:"qty"`
	Side        OrderSide   `json:"side"`
	TimeInForce TimeInForce `json:"time_in_force"`
}

// Normalize uppercases the symbol, lowercases the enums, and defaults the
// time in force to day. Call it before any comparison or brokerage call.
func (o *OrderRequest) Normalize() {
	o.Symbol = strings.ToUpper(strings.TrimSpace(o.Symbol))
	o.Side = OrderSide(strings.ToLower(string(o.Side)))
	o.TimeInForce = TimeInForce(strings.ToLower(string(o.TimeInForce)))
	if o.TimeInForce == "" {
		o.TimeInForce = TimeInForceDay
	}
}

// OrderResult describes an order accepted by the brokerage.
type OrderResult struct {
	Status    string `json:"status"`
	OrderID   string `json:"order_id"`
	Symbol    string `json:"symbol"`
	Qty       int64  `json:"qty"`
	Side      string `json:"side"`
	CreatedAt string `json:"created_at"`
}
