// Package portfolio reduces a list of open positions into summary
// statistics and a human-readable report.
package portfolio

import (
	"fmt"
	"strings"

	"alpacamcp/internal/domain"
)

// EmptyReport is the report text for an account with no open positions.
const EmptyReport = "No open positions."

// Summary holds the aggregate statistics over a set of positions plus the
// rendered report. TotalPNLPct is the portfolio-level return on the invested
// base; it is a different percentage base from any single position's
// unrealized_plpc and the two must not be conflated.
type Summary struct {
	TotalValue  float64 `json:"total_value"`
	TotalPNL    float64 `json:"total_pnl"`
	Invested    float64 `json:"invested"`
	TotalPNLPct float64 `json:"total_pnl_pct"`
	Positions   int     `json:"positions"`
	Winners     int     `json:"winners"`
	Losers      int     `json:"losers"`
	Report      string  `json:"-"`
}

// Summarize aggregates positions in the order given; it never sorts. An
// empty input is a terminal case, not an error: it yields zeroed fields and
// the EmptyReport text.
func Summarize(positions []domain.Position) Summary {
	if len(positions) == 0 {
		return Summary{Report: EmptyReport}
	}

	var s Summary
	s.Positions = len(positions)
	for _, p := range positions {
		s.TotalValue += p.MarketValue
		s.TotalPNL += p.UnrealizedPL
		switch {
		case p.UnrealizedPL > 0:
			s.Winners++
		case p.UnrealizedPL < 0:
			s.Losers++
		}
		// Exactly-zero P&L counts as neither winner nor loser.
	}

	s.Invested = s.TotalValue - s.TotalPNL
	if s.Invested > 0 {
		s.TotalPNLPct = s.TotalPNL / s.Invested * 100
	}
	// A zero or negative invested base reports 0.0 rather than failing.

	s.Report = renderReport(positions, s)
	return s
}

func renderReport(positions []domain.Position, s Summary) string {
	lines := []string{
		"Portfolio summary:",
		"",
		fmt.Sprintf("Total value: %s", FormatMoney(s.TotalValue)),
		fmt.Sprintf("Total P&L:   %s (%s)", FormatMoney(s.TotalPNL), FormatPercent(s.TotalPNLPct)),
		fmt.Sprintf("Positions:   %d (winners: %d, losers: %d)", s.Positions, s.Winners, s.Losers),
		"",
		"Per-position:",
	}

	for _, p := range positions {
		// Per-position percent is the position's own plpc fraction × 100.
		lines = append(lines, fmt.Sprintf("- %s: value=%s, P&L=%s (%s)",
			p.Symbol,
			FormatMoney(p.MarketValue),
			FormatMoney(p.UnrealizedPL),
			FormatPercent(p.UnrealizedPLPC*100)))
	}

	return strings.Join(lines, "\n")
}
