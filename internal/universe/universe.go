// Package universe loads the optional allow-list of tradeable symbols.
package universe

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Universe is the set of symbols orders may be placed in. An empty set means
// the restriction is disabled and every symbol is allowed. The set is built
// once at startup and never mutated afterwards.
type Universe struct {
	symbols map[string]struct{}
}

// Load reads the allow-list file at path, one symbol per line. Symbols are
// trimmed and uppercased; blank lines are skipped. A missing file is not an
// error: it yields an empty (disabled) universe.
func Load(path string) (*Universe, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("no universe file found; all symbols will be allowed", "path", path)
			return &Universe{symbols: map[string]struct{}{}}, nil
		}
		return nil, fmt.Errorf("opening universe file: %w", err)
	}
	defer f.Close()

	symbols := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		sym := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if sym == "" {
			continue
		}
		symbols[sym] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading universe file: %w", err)
	}

	return &Universe{symbols: symbols}, nil
}

// FromSymbols builds a universe from an explicit symbol list. Used by tests
// and callers that do not read from a file.
func FromSymbols(symbols ...string) *Universe {
	set := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		set[strings.ToUpper(strings.TrimSpace(s))] = struct{}{}
	}
	return &Universe{symbols: set}
}

// Allows reports whether orders in symbol pass the allow-list check. The
// symbol is uppercased before the lookup.
func (u *Universe) Allows(symbol string) bool {
	if len(u.symbols) == 0 {
		return true
	}
	_, ok := u.symbols[strings.ToUpper(symbol)]
	return ok
}

// Size returns the number of symbols in the allow-list. Zero means the
// restriction is disabled.
func (u *Universe) Size() int {
	return len(u.symbols)
}
