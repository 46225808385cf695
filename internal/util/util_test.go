package util

import "testing"

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		if l := NewLogger(level); l == nil {
			t.Errorf("NewLogger(%q) returned nil", level)
		}
	}
}
