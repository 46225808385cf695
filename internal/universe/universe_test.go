package universe

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "universe.txt")
	content := "aapl\nMSFT\n\n  googl  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing universe file: %v", err)
	}

	u, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if u.Size() != 3 {
		t.Errorf("Size() = %d, want %d", u.Size(), 3)
	}
	for _, sym := range []string{"AAPL", "MSFT", "GOOGL", "aapl"} {
		if !u.Allows(sym) {
			t.Errorf("Allows(%q) = false, want true", sym)
		}
	}
	if u.Allows("TSLA") {
		t.Error("Allows(\"TSLA\") = true, want false")
	}
}

func TestLoadMissingFile(t *testing.T) {
	u, err := Load(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if err != nil {
		t.Fatalf("Load() on a missing file returned error: %v", err)
	}

	// Missing file disables the restriction entirely.
	if u.Size() != 0 {
		t.Errorf("Size() = %d, want 0", u.Size())
	}
	if !u.Allows("ANYTHING") {
		t.Error("empty universe should allow every symbol")
	}
}

func TestFromSymbols(t *testing.T) {
	u := FromSymbols("spy", "QQQ")
	if !u.Allows("SPY") || !u.Allows("qqq") {
		t.Error("FromSymbols should uppercase on both sides of the lookup")
	}
	if u.Allows("IWM") {
		t.Error("Allows(\"IWM\") = true, want false")
	}
}
