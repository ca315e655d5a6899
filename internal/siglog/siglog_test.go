package siglog

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sui-signal-bot/internal/types"
)

func TestWriteSignalFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "signals")
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	sig := &types.TradingSignal{
		Timestamp:    now.Format(time.RFC3339),
		Signal:       types.SignalBuy,
		CurrentPrice: 1.23,
		Confidence:   0.85,
	}

	path, err := Write(dir, now, sig)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "signal_20260314_150926.json" {
		t.Errorf("unexpected file name %s", filepath.Base(path))
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got types.TradingSignal
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("artifact is not valid JSON: %v", err)
	}
	if got.Signal != types.SignalBuy || got.Confidence != 0.85 {
		t.Errorf("round trip mismatch: %+v", got)
	}

	// No temp files may survive the rename.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestWriteNeutralOmitsTargets(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	sig := &types.TradingSignal{
		Timestamp: now.Format(time.RFC3339),
		Signal:    types.SignalNeutral,
		Message:   "No clear trading opportunity",
	}

	path, err := Write(dir, now, sig)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"targets", "entry", "current_price"} {
		if strings.Contains(string(b), field) {
			t.Errorf("neutral artifact should omit %q:\n%s", field, b)
		}
	}
}

func TestAppendDecision(t *testing.T) {
	dir := t.TempDir()

	for i := 0; i < 2; i++ {
		err := AppendDecision(dir, DecisionEntry{
			Symbol:     "SUIUSDT",
			Signal:     "buy",
			Confidence: 0.8,
			Price:      1.2,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	p := filepath.Join(dir, "decisions", time.Now().Format("2006-01-02")+".txt")
	f, err := os.Open(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	lines := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e DecisionEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines+1, err)
		}
		if e.Symbol != "SUIUSDT" || e.Time == "" {
			t.Errorf("unexpected entry %+v", e)
		}
		lines++
	}
	if lines != 2 {
		t.Errorf("expected 2 lines, got %d", lines)
	}
}

func TestCompressOlder(t *testing.T) {
	dir := t.TempDir()
	if err := AppendDecision(dir, DecisionEntry{Symbol: "SUIUSDT", Signal: "neutral"}); err != nil {
		t.Fatal(err)
	}

	p := filepath.Join(dir, "decisions", time.Now().Format("2006-01-02")+".txt")
	old := time.Now().AddDate(0, 0, -3)
	if err := os.Chtimes(p, old, old); err != nil {
		t.Fatal(err)
	}

	if err := CompressOlder(dir, 1); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Error("stale log should be removed after compression")
	}

	f, err := os.Open(p + ".gz")
	if err != nil {
		t.Fatalf("expected compressed log: %v", err)
	}
	defer f.Close()
	gr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	b, err := io.ReadAll(gr)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "SUIUSDT") {
		t.Errorf("compressed content mismatch: %s", b)
	}
}

func TestCompressOlderKeepsFresh(t *testing.T) {
	dir := t.TempDir()
	if err := AppendDecision(dir, DecisionEntry{Symbol: "SUIUSDT", Signal: "neutral"}); err != nil {
		t.Fatal(err)
	}

	if err := CompressOlder(dir, 7); err != nil {
		t.Fatal(err)
	}

	p := filepath.Join(dir, "decisions", time.Now().Format("2006-01-02")+".txt")
	if _, err := os.Stat(p); err != nil {
		t.Errorf("fresh log should be untouched: %v", err)
	}
}
