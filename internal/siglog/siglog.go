// Package siglog persists the per-cycle signal artifacts: one JSON file per
// evaluation cycle plus an append-only daily decision log.
package siglog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"sui-signal-bot/internal/types"
)

var mu sync.Mutex

// DecisionEntry is one line of the daily decision log.
type DecisionEntry struct {
	Time       string    `json:"time"`
	Symbol     string    `json:"symbol"`
	Signal     string    `json:"signal"`
	Confidence float64   `json:"confidence"`
	Price      float64   `json:"price"`
	BullScore  float64   `json:"bull_score"`
	BearScore  float64   `json:"bear_score"`
	Sentiment  string    `json:"sentiment"`
	Timing     string    `json:"timing,omitempty"`
	KeyLevels  []float64 `json:"key_levels,omitempty"`
}

// Write stores the cycle's signal as an indented JSON file named by the cycle
// timestamp. The file is written to a temp name and renamed so an interrupted
// process never leaves a partial artifact.
func Write(dir string, now time.Time, sig *types.TradingSignal) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	b, err := json.MarshalIndent(sig, "", "  ")
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("signal_%s.json", now.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, name+".tmp*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return path, nil
}

// AppendDecision appends one JSON line to the day's decision log.
func AppendDecision(dir string, e DecisionEntry) error {
	mu.Lock()
	defer mu.Unlock()

	now := time.Now()
	e.Time = now.Format("2006-01-02 15:04:05")
	p := filepath.Join(dir, "decisions", now.Format("2006-01-02")+".txt")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	b, _ := json.Marshal(e)
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips decision logs older than retentionDays. Signal JSON
// artifacts are left alone; retention of those is out of scope.
func CompressOlder(dir string, retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	return filepath.WalkDir(filepath.Join(dir, "decisions"), func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(p) != ".txt" {
			return nil
		}
		info, err := os.Stat(p)
		if err != nil || !info.ModTime().Before(cutoff) {
			return nil
		}

		gz := p + ".gz"
		if _, err := os.Stat(gz); err == nil {
			return os.Remove(p)
		}

		in, err := os.Open(p)
		if err != nil {
			return nil
		}
		defer in.Close()

		out, err := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil
		}
		gw := gzip.NewWriter(out)
		if _, err := io.Copy(gw, in); err != nil {
			gw.Close()
			out.Close()
			return nil
		}
		if err := gw.Close(); err != nil {
			out.Close()
			return nil
		}
		if err := out.Close(); err != nil {
			return nil
		}
		return os.Remove(p)
	})
}
