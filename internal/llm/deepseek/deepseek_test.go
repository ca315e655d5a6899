package deepseek

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sui-signal-bot/internal/store"
	"sui-signal-bot/internal/types"
)

const keyEnv = "TEST_DEEPSEEK_KEY"

func testAnalyst(t *testing.T, handler http.HandlerFunc) *Analyst {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv(keyEnv, "test-key")

	cfg := store.Defaults()
	cfg.LLM.Endpoint = srv.URL
	cfg.LLM.APIKeyEnv = keyEnv
	return New(cfg)
}

func completion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(b)
}

func TestVerdictParsesCompletion(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	a := testAnalyst(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(completion("Clearly bullish, expect higher prices. Support at $1.10. Consider a long entry.")))
	})

	px := types.PriceContext{Close: 1.2, ChangePct: 3.5, Volume: 500000}
	cond := types.TechnicalConditions{Uptrend: true, RSI: 62.4}

	v, err := a.Verdict(context.Background(), px, cond)
	if err != nil {
		t.Fatal(err)
	}
	if v.Sentiment != types.SentimentBullish {
		t.Errorf("Sentiment = %s, want bullish", v.Sentiment)
	}
	if v.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", v.Confidence)
	}
	if len(v.KeyLevels) != 1 || v.KeyLevels[0] != 1.10 {
		t.Errorf("KeyLevels = %v", v.KeyLevels)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody["model"] != store.Defaults().LLM.Model {
		t.Errorf("model = %v", gotBody["model"])
	}
	prompt := gotBody["messages"].([]any)[0].(map[string]any)["content"].(string)
	if !strings.Contains(prompt, "SUIUSDT") || !strings.Contains(prompt, "RSI: 62.4") {
		t.Errorf("prompt missing market context:\n%s", prompt)
	}
}

func TestVerdictIncludesHeadlines(t *testing.T) {
	var gotBody map[string]any
	a := testAnalyst(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(completion("neutral chop")))
	})

	px := types.PriceContext{Close: 1.2, Headlines: []string{"Sui DeFi volume hits record"}}
	if _, err := a.Verdict(context.Background(), px, types.TechnicalConditions{}); err != nil {
		t.Fatal(err)
	}

	prompt := gotBody["messages"].([]any)[0].(map[string]any)["content"].(string)
	if !strings.Contains(prompt, "Recent Headlines") || !strings.Contains(prompt, "Sui DeFi volume hits record") {
		t.Errorf("prompt missing headlines:\n%s", prompt)
	}
}

func TestVerdictHTTPError(t *testing.T) {
	a := testAnalyst(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := a.Verdict(context.Background(), types.PriceContext{}, types.TechnicalConditions{})
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected http error, got %v", err)
	}
}

func TestVerdictEmptyCompletion(t *testing.T) {
	a := testAnalyst(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completion("   ")))
	})

	_, err := a.Verdict(context.Background(), types.PriceContext{}, types.TechnicalConditions{})
	if err == nil {
		t.Fatal("expected error for empty completion")
	}
}

func TestVerdictMissingAPIKey(t *testing.T) {
	t.Setenv(keyEnv, "")
	cfg := store.Defaults()
	cfg.LLM.APIKeyEnv = keyEnv

	_, err := New(cfg).Verdict(context.Background(), types.PriceContext{}, types.TechnicalConditions{})
	if err == nil {
		t.Fatal("expected error when API key env is unset")
	}
}
