// Package deepseek implements the sentiment Analyst against an OpenAI-style
// chat completions endpoint serving DeepSeek models.
package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"sui-signal-bot/internal/llm/opinion"
	"sui-signal-bot/internal/store"
	"sui-signal-bot/internal/trace"
	"sui-signal-bot/internal/types"
)

type Analyst struct {
	cfg    *store.Config
	client *http.Client
}

func New(cfg *store.Config) *Analyst {
	return &Analyst{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Verdict asks the model for a market opinion and parses the free text into a
// structured verdict. Any transport or API failure is returned as-is; the
// engine treats it as a skipped cycle.
func (a *Analyst) Verdict(ctx context.Context, px types.PriceContext, cond types.TechnicalConditions) (types.SentimentVerdict, error) {
	ctx, span := trace.StartSpan(ctx, "deepseek-api-call")
	defer span.End()

	apiKey := os.Getenv(a.cfg.LLM.APIKeyEnv)
	if apiKey == "" {
		return types.SentimentVerdict{}, fmt.Errorf("%s missing", a.cfg.LLM.APIKeyEnv)
	}

	body := map[string]any{
		"messages":    []map[string]string{{"role": "user", "content": a.buildPrompt(px, cond)}},
		"model":       a.cfg.LLM.Model,
		"max_tokens":  a.cfg.LLM.MaxTokens,
		"temperature": a.cfg.LLM.Temperature,
		"top_p":       a.cfg.LLM.TopP,
	}
	bb, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", a.cfg.LLM.Endpoint, bytes.NewReader(bb))
	if err != nil {
		return types.SentimentVerdict{}, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return types.SentimentVerdict{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return types.SentimentVerdict{}, fmt.Errorf("deepseek http %d", resp.StatusCode)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return types.SentimentVerdict{}, err
	}
	if len(r.Choices) == 0 {
		return types.SentimentVerdict{}, errors.New("no choices")
	}

	content := strings.TrimSpace(r.Choices[0].Message.Content)
	if content == "" {
		return types.SentimentVerdict{}, errors.New("empty completion")
	}

	return opinion.Parse(content), nil
}

func (a *Analyst) buildPrompt(px types.PriceContext, cond types.TechnicalConditions) string {
	trend := "bearish"
	if cond.Uptrend {
		trend = "bullish"
	}
	crossover := "No"
	if cond.GoldenCross {
		crossover = "Yes"
	}
	volume := "normal"
	if cond.HighVolume {
		volume = "high"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Analyze the current market conditions for %s:

Current Price: $%v
24h Change: %v%%
Volume: %v

Technical Indicators:
- Trend: %s
- RSI: %.1f
- MA Crossover: %s
- Volume: %s
`, a.cfg.Symbol, px.Close, px.ChangePct, px.Volume, trend, cond.RSI, crossover, volume)

	if len(px.Headlines) > 0 {
		b.WriteString("\nRecent Headlines:\n")
		for _, h := range px.Headlines {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}

	b.WriteString(`
Please provide:
1. Market sentiment analysis
2. Key support and resistance levels
3. Short-term price prediction
4. Risk assessment
5. Recommended trading strategy`)

	return b.String()
}
