package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Symbol                    string  `yaml:"symbol"`
	Timeframe                 string  `yaml:"timeframe"`
	LookbackDays              int     `yaml:"lookback_days"`
	PollSeconds               int     `yaml:"poll_seconds"`
	RiskRewardRatio           float64 `yaml:"risk_reward_ratio"`
	SignalConfidenceThreshold float64 `yaml:"signal_confidence_threshold"`
	MinCandles                int     `yaml:"min_candles"`
	SignalDir                 string  `yaml:"signal_dir"`
	Indicators                struct {
		FastEMA         int     `yaml:"fast_ema"`
		SlowEMA         int     `yaml:"slow_ema"`
		TrendEMA        int     `yaml:"trend_ema"`
		RSIPeriod       int     `yaml:"rsi_period"`
		VolumeWindow    int     `yaml:"volume_window"`
		HighVolumeRatio float64 `yaml:"high_volume_ratio"`
	} `yaml:"indicators"`
	LLM struct {
		Endpoint    string  `yaml:"endpoint"`
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
		TopP        float32 `yaml:"top_p"`
		APIKeyEnv   string  `yaml:"api_key_env"`
	} `yaml:"llm"`
	News struct {
		Enabled      bool   `yaml:"enabled"`
		URL          string `yaml:"url"`
		MaxHeadlines int    `yaml:"max_headlines"`
	} `yaml:"news"`
}

// Defaults returns the documented fallback configuration. A missing or
// malformed config file degrades to these values rather than aborting.
func Defaults() *Config {
	c := &Config{
		Symbol:                    "SUIUSDT",
		Timeframe:                 "1h",
		LookbackDays:              30,
		PollSeconds:               300,
		RiskRewardRatio:           2.0,
		SignalConfidenceThreshold: 0.7,
		MinCandles:                50,
		SignalDir:                 "signals",
	}
	c.Indicators.FastEMA = 20
	c.Indicators.SlowEMA = 50
	c.Indicators.TrendEMA = 200
	c.Indicators.RSIPeriod = 14
	c.Indicators.VolumeWindow = 20
	c.Indicators.HighVolumeRatio = 1.5
	c.LLM.Endpoint = "https://api.hyperbolic.xyz/v1/chat/completions"
	c.LLM.Model = "deepseek-ai/DeepSeek-V3"
	c.LLM.MaxTokens = 512
	c.LLM.Temperature = 0.1
	c.LLM.TopP = 0.9
	c.LLM.APIKeyEnv = "DEEPSEEK_API_KEY"
	c.News.URL = "https://cointelegraph.com/tags/sui"
	c.News.MaxHeadlines = 5
	return c
}

// Load reads the YAML config at path on top of the defaults. On read or parse
// failure it returns the defaults together with the error so the caller can
// log and keep going.
func Load(path string) (*Config, error) {
	c := Defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		return Defaults(), fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return Defaults(), fmt.Errorf("parse config: %w", err)
	}
	c.sanitize()
	return c, nil
}

// sanitize resets any non-positive or empty value back to its default.
func (c *Config) sanitize() {
	d := Defaults()
	if c.Symbol == "" {
		c.Symbol = d.Symbol
	}
	if c.Timeframe == "" {
		c.Timeframe = d.Timeframe
	}
	if c.LookbackDays <= 0 {
		c.LookbackDays = d.LookbackDays
	}
	if c.PollSeconds <= 0 {
		c.PollSeconds = d.PollSeconds
	}
	if c.RiskRewardRatio <= 0 {
		c.RiskRewardRatio = d.RiskRewardRatio
	}
	if c.SignalConfidenceThreshold <= 0 {
		c.SignalConfidenceThreshold = d.SignalConfidenceThreshold
	}
	if c.MinCandles <= 0 {
		c.MinCandles = d.MinCandles
	}
	if c.SignalDir == "" {
		c.SignalDir = d.SignalDir
	}
	if c.Indicators.FastEMA <= 0 {
		c.Indicators.FastEMA = d.Indicators.FastEMA
	}
	if c.Indicators.SlowEMA <= 0 {
		c.Indicators.SlowEMA = d.Indicators.SlowEMA
	}
	if c.Indicators.TrendEMA <= 0 {
		c.Indicators.TrendEMA = d.Indicators.TrendEMA
	}
	if c.Indicators.RSIPeriod <= 0 {
		c.Indicators.RSIPeriod = d.Indicators.RSIPeriod
	}
	if c.Indicators.VolumeWindow <= 0 {
		c.Indicators.VolumeWindow = d.Indicators.VolumeWindow
	}
	if c.Indicators.HighVolumeRatio <= 0 {
		c.Indicators.HighVolumeRatio = d.Indicators.HighVolumeRatio
	}
	if c.LLM.Endpoint == "" {
		c.LLM.Endpoint = d.LLM.Endpoint
	}
	if c.LLM.Model == "" {
		c.LLM.Model = d.LLM.Model
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = d.LLM.MaxTokens
	}
	if c.LLM.Temperature <= 0 {
		c.LLM.Temperature = d.LLM.Temperature
	}
	if c.LLM.TopP <= 0 {
		c.LLM.TopP = d.LLM.TopP
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = d.LLM.APIKeyEnv
	}
	if c.News.URL == "" {
		c.News.URL = d.News.URL
	}
	if c.News.MaxHeadlines <= 0 {
		c.News.MaxHeadlines = d.News.MaxHeadlines
	}
}
