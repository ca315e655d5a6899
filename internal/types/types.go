package types

type Candle struct {
	Ts                          int64
	Open, High, Low, Close, Vol float64
}

// DayStats holds the 24h ticker statistics for the traded pair.
type DayStats struct {
	PriceChange    float64
	PriceChangePct float64
	High, Low      float64
	Volume         float64
	Trades         int64
}

// TechnicalConditions are the per-cycle boolean flags derived from the
// indicator series for the most recent bar. RSI is carried alongside so the
// sentiment prompt can include the raw value.
type TechnicalConditions struct {
	Uptrend       bool
	Downtrend     bool
	GoldenCross   bool
	DeathCross    bool
	RSIOversold   bool
	RSIOverbought bool
	HighVolume    bool
	RSI           float64
}

type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// SentimentVerdict is the parsed outcome of one LLM market opinion.
type SentimentVerdict struct {
	Sentiment       Sentiment `json:"sentiment"`
	Confidence      float64   `json:"confidence"`
	KeyLevels       []float64 `json:"key_levels,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty"`
	Raw             string    `json:"-"`
}

// PriceContext is the market snapshot handed to the sentiment provider.
type PriceContext struct {
	Close     float64
	ChangePct float64
	Volume    float64
	Headlines []string
}

type TradeTargets struct {
	StopLoss       float64 `json:"stop_loss"`
	TakeProfit     float64 `json:"take_profit"`
	RiskDistance   float64 `json:"risk_distance"`
	RewardDistance float64 `json:"reward_distance"`
}

type Direction string

const (
	SignalBuy     Direction = "buy"
	SignalSell    Direction = "sell"
	SignalNeutral Direction = "neutral"
)

type Entry struct {
	Price  float64 `json:"price"`
	Type   string  `json:"type"`
	Timing string  `json:"timing"`
}

type TechnicalFactors struct {
	Trend           string `json:"trend"`
	RSICondition    string `json:"rsi_condition"`
	VolumeCondition string `json:"volume_condition"`
}

type AIAnalysis struct {
	Sentiment       Sentiment `json:"sentiment"`
	Confidence      float64   `json:"confidence"`
	Recommendations []string  `json:"recommendations,omitempty"`
}

// TradingSignal is the one artifact produced per evaluation cycle. A neutral
// signal carries only timestamp, message and confidence; a directional signal
// always carries entry and targets.
type TradingSignal struct {
	Timestamp        string            `json:"timestamp"`
	Signal           Direction         `json:"signal"`
	Message          string            `json:"message,omitempty"`
	CurrentPrice     float64           `json:"current_price,omitempty"`
	Confidence       float64           `json:"confidence"`
	Entry            *Entry            `json:"entry,omitempty"`
	Targets          *TradeTargets     `json:"targets,omitempty"`
	RiskRewardRatio  float64           `json:"risk_reward_ratio,omitempty"`
	KeyLevels        []float64         `json:"key_levels,omitempty"`
	TechnicalFactors *TechnicalFactors `json:"technical_factors,omitempty"`
	AIAnalysis       *AIAnalysis       `json:"ai_analysis,omitempty"`
}
