package model

// NewsArticle is a single entry from /api/news.
type NewsArticle struct {
	Headline  string  `json:"headline"`
	Summary   string  `json:"summary"`
	Source    string  `json:"source"`
	URL       string  `json:"url"`
	Image     string  `json:"image"`
	Timestamp float64 `json:"timestamp"` // unix seconds
}

// NewsResponse is the /api/news envelope.
type NewsResponse struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	News    []NewsArticle `json:"news"`
}

// Sentiment is the aggregated news sentiment for a ticker.
type Sentiment struct {
	Label          string  `json:"sentiment"`
	BullishPercent float64 `json:"bullish_percent"`
	BearishPercent float64 `json:"bearish_percent"`
}

// SentimentResponse is the /api/sentiment envelope.
type SentimentResponse struct {
	Success   bool       `json:"success"`
	Error     string     `json:"error,omitempty"`
	Sentiment *Sentiment `json:"sentiment"`
}

// Oscillator is an indicator with a recent trend (RSI, MACD).
type Oscillator struct {
	Value      float64   `json:"value"`
	Signal     string    `json:"signal,omitempty"`
	TrendData  []float64 `json:"trend_data"`
	TrendDates []string  `json:"trend_dates"`
	SignalData []float64 `json:"signal_data,omitempty"`
}

// Level is a single-value indicator (EMA).
type Level struct {
	Value  float64 `json:"value"`
	Signal string  `json:"signal,omitempty"`
}

// Indicators groups the values returned by /api/technical.
type Indicators struct {
	RSI  *Oscillator `json:"RSI"`
	EMA  *Level      `json:"EMA"`
	MACD *Oscillator `json:"MACD"`
}

// TechnicalResponse is the /api/technical envelope.
type TechnicalResponse struct {
	Success    bool        `json:"success"`
	Error      string      `json:"error,omitempty"`
	Indicators *Indicators `json:"indicators"`
}
