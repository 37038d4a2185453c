package recorder

// QuoteSnapshot is one applied stock data fetch.
type QuoteSnapshot struct {
	CycleID           string
	Ticker            string
	CurrentPrice      float64
	PredictedPrice    float64
	DayChangePercent  float64
	ProfitLossPercent float64
	SignalLabel       string
	Silent            bool
}

// FetchFailure is a stock data fetch that ended in an error.
type FetchFailure struct {
	CycleID string
	Ticker  string
	Kind    string // "unreachable", "status", "application" or "decode"
	Message string
}

// TradeEvent records an entry capture or a clear.
type TradeEvent struct {
	Ticker     string
	Action     string // "ENTRY", "CLEAR" or "CLEAR_ALL"
	EntryPrice float64
}

// Recorder persists dashboard history for later analysis.
type Recorder interface {
	RecordQuote(snap *QuoteSnapshot) error
	RecordFetchFailure(evt *FetchFailure) error
	RecordTradeEvent(evt *TradeEvent) error
	Close() error
}
