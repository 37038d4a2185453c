package model

// StockData is the /api/stock_data payload. A new value replaces the old one
// wholesale on every fetch; nothing mutates it after decoding.
type StockData struct {
	Success           bool           `json:"success"`
	Error             string         `json:"error,omitempty"`
	Ticker            string         `json:"ticker"`
	CompanyName       string         `json:"company_name"`
	CurrentPrice      float64        `json:"current_price"`
	PredictedPrice    float64        `json:"predicted_price"`
	DayChange         float64        `json:"day_change"`
	DayChangePercent  float64        `json:"day_change_percent"`
	ProfitLoss        float64        `json:"profit_loss"`
	ProfitLossPercent float64        `json:"profit_loss_percent"`
	Volume            float64        `json:"volume"`
	MarketCap         any            `json:"market_cap"` // number or "N/A"
	PERatio           any            `json:"pe_ratio"`   // number or "N/A"
	Timestamp         string         `json:"timestamp"`
	ChartData         ChartData      `json:"chart_data"`
	TechnicalChart    TechnicalChart `json:"technical_chart"`
	Predictions       []Prediction   `json:"predictions"`
}

// ChartData holds the historical and forecast line for the main price chart.
type ChartData struct {
	Dates          []string  `json:"dates"`
	Prices         []float64 `json:"prices"`
	FutureDates    []string  `json:"future_dates"`
	FuturePrices   []float64 `json:"future_prices"`
	PredictedDate  string    `json:"predicted_date"`
	PredictedPrice *float64  `json:"predicted_price"`
}

// TechnicalChart carries raw candle, volume and moving-average records. The
// record shapes vary between backend versions, so they stay untyped until the
// series package normalizes them.
type TechnicalChart struct {
	Candles        []any          `json:"candles"`
	Volumes        []any          `json:"volumes"`
	MovingAverages MovingAverages `json:"moving_averages"`
}

// MovingAverages are the optional overlays for the candlestick chart.
type MovingAverages struct {
	SMA20 []any `json:"sma20"`
	SMA50 []any `json:"sma50"`
}

// Prediction is one forecast day.
type Prediction struct {
	Day               int     `json:"day"`
	Date              string  `json:"date"`
	DayName           string  `json:"day_name"`
	Price             float64 `json:"price"`
	ProfitLoss        float64 `json:"profit_loss"`
	ProfitLossPercent float64 `json:"profit_loss_percent"`
	IsProfit          bool    `json:"is_profit"`
}

// IntradayData is the /api/intraday payload: parallel arrays per bar.
type IntradayData struct {
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	Timestamps []any     `json:"timestamps"`
	Open       []float64 `json:"open"`
	High       []float64 `json:"high"`
	Low        []float64 `json:"low"`
	Close      []float64 `json:"close"`
	Volume     []float64 `json:"volume"`
}
