// Package mockapi serves deterministic prediction-backend responses for
// local development and tests.
package mockapi

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"StockPulse/internal/calculator"
	"StockPulse/internal/model"
)

var tickerPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,9}$`)

// Server answers the five dashboard endpoints.
type Server struct {
	Now func() time.Time
}

// NewServer creates a server. A nil now uses the wall clock.
func NewServer(now func() time.Time) *Server {
	if now == nil {
		now = time.Now
	}
	return &Server{Now: now}
}

// Handler returns the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stock_data/{ticker}", s.stockData)
		r.Get("/news/{ticker}", s.news)
		r.Get("/sentiment/{ticker}", s.sentiment)
		r.Get("/technical/{ticker}", s.technical)
		r.Get("/intraday/{ticker}", s.intraday)
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Printf("[INFO] %s %s -> %d (%d bytes) in %s [%s]",
			r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}

// ticker validates the path ticker, writing a 404 when it is not a symbol.
func (s *Server) ticker(w http.ResponseWriter, r *http.Request) (string, bool) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))
	if !tickerPattern.MatchString(ticker) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No data found for %s. Please check the ticker symbol or try again later.", ticker))
		return "", false
	}
	return ticker, true
}

func (s *Server) stockData(w http.ResponseWriter, r *http.Request) {
	ticker, ok := s.ticker(w, r)
	if !ok {
		return
	}
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil {
		days = 1
	}
	days = max(1, min(days, 7))

	now := s.Now().UTC()
	m := newMarket(ticker, now)
	hist := m.history()
	prices := closes(hist)
	last := hist[len(hist)-1]
	prev := hist[len(hist)-2]
	forecast := m.forecast(last.Close, days)

	data := model.StockData{
		Success:          true,
		Ticker:           ticker,
		CompanyName:      companyName(ticker),
		CurrentPrice:     last.Close,
		PredictedPrice:   forecast[0],
		DayChange:        round2(last.Close - prev.Close),
		DayChangePercent: round2((last.Close - prev.Close) / prev.Close * 100),
		Volume:           last.Volume,
		MarketCap:        marketCap(ticker, last.Close, m.seed),
		PERatio:          peRatio(ticker, m.seed),
		Timestamp:        now.Format("2006-01-02 15:04:05"),
	}
	data.ProfitLoss = round2(forecast[0] - last.Close)
	data.ProfitLossPercent = round2(data.ProfitLoss / last.Close * 100)

	chartBars := hist[len(hist)-30:]
	for _, b := range chartBars {
		data.ChartData.Dates = append(data.ChartData.Dates, b.Date.Format("2006-01-02"))
		data.ChartData.Prices = append(data.ChartData.Prices, b.Close)
	}
	for i, p := range forecast {
		date := now.AddDate(0, 0, i+1)
		data.ChartData.FutureDates = append(data.ChartData.FutureDates, date.Format("2006-01-02"))
		data.ChartData.FuturePrices = append(data.ChartData.FuturePrices, p)
		pl := round2(p - last.Close)
		data.Predictions = append(data.Predictions, model.Prediction{
			Day:               i + 1,
			Date:              date.Format("2006-01-02"),
			DayName:           date.Weekday().String(),
			Price:             p,
			ProfitLoss:        pl,
			ProfitLossPercent: round2(pl / last.Close * 100),
			IsProfit:          pl > 0,
		})
	}
	data.ChartData.PredictedDate = now.AddDate(0, 0, 1).Format("2006-01-02")
	data.ChartData.PredictedPrice = &forecast[0]

	sma20 := calculator.SMASeries(prices, 20)
	sma50 := calculator.SMASeries(prices, 50)
	start := len(hist) - 60
	for i := start; i < len(hist); i++ {
		b := hist[i]
		x := b.Date.Format("2006-01-02")
		data.TechnicalChart.Candles = append(data.TechnicalChart.Candles,
			map[string]any{"x": x, "o": b.Open, "h": b.High, "l": b.Low, "c": b.Close})
		data.TechnicalChart.Volumes = append(data.TechnicalChart.Volumes, map[string]any{"x": x, "y": b.Volume})
		if !math.IsNaN(sma20[i]) {
			data.TechnicalChart.MovingAverages.SMA20 = append(data.TechnicalChart.MovingAverages.SMA20, map[string]any{"x": x, "y": round2(sma20[i])})
		}
		if !math.IsNaN(sma50[i]) {
			data.TechnicalChart.MovingAverages.SMA50 = append(data.TechnicalChart.MovingAverages.SMA50, map[string]any{"x": x, "y": round2(sma50[i])})
		}
	}
	writeJSON(w, http.StatusOK, data)
}

var headlines = []string{
	"%s shares move as analysts revise targets",
	"What the latest guidance means for %s investors",
	"%s announces new product roadmap",
	"Options traders position for a big %s move",
	"%s beats quarterly revenue estimates",
	"Institutional funds add to %s holdings",
	"%s faces supply chain questions",
	"Is %s still a buy after the rally?",
}

var sources = []string{"MarketWatch", "Reuters", "Bloomberg", "", "Yahoo", "Benzinga", "CNBC", "Barron's"}

func (s *Server) news(w http.ResponseWriter, r *http.Request) {
	ticker, ok := s.ticker(w, r)
	if !ok {
		return
	}
	now := s.Now().UTC()
	m := newMarket(ticker, now)
	articles := make([]model.NewsArticle, len(headlines))
	for i := range headlines {
		idx := (int(m.seed%uint64(len(headlines))) + i) % len(headlines)
		a := model.NewsArticle{
			Headline:  fmt.Sprintf(headlines[idx], ticker),
			Source:    sources[idx],
			URL:       fmt.Sprintf("https://news.example.com/%s/%d", strings.ToLower(ticker), i),
			Timestamp: float64(now.Add(-time.Duration(i*i*37) * time.Minute).Unix()),
		}
		if i%3 != 2 {
			a.Summary = fmt.Sprintf("Coverage of %s: %s.", companyName(ticker), strings.ToLower(a.Headline))
		}
		articles[i] = a
	}
	writeJSON(w, http.StatusOK, model.NewsResponse{Success: true, News: articles})
}

func (s *Server) sentiment(w http.ResponseWriter, r *http.Request) {
	ticker, ok := s.ticker(w, r)
	if !ok {
		return
	}
	m := newMarket(ticker, s.Now())
	bullish := round2(25 + float64(m.seed%5000)/100)
	bearish := round2((100 - bullish) * 0.7)
	label := "Neutral"
	switch {
	case bullish-bearish >= 15:
		label = "Bullish"
	case bearish-bullish >= 15:
		label = "Bearish"
	}
	writeJSON(w, http.StatusOK, model.SentimentResponse{
		Success:   true,
		Sentiment: &model.Sentiment{Label: label, BullishPercent: bullish, BearishPercent: bearish},
	})
}

// trendWindow is how many recent indicator points are returned.
const trendWindow = 30

func (s *Server) technical(w http.ResponseWriter, r *http.Request) {
	ticker, ok := s.ticker(w, r)
	if !ok {
		return
	}
	m := newMarket(ticker, s.Now())
	hist := m.history()
	prices := closes(hist)
	rsi := calculator.RSISeries(prices, 14)
	ema := calculator.EMASeries(prices, 20)
	macd, signal := calculator.MACDSeries(prices)

	n := len(hist)
	start := n - trendWindow
	dates := make([]string, 0, trendWindow)
	for _, b := range hist[start:] {
		dates = append(dates, b.Date.Format("01/02"))
	}
	last := n - 1

	rsiSignal := "Neutral"
	switch {
	case rsi[last] > 70:
		rsiSignal = "Overbought"
	case rsi[last] < 30:
		rsiSignal = "Oversold"
	}
	emaSignal, macdSignal := "Bearish", "Bearish"
	if prices[last] > ema[last] {
		emaSignal = "Bullish"
	}
	if macd[last] > signal[last] {
		macdSignal = "Bullish"
	}

	writeJSON(w, http.StatusOK, model.TechnicalResponse{
		Success: true,
		Indicators: &model.Indicators{
			RSI: &model.Oscillator{
				Value: round2(rsi[last]), Signal: rsiSignal,
				TrendData: rounded(rsi[start:]), TrendDates: dates,
			},
			EMA: &model.Level{Value: round2(ema[last]), Signal: emaSignal},
			MACD: &model.Oscillator{
				Value: round2(macd[last]), Signal: macdSignal,
				TrendData: rounded(macd[start:]), SignalData: rounded(signal[start:]), TrendDates: dates,
			},
		},
	})
}

func (s *Server) intraday(w http.ResponseWriter, r *http.Request) {
	ticker, ok := s.ticker(w, r)
	if !ok {
		return
	}
	m := newMarket(ticker, s.Now())
	hist := m.history()
	bars := m.intraday(hist[len(hist)-1].Close)
	resp := model.IntradayData{Success: true}
	for _, b := range bars {
		resp.Timestamps = append(resp.Timestamps, b.Date.Format("2006-01-02 15:04:05"))
		resp.Open = append(resp.Open, b.Open)
		resp.High = append(resp.High, b.High)
		resp.Low = append(resp.Low, b.Low)
		resp.Close = append(resp.Close, b.Close)
		resp.Volume = append(resp.Volume, b.Volume)
	}
	writeJSON(w, http.StatusOK, resp)
}

func companyName(ticker string) string {
	return ticker + " Holdings Inc."
}

// marketCap is "N/A" for class shares, like a missing company profile.
func marketCap(ticker string, price float64, seed uint64) any {
	if strings.ContainsAny(ticker, ".-") {
		return "N/A"
	}
	shares := 1e8 + float64(seed%1000)*1e7
	return math.Round(price * shares)
}

func peRatio(ticker string, seed uint64) any {
	if strings.ContainsAny(ticker, ".-") {
		return "N/A"
	}
	return round2(8 + float64(seed%4000)/100)
}

func rounded(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = round2(v)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}
