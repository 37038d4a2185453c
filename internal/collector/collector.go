package collector

import (
	"log"
	"time"

	"github.com/google/uuid"

	"StockPulse/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Stock      *model.StockData
	News       []model.NewsArticle
	Sentiment  *model.Sentiment
	Indicators *model.Indicators
	Intraday   *model.IntradayData
	Err        error // returned by every call when set

	StockCalls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchStockData(ticker string, _ int) (*model.StockData, error) {
	m.StockCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Stock == nil {
		return nil, &AppError{Resource: "stock data"}
	}
	data := *m.Stock
	data.Ticker = ticker
	return &data, nil
}

func (m *MockFetcher) FetchNews(_ string) ([]model.NewsArticle, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.News, nil
}

func (m *MockFetcher) FetchSentiment(_ string) (*model.Sentiment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Sentiment == nil {
		return nil, &AppError{Resource: "sentiment"}
	}
	return m.Sentiment, nil
}

func (m *MockFetcher) FetchTechnical(_ string) (*model.Indicators, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Indicators == nil {
		return nil, &AppError{Resource: "technical indicators"}
	}
	return m.Indicators, nil
}

func (m *MockFetcher) FetchIntraday(_ string) (*model.IntradayData, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Intraday == nil {
		return nil, &AppError{Resource: "intraday data"}
	}
	return m.Intraday, nil
}

// StockResult is the outcome of one stock data fetch cycle.
type StockResult struct {
	CycleID string
	Ticker  string
	Days    int
	Silent  bool // started without the loading indicator
	Data    *model.StockData
	Err     error
	Elapsed time.Duration
}

type NewsResult struct {
	Ticker   string
	Articles []model.NewsArticle
	Err      error
}

type SentimentResult struct {
	Ticker    string
	Sentiment *model.Sentiment
	Err       error
}

type IndicatorsResult struct {
	Ticker     string
	Indicators *model.Indicators
	Err        error
}

type IntradayResult struct {
	Ticker   string
	Intraday *model.IntradayData
	Err      error
}

// Collector runs fetch cycles against a Fetcher. Each call blocks for one
// request; callers run it off the UI loop.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// CollectStock fetches the quote snapshot for ticker, tagging the cycle
// with a fresh id.
func (c *Collector) CollectStock(ticker string, days int, silent bool) StockResult {
	res := StockResult{CycleID: uuid.NewString(), Ticker: ticker, Days: days, Silent: silent}
	start := time.Now()
	log.Printf("[INFO] fetch cycle %s: %s days=%d silent=%v via %s", res.CycleID, ticker, days, silent, c.Fetcher.Name())

	res.Data, res.Err = c.Fetcher.FetchStockData(ticker, days)
	res.Elapsed = time.Since(start)
	if res.Err != nil {
		log.Printf("[ERROR] fetch cycle %s failed (%s) after %s: %v", res.CycleID, Kind(res.Err), res.Elapsed, res.Err)
	} else {
		log.Printf("[INFO] fetch cycle %s done in %s", res.CycleID, res.Elapsed)
	}
	return res
}

func (c *Collector) CollectNews(ticker string) NewsResult {
	articles, err := c.Fetcher.FetchNews(ticker)
	if err != nil {
		log.Printf("[WARN] news fetch for %s failed: %v", ticker, err)
	}
	return NewsResult{Ticker: ticker, Articles: articles, Err: err}
}

func (c *Collector) CollectSentiment(ticker string) SentimentResult {
	s, err := c.Fetcher.FetchSentiment(ticker)
	if err != nil {
		log.Printf("[WARN] sentiment fetch for %s failed: %v", ticker, err)
	}
	return SentimentResult{Ticker: ticker, Sentiment: s, Err: err}
}

func (c *Collector) CollectIndicators(ticker string) IndicatorsResult {
	ind, err := c.Fetcher.FetchTechnical(ticker)
	if err != nil {
		log.Printf("[WARN] technical indicators fetch for %s failed: %v", ticker, err)
	}
	return IndicatorsResult{Ticker: ticker, Indicators: ind, Err: err}
}

func (c *Collector) CollectIntraday(ticker string) IntradayResult {
	d, err := c.Fetcher.FetchIntraday(ticker)
	if err != nil {
		log.Printf("[WARN] intraday fetch for %s failed: %v", ticker, err)
	}
	return IntradayResult{Ticker: ticker, Intraday: d, Err: err}
}
