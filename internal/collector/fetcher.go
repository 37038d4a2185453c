package collector

import "StockPulse/internal/model"

// Fetcher defines the interface for fetching dashboard data from the
// prediction backend.
type Fetcher interface {
	FetchStockData(ticker string, days int) (*model.StockData, error)
	FetchNews(ticker string) ([]model.NewsArticle, error)
	FetchSentiment(ticker string) (*model.Sentiment, error)
	FetchTechnical(ticker string) (*model.Indicators, error)
	FetchIntraday(ticker string) (*model.IntradayData, error)
	Name() string
}
