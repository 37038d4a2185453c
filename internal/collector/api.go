package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"StockPulse/internal/model"
)

// APIFetcher implements Fetcher against the prediction backend REST API.
type APIFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Now     func() time.Time
}

// NewAPIFetcher creates a fetcher with optional proxy support. No client
// timeout is set; requests end when the transport gives up.
func NewAPIFetcher(baseURL, apiKey, proxyURL string) *APIFetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &APIFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Transport: transport},
		Now:     time.Now,
	}
}

func (f *APIFetcher) Name() string { return "api" }

func (f *APIFetcher) FetchStockData(ticker string, days int) (*model.StockData, error) {
	var data model.StockData
	q := url.Values{"days": {strconv.Itoa(days)}}
	if err := f.get("stock data", "/api/stock_data/"+url.PathEscape(ticker), q, &data); err != nil {
		return nil, err
	}
	if !data.Success {
		return nil, &AppError{Resource: "stock data", Message: data.Error}
	}
	return &data, nil
}

func (f *APIFetcher) FetchNews(ticker string) ([]model.NewsArticle, error) {
	var resp model.NewsResponse
	q := url.Values{"days": {"7"}}
	if err := f.get("news", "/api/news/"+url.PathEscape(ticker), q, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &AppError{Resource: "news", Message: resp.Error}
	}
	return resp.News, nil
}

func (f *APIFetcher) FetchSentiment(ticker string) (*model.Sentiment, error) {
	var resp model.SentimentResponse
	if err := f.get("sentiment", "/api/sentiment/"+url.PathEscape(ticker), nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Sentiment == nil {
		return nil, &AppError{Resource: "sentiment", Message: resp.Error}
	}
	return resp.Sentiment, nil
}

func (f *APIFetcher) FetchTechnical(ticker string) (*model.Indicators, error) {
	var resp model.TechnicalResponse
	if err := f.get("technical indicators", "/api/technical/"+url.PathEscape(ticker), nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Indicators == nil {
		return nil, &AppError{Resource: "technical indicators", Message: resp.Error}
	}
	return resp.Indicators, nil
}

func (f *APIFetcher) FetchIntraday(ticker string) (*model.IntradayData, error) {
	var data model.IntradayData
	if err := f.get("intraday data", "/api/intraday/"+url.PathEscape(ticker), nil, &data); err != nil {
		return nil, err
	}
	if !data.Success {
		return nil, &AppError{Resource: "intraday data", Message: data.Error}
	}
	return &data, nil
}

// get issues an uncached GET and decodes the JSON body into out.
func (f *APIFetcher) get(resource, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("_", strconv.FormatInt(f.now().UnixMilli(), 10))
	endpoint := f.BaseURL + path + "?" + query.Encode()

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return &UnreachableError{BaseURL: f.BaseURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UnreachableError{BaseURL: f.BaseURL, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error string `json:"error"`
		}
		// a non-JSON error body falls back to the status text
		_ = json.Unmarshal(body, &envelope)
		return &StatusError{Code: resp.StatusCode, Message: envelope.Error}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", resource, err)
	}
	return nil
}

func (f *APIFetcher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}
