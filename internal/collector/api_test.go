package collector

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)

func newTestFetcher(t *testing.T, h http.HandlerFunc) *APIFetcher {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	f := NewAPIFetcher(srv.URL+"/", "secret", "")
	f.Now = func() time.Time { return fixedNow }
	return f
}

func TestFetchStockDataRequest(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.EscapedPath(); got != "/api/stock_data/BRK%2FB" {
			t.Errorf("path = %q", got)
		}
		if got := r.URL.Query().Get("days"); got != "5" {
			t.Errorf("days = %q", got)
		}
		if got := r.URL.Query().Get("_"); got != fmt.Sprint(fixedNow.UnixMilli()) {
			t.Errorf("cache buster = %q", got)
		}
		if r.Header.Get("Cache-Control") != "no-cache" || r.Header.Get("Pragma") != "no-cache" {
			t.Errorf("cache headers = %v", r.Header)
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("auth = %q", r.Header.Get("Authorization"))
		}
		fmt.Fprint(w, `{"success":true,"ticker":"BRK/B","current_price":410.5,"predicted_price":415,
			"market_cap":"N/A","pe_ratio":9.5,
			"chart_data":{"dates":["2024-05-09"],"prices":[410.5],"future_dates":["2024-05-10"],"future_prices":[415]},
			"technical_chart":{"candles":[{"x":"2024-05-09","o":1,"h":2,"l":0.5,"c":1.5}],"volumes":[],"moving_averages":{"sma20":[],"sma50":[]}}}`)
	})

	data, err := f.FetchStockData("BRK/B", 5)
	if err != nil {
		t.Fatal(err)
	}
	if data.CurrentPrice != 410.5 || data.MarketCap != "N/A" || len(data.TechnicalChart.Candles) != 1 {
		t.Fatalf("data = %+v", data)
	}
}

func TestFetchStockDataErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr any
	}{
		{"json error body", 404, `{"success":false,"error":"Invalid ticker symbol"}`, "Invalid ticker symbol", &StatusError{}},
		{"plain error body", 500, `boom`, "HTTP 500: Internal Server Error", &StatusError{}},
		{"success false", 200, `{"success":false,"error":"Model not trained"}`, "Model not trained", &AppError{}},
		{"success false no message", 200, `{"success":false}`, "Failed to fetch stock data", &AppError{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})
			_, err := f.FetchStockData("AAPL", 7)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := UserMessage(err); got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
			switch tt.wantErr.(type) {
			case *StatusError:
				var se *StatusError
				if !errors.As(err, &se) || se.Code != tt.status {
					t.Errorf("err = %#v", err)
				}
			case *AppError:
				var ae *AppError
				if !errors.As(err, &ae) {
					t.Errorf("err = %#v", err)
				}
			}
		})
	}
}

func TestFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	f := NewAPIFetcher(base, "", "")
	_, err := f.FetchStockData("AAPL", 7)
	var ue *UnreachableError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %#v", err)
	}
	msg := UserMessage(err)
	if !strings.HasPrefix(msg, "Unable to reach prediction service at "+base) {
		t.Errorf("message = %q", msg)
	}
	if Kind(err) != "unreachable" {
		t.Errorf("kind = %q", Kind(err))
	}
}

func TestFetchDecodeError(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"current_price":"oops"`)
	})
	_, err := f.FetchStockData("AAPL", 7)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if UserMessage(err) != "Unable to retrieve stock data" || Kind(err) != "decode" {
		t.Errorf("message = %q kind = %q", UserMessage(err), Kind(err))
	}
}

func TestSecondaryEndpoints(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/news/AAPL":
			if r.URL.Query().Get("days") != "7" {
				t.Errorf("news days = %q", r.URL.Query().Get("days"))
			}
			fmt.Fprint(w, `{"success":true,"news":[{"headline":"h","timestamp":1715350000}]}`)
		case "/api/sentiment/AAPL":
			fmt.Fprint(w, `{"success":true,"sentiment":{"sentiment":"Bullish","bullish_percent":62.5,"bearish_percent":20}}`)
		case "/api/technical/AAPL":
			fmt.Fprint(w, `{"success":true,"indicators":{"RSI":{"value":55.2,"trend_data":[50,55.2],"trend_dates":["a","b"]},"EMA":{"value":180.1}}}`)
		case "/api/intraday/AAPL":
			fmt.Fprint(w, `{"success":false,"error":"Market closed"}`)
		default:
			http.NotFound(w, r)
		}
	})

	news, err := f.FetchNews("AAPL")
	if err != nil || len(news) != 1 || news[0].Headline != "h" {
		t.Fatalf("news = %+v, %v", news, err)
	}
	s, err := f.FetchSentiment("AAPL")
	if err != nil || s.Label != "Bullish" || s.BullishPercent != 62.5 {
		t.Fatalf("sentiment = %+v, %v", s, err)
	}
	ind, err := f.FetchTechnical("AAPL")
	if err != nil || ind.RSI == nil || ind.RSI.Value != 55.2 || ind.MACD != nil {
		t.Fatalf("indicators = %+v, %v", ind, err)
	}
	if _, err := f.FetchIntraday("AAPL"); err == nil || err.Error() != "Market closed" {
		t.Fatalf("intraday err = %v", err)
	}
}

func TestCollectStockCycleIDs(t *testing.T) {
	m := &MockFetcher{Err: &StatusError{Code: 503}}
	c := NewCollector(m)
	a := c.CollectStock("AAPL", 7, false)
	b := c.CollectStock("AAPL", 7, true)
	if a.CycleID == "" || a.CycleID == b.CycleID {
		t.Fatalf("cycle ids %q %q", a.CycleID, b.CycleID)
	}
	if !b.Silent || a.Silent {
		t.Fatalf("silent flags %v %v", a.Silent, b.Silent)
	}
	if a.Err == nil || UserMessage(a.Err) != "HTTP 503: Service Unavailable" {
		t.Fatalf("err = %v", a.Err)
	}
	if m.StockCalls != 2 {
		t.Fatalf("calls = %d", m.StockCalls)
	}
}
