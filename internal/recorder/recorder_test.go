package recorder

import (
	"path/filepath"
	"testing"
)

func TestSQLiteRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := r.RecordQuote(&QuoteSnapshot{CycleID: "c", Ticker: "AAPL", CurrentPrice: 190, SignalLabel: "HOLD"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.RecordQuote(&QuoteSnapshot{Ticker: "MSFT", CurrentPrice: 410, Silent: true}); err != nil {
		t.Fatal(err)
	}
	if err := r.RecordFetchFailure(&FetchFailure{Ticker: "ZZZZ", Kind: "status", Message: "Invalid ticker"}); err != nil {
		t.Fatal(err)
	}
	if err := r.RecordTradeEvent(&TradeEvent{Ticker: "AAPL", Action: "ENTRY", EntryPrice: 190}); err != nil {
		t.Fatal(err)
	}

	n, err := r.QuoteCount("AAPL")
	if err != nil || n != 3 {
		t.Fatalf("AAPL quotes = %d, %v", n, err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	// migrations are idempotent on reopen
	r, err = NewSQLiteRecorder(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if n, _ := r.QuoteCount("MSFT"); n != 1 {
		t.Fatalf("MSFT quotes after reopen = %d", n)
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	if err := r.RecordQuote(&QuoteSnapshot{}); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
}
