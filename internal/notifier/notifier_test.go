package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"StockPulse/internal/model"
	"StockPulse/internal/trade"
)

func TestSend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTOKEN/sendMessage" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("TOKEN", "42", "")
	n.APIBase = srv.URL
	if err := n.Send("hello"); err != nil {
		t.Fatal(err)
	}
	if got["chat_id"] != "42" || got["text"] != "hello" || got["parse_mode"] != "HTML" {
		t.Fatalf("payload = %v", got)
	}
}

func TestSendWithRetryCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("TOKEN", "42", "")
	n.APIBase = srv.URL
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := n.SendWithRetry(ctx, "x", 3); err == nil {
		t.Fatal("expected error")
	}
}

func TestPollingFiltersChat(t *testing.T) {
	var mu sync.Mutex
	var sent []string
	served := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			mu.Lock()
			first := !served
			served = true
			mu.Unlock()
			if first {
				fmt.Fprint(w, `{"ok":true,"result":[
					{"update_id":1,"message":{"text":"/quote","chat":{"id":42}}},
					{"update_id":2,"message":{"text":"/clearall","chat":{"id":7}}}]}`)
				return
			}
			fmt.Fprint(w, `{"ok":true,"result":[]}`)
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var p map[string]string
			json.NewDecoder(r.Body).Decode(&p)
			mu.Lock()
			sent = append(sent, p["text"])
			mu.Unlock()
			fmt.Fprint(w, `{"ok":true}`)
		}
	}))
	defer srv.Close()

	n := NewTelegramNotifier("TOKEN", "42", "")
	n.APIBase = srv.URL

	var cmds []string
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		n.StartPolling(ctx, func(cmd string) string {
			mu.Lock()
			cmds = append(cmds, cmd)
			mu.Unlock()
			cancel()
			return "reply to " + cmd
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("polling did not stop")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(cmds) != 1 || cmds[0] != "/quote" {
		t.Fatalf("commands = %v", cmds)
	}
	if len(sent) != 1 || sent[0] != "reply to /quote" {
		t.Fatalf("sent = %v", sent)
	}
}

func TestFormatters(t *testing.T) {
	sig := model.TradingSignal{Label: "STRONG BUY", PredictedChangePercent: 4.5, Message: "Up <soon>"}
	msg := FormatSignalAlert("AAPL", "HOLD", sig, 190.5)
	if !strings.Contains(msg, "HOLD → <b>STRONG BUY</b>") || !strings.Contains(msg, "$190.50") || !strings.Contains(msg, "Up &lt;soon&gt;") {
		t.Fatalf("alert = %q", msg)
	}

	data := &model.StockData{Ticker: "AAPL", CompanyName: "Apple Inc.", CurrentPrice: 190, PredictedPrice: 195, DayChange: -1.5, DayChangePercent: -0.78, Volume: 52341000, MarketCap: 2.9e12, PERatio: "N/A"}
	pos := &trade.Position{EntryPrice: 180, ProfitLoss: 10, ProfitLossPercent: 5.56}
	q := FormatQuote(data, &sig, pos)
	for _, want := range []string{"Apple Inc.", "$190.00", "-$1.50 (-0.78%)", "$2.90T", "Volume: 52,341,000", "P/E: N/A", "+$10.00 (+5.56%)"} {
		if !strings.Contains(q, want) {
			t.Errorf("quote missing %q:\n%s", want, q)
		}
	}

	if FormatPositions(nil) != "No tracked trades." {
		t.Error("empty positions text")
	}
	p := FormatPositions([]trade.Record{{Ticker: "MSFT", EntryPrice: 410}})
	if !strings.Contains(p, "MSFT: $410.00") {
		t.Errorf("positions = %q", p)
	}
}
