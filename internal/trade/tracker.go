package trade

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Position is the profit/loss of a ticker against its recorded entry.
type Position struct {
	Ticker                     string
	EntryPrice                 float64
	EntryTime                  time.Time
	CurrentPrice               float64
	PredictedPrice             float64
	ProfitLoss                 float64
	ProfitLossPercent          float64
	ProjectedProfitLoss        float64
	ProjectedProfitLossPercent float64
	New                        bool // entry captured by this observation
}

// Tracker owns the entry-price records. The entry price of a ticker is the
// current price the first time it is observed and never changes until the
// record is cleared.
type Tracker struct {
	mu   sync.Mutex
	repo Repository
}

func NewTracker(repo Repository) *Tracker {
	return &Tracker{repo: repo}
}

// Observe returns the position of ticker at the given prices, recording an
// entry on first sight. ok is false when current is not a usable price.
func (t *Tracker) Observe(ticker string, current, predicted float64, now time.Time) (pos Position, ok bool) {
	if ticker == "" || !usable(current) {
		return Position{}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, found := t.repo.Get(ticker)
	if !found {
		rec = Record{Ticker: ticker, EntryPrice: current, EntryTime: now}
		if err := t.repo.Put(rec); err != nil {
			log.Printf("[ERROR] failed to persist trade for %s: %v", ticker, err)
		}
		log.Printf("[INFO] trade entry recorded: %s @ %.2f", ticker, current)
	}

	pos = Position{
		Ticker:         ticker,
		EntryPrice:     rec.EntryPrice,
		EntryTime:      rec.EntryTime,
		CurrentPrice:   current,
		PredictedPrice: predicted,
		New:            !found,
	}
	pos.ProfitLoss, pos.ProfitLossPercent = change(rec.EntryPrice, current)
	if usable(predicted) {
		pos.ProjectedProfitLoss, pos.ProjectedProfitLossPercent = change(rec.EntryPrice, predicted)
	}
	return pos, true
}

// Entry returns the record for ticker, if any.
func (t *Tracker) Entry(ticker string) (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.repo.Get(ticker)
}

// Clear forgets ticker so its next observation captures a new entry.
func (t *Tracker) Clear(ticker string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.repo.Delete(ticker)
}

// ClearAll forgets every ticker.
func (t *Tracker) ClearAll() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.repo.Clear()
}

// Records lists every tracked ticker.
func (t *Tracker) Records() []Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.repo.All()
}

// change returns to−from and its percentage of from, rounded to cents and
// hundredths of a percent.
func change(from, to float64) (abs, pct float64) {
	entry := decimal.NewFromFloat(from)
	diff := decimal.NewFromFloat(to).Sub(entry)
	abs, _ = diff.Round(2).Float64()
	if entry.IsZero() {
		return abs, 0
	}
	pct, _ = diff.Div(entry).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return abs, pct
}

func usable(price float64) bool {
	return price > 0 && !math.IsNaN(price) && !math.IsInf(price, 0)
}
