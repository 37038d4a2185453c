package mockapi

import (
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"
)

// historySessions is how many daily bars each ticker has. It covers the
// 60-session chart window plus the SMA50 and MACD warm-up.
const historySessions = 120

type bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// market generates the synthetic price history of one ticker. The same
// ticker and day always produce the same data.
type market struct {
	ticker string
	seed   uint64
	now    time.Time
}

func newMarket(ticker string, now time.Time) market {
	h := fnv.New64a()
	h.Write([]byte(ticker))
	return market{ticker: ticker, seed: h.Sum64(), now: now.UTC()}
}

func (m market) rng(stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(m.seed, stream))
}

// basePrice is between 20 and 520.
func (m market) basePrice() float64 {
	return 20 + float64(m.seed%50000)/100
}

// sessions returns the weekdays strictly before today, oldest first.
func (m market) sessions(n int) []time.Time {
	day := time.Date(m.now.Year(), m.now.Month(), m.now.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, 0, n)
	for len(out) < n {
		day = day.AddDate(0, 0, -1)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		out = append(out, day)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// history is a random walk anchored on the ticker's base price. The walk is
// seeded by ticker only so a session keeps its values as days pass.
func (m market) history() []bar {
	days := m.sessions(historySessions)
	r := m.rng(1)
	price := m.basePrice()
	drift := (float64(m.seed%7) - 3) / 1000
	bars := make([]bar, len(days))
	for i, d := range days {
		open := price
		move := drift + r.NormFloat64()*0.015
		closePrice := math.Max(1, open*(1+move))
		spread := math.Abs(r.NormFloat64()) * 0.01
		bars[i] = bar{
			Date:   d,
			Open:   round2(open),
			High:   round2(math.Max(open, closePrice) * (1 + spread)),
			Low:    round2(math.Min(open, closePrice) * (1 - spread)),
			Close:  round2(closePrice),
			Volume: math.Round(1e6 + r.Float64()*9e6),
		}
		price = closePrice
	}
	return bars
}

// forecast extends the last close by days predicted closes.
func (m market) forecast(last float64, days int) []float64 {
	r := m.rng(uint64(m.now.YearDay()) + 2)
	trend := (r.Float64() - 0.45) * 0.02
	out := make([]float64, days)
	price := last
	for i := range out {
		price *= 1 + trend + r.NormFloat64()*0.004
		out[i] = round2(price)
	}
	return out
}

// intraday returns five-minute bars of the current session up to now, or
// the whole previous session before the open.
func (m market) intraday(last float64) []bar {
	day := time.Date(m.now.Year(), m.now.Month(), m.now.Day(), 0, 0, 0, 0, time.UTC)
	open := day.Add(9*time.Hour + 30*time.Minute)
	limit := m.now
	if m.now.Before(open) || day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		prev := m.sessions(1)[0]
		open = prev.Add(9*time.Hour + 30*time.Minute)
		limit = prev.Add(16 * time.Hour)
	}
	r := m.rng(uint64(open.Unix()))
	var bars []bar
	price := last
	for t := open; !t.After(limit) && t.Before(open.Add(6*time.Hour+30*time.Minute)); t = t.Add(5 * time.Minute) {
		o := price
		price *= 1 + r.NormFloat64()*0.002
		bars = append(bars, bar{
			Date:   t,
			Open:   round2(o),
			High:   round2(math.Max(o, price) * 1.001),
			Low:    round2(math.Min(o, price) * 0.999),
			Close:  round2(price),
			Volume: math.Round(1e4 + r.Float64()*9e4),
		})
	}
	return bars
}

func closes(bars []bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
