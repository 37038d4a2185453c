package trade

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var t0 = time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)

func TestObserveKeepsFirstEntry(t *testing.T) {
	tr := NewTracker(NewMemoryRepository())

	pos, ok := tr.Observe("AAPL", 100, 105, t0)
	if !ok || !pos.New || pos.EntryPrice != 100 || pos.ProfitLoss != 0 {
		t.Fatalf("first observation = %+v", pos)
	}
	if pos.ProjectedProfitLoss != 5 || pos.ProjectedProfitLossPercent != 5 {
		t.Fatalf("projected = %v / %v", pos.ProjectedProfitLoss, pos.ProjectedProfitLossPercent)
	}

	pos, ok = tr.Observe("AAPL", 110, 112, t0.Add(time.Minute))
	if !ok || pos.New {
		t.Fatalf("second observation = %+v", pos)
	}
	if pos.EntryPrice != 100 {
		t.Fatalf("entry = %v, want 100", pos.EntryPrice)
	}
	if pos.ProfitLoss != 10 || pos.ProfitLossPercent != 10 {
		t.Fatalf("P/L = %v (%v%%), want 10 (10%%)", pos.ProfitLoss, pos.ProfitLossPercent)
	}
	if !pos.EntryTime.Equal(t0) {
		t.Fatalf("entry time = %v", pos.EntryTime)
	}
}

func TestObserveRejectsUnusablePrice(t *testing.T) {
	tr := NewTracker(NewMemoryRepository())
	if _, ok := tr.Observe("AAPL", 0, 10, t0); ok {
		t.Fatal("zero price should be rejected")
	}
	if _, ok := tr.Entry("AAPL"); ok {
		t.Fatal("no record should be created for a rejected price")
	}
}

func TestClearOneKeepsOthers(t *testing.T) {
	tr := NewTracker(NewMemoryRepository())
	tr.Observe("AAPL", 100, 0, t0)
	tr.Observe("MSFT", 300, 0, t0)

	if err := tr.Clear("AAPL"); err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.Entry("AAPL"); ok {
		t.Fatal("AAPL should be cleared")
	}
	if rec, ok := tr.Entry("MSFT"); !ok || rec.EntryPrice != 300 {
		t.Fatalf("MSFT record = %+v, %v", rec, ok)
	}

	pos, _ := tr.Observe("AAPL", 120, 0, t0)
	if !pos.New || pos.EntryPrice != 120 {
		t.Fatalf("re-entry = %+v", pos)
	}
}

func TestClearAll(t *testing.T) {
	tr := NewTracker(NewMemoryRepository())
	tr.Observe("AAPL", 100, 0, t0)
	tr.Observe("MSFT", 300, 0, t0)
	if err := tr.ClearAll(); err != nil {
		t.Fatal(err)
	}
	if n := len(tr.Records()); n != 0 {
		t.Fatalf("records = %d", n)
	}
}

func TestPersistentRepositoryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "trades.json")

	tr := NewTracker(NewPersistentRepository(NewFileKV(path)))
	tr.Observe("AAPL", 100, 0, t0)
	tr.Observe("TSLA", 200, 0, t0)

	restored := NewTracker(NewPersistentRepository(NewFileKV(path)))
	pos, _ := restored.Observe("AAPL", 110, 0, t0.Add(time.Hour))
	if pos.New || pos.EntryPrice != 100 {
		t.Fatalf("restored position = %+v", pos)
	}

	if err := restored.Clear("TSLA"); err != nil {
		t.Fatal(err)
	}
	again := NewTracker(NewPersistentRepository(NewFileKV(path)))
	if _, ok := again.Entry("TSLA"); ok {
		t.Fatal("TSLA should stay cleared after reload")
	}
	if _, ok := again.Entry("AAPL"); !ok {
		t.Fatal("AAPL should survive reload")
	}
}

func TestPersistentRepositoryCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	repo := NewPersistentRepository(NewFileKV(path))
	if n := len(repo.All()); n != 0 {
		t.Fatalf("records = %d, want 0", n)
	}
	if err := repo.Put(Record{Ticker: "AAPL", EntryPrice: 1, EntryTime: t0}); err != nil {
		t.Fatalf("write after corrupt load: %v", err)
	}
}

func TestPersistentRepositoryCorruptValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.json")
	if err := os.WriteFile(path, []byte(`{"stockpulse.trades": "oops"}`), 0644); err != nil {
		t.Fatal(err)
	}
	repo := NewPersistentRepository(NewFileKV(path))
	if n := len(repo.All()); n != 0 {
		t.Fatalf("records = %d, want 0", n)
	}
}

func TestSQLiteKV(t *testing.T) {
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "trades.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer kv.Close()

	if v, err := kv.Load(StorageKey); err != nil || v != nil {
		t.Fatalf("missing key = %q, %v", v, err)
	}

	tr := NewTracker(NewPersistentRepository(kv))
	tr.Observe("NVDA", 900, 950, t0)

	restored := NewPersistentRepository(kv)
	if rec, ok := restored.Get("NVDA"); !ok || rec.EntryPrice != 900 {
		t.Fatalf("restored = %+v, %v", rec, ok)
	}
	if err := restored.Clear(); err != nil {
		t.Fatal(err)
	}
	if v, _ := kv.Load(StorageKey); v != nil {
		t.Fatalf("key should be removed, got %q", v)
	}
}
