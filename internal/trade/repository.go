// Package trade tracks the entry price of every ticker the dashboard has
// shown, so profit/loss stays anchored across refreshes.
package trade

import (
	"encoding/json"
	"fmt"
	"log"
	"maps"
	"slices"
	"time"
)

// StorageKey is the key the trade map is persisted under.
const StorageKey = "stockpulse.trades"

// Record is the entry captured the first time a ticker is displayed.
type Record struct {
	Ticker     string    `json:"ticker"`
	EntryPrice float64   `json:"entry_price"`
	EntryTime  time.Time `json:"entry_time"`
}

// Repository stores at most one Record per ticker.
type Repository interface {
	Get(ticker string) (Record, bool)
	Put(rec Record) error
	Delete(ticker string) error
	Clear() error
	All() []Record
}

// MemoryRepository keeps records for the lifetime of the process.
type MemoryRepository struct {
	records map[string]Record
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]Record)}
}

func (m *MemoryRepository) Get(ticker string) (Record, bool) {
	rec, ok := m.records[ticker]
	return rec, ok
}

func (m *MemoryRepository) Put(rec Record) error {
	m.records[rec.Ticker] = rec
	return nil
}

func (m *MemoryRepository) Delete(ticker string) error {
	delete(m.records, ticker)
	return nil
}

func (m *MemoryRepository) Clear() error {
	clear(m.records)
	return nil
}

// All returns the records sorted by ticker.
func (m *MemoryRepository) All() []Record {
	out := make([]Record, 0, len(m.records))
	for _, ticker := range slices.Sorted(maps.Keys(m.records)) {
		out = append(out, m.records[ticker])
	}
	return out
}

// PersistentRepository mirrors a MemoryRepository into a KVStore on every
// write. Missing or unreadable stored data starts an empty map.
type PersistentRepository struct {
	mem   *MemoryRepository
	store KVStore
}

// NewPersistentRepository restores the trade map from store.
func NewPersistentRepository(store KVStore) *PersistentRepository {
	r := &PersistentRepository{mem: NewMemoryRepository(), store: store}

	data, err := store.Load(StorageKey)
	if err != nil {
		log.Printf("[WARN] trade store unreadable, starting empty: %v", err)
		return r
	}
	if len(data) == 0 {
		return r
	}
	var records map[string]Record
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("[WARN] trade store corrupt, starting empty: %v", err)
		return r
	}
	for ticker, rec := range records {
		if ticker == "" || rec.EntryPrice <= 0 {
			continue
		}
		rec.Ticker = ticker
		r.mem.records[ticker] = rec
	}
	log.Printf("[INFO] restored %d trade records", len(r.mem.records))
	return r
}

func (r *PersistentRepository) Get(ticker string) (Record, bool) { return r.mem.Get(ticker) }

func (r *PersistentRepository) All() []Record { return r.mem.All() }

func (r *PersistentRepository) Put(rec Record) error {
	r.mem.Put(rec)
	return r.save()
}

func (r *PersistentRepository) Delete(ticker string) error {
	r.mem.Delete(ticker)
	return r.save()
}

func (r *PersistentRepository) Clear() error {
	r.mem.Clear()
	if err := r.store.Remove(StorageKey); err != nil {
		return fmt.Errorf("remove trades: %w", err)
	}
	return nil
}

func (r *PersistentRepository) save() error {
	data, err := json.MarshalIndent(r.mem.records, "", "  ")
	if err != nil {
		return err
	}
	if err := r.store.Save(StorageKey, data); err != nil {
		return fmt.Errorf("save trades: %w", err)
	}
	return nil
}
