package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists dashboard history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quote_snapshots (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp           INTEGER NOT NULL,
			cycle_id            TEXT,
			ticker              TEXT NOT NULL,
			current_price       REAL,
			predicted_price     REAL,
			day_change_percent  REAL,
			profit_loss_percent REAL,
			signal_label        TEXT,
			silent              INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quote_ticker_ts ON quote_snapshots(ticker, timestamp)`,

		`CREATE TABLE IF NOT EXISTS fetch_failures (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			cycle_id  TEXT,
			ticker    TEXT,
			kind      TEXT,
			message   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_failure_ts ON fetch_failures(timestamp)`,

		`CREATE TABLE IF NOT EXISTS trade_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			ticker      TEXT,
			action      TEXT,
			entry_price REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trade_ts ON trade_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordQuote(snap *QuoteSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO quote_snapshots
		(timestamp, cycle_id, ticker, current_price, predicted_price,
		 day_change_percent, profit_loss_percent, signal_label, silent)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		r.now().Unix(), snap.CycleID, snap.Ticker, snap.CurrentPrice, snap.PredictedPrice,
		snap.DayChangePercent, snap.ProfitLossPercent, snap.SignalLabel, snap.Silent,
	)
	return err
}

func (r *SQLiteRecorder) RecordFetchFailure(evt *FetchFailure) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fetch_failures
		(timestamp, cycle_id, ticker, kind, message)
		VALUES (?,?,?,?,?)`,
		r.now().Unix(), evt.CycleID, evt.Ticker, evt.Kind, evt.Message,
	)
	return err
}

func (r *SQLiteRecorder) RecordTradeEvent(evt *TradeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO trade_events
		(timestamp, ticker, action, entry_price)
		VALUES (?,?,?,?)`,
		r.now().Unix(), evt.Ticker, evt.Action, evt.EntryPrice,
	)
	return err
}

// QuoteCount returns how many snapshots were recorded for ticker.
func (r *SQLiteRecorder) QuoteCount(ticker string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM quote_snapshots WHERE ticker = ?`, ticker).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
