package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/natefinch/lumberjack.v2"

	"StockPulse/internal/chart"
	"StockPulse/internal/collector"
	"StockPulse/internal/config"
	"StockPulse/internal/dashboard"
	"StockPulse/internal/notifier"
	"StockPulse/internal/recorder"
	"StockPulse/internal/scheduler"
	"StockPulse/internal/trade"
	"StockPulse/internal/ui"
)

// commandTimeout bounds how long a remote command waits for the UI loop.
const commandTimeout = 10 * time.Second

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a rotating file.
	logFile := &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.Println("[INFO] StockPulse starting...")

	fetcher := collector.NewAPIFetcher(cfg.API.BaseURL, cfg.API.APIKey, cfg.Proxy)
	log.Printf("[INFO] data source: %s (%s)", fetcher.Name(), cfg.API.BaseURL)
	col := collector.NewCollector(fetcher)

	repo, closeRepo, err := openTrades(cfg)
	if err != nil {
		log.Printf("[WARN] init %s trade store failed, using memory: %v", cfg.Trades.Backend, err)
		repo, closeRepo = trade.NewMemoryRepository(), nil
	}
	if closeRepo != nil {
		defer closeRepo.Close()
	}

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	theme, _ := chart.ThemeByName(cfg.Dashboard.Theme)
	charts := chart.NewRegistry(chart.NewTermRenderer(), theme)
	coord := dashboard.NewCoordinator(cfg.Dashboard.Ticker, cfg.Dashboard.Days, trade.NewTracker(repo), charts, rec)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		tn.Ctx = ctx
		coord.Alerter = tn
	}

	p := tea.NewProgram(ui.New(coord, col), tea.WithAltScreen(), tea.WithMouseCellMotion())

	sched := scheduler.NewScheduler()
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.ClockCron,
		func() { p.Send(ui.AutoRefreshMsg{}) },
		func() { p.Send(ui.ClockMsg(time.Now())) },
	); err != nil {
		fmt.Fprintf(os.Stderr, "register cron tasks: %v\n", err)
		os.Exit(1)
	}
	sched.Start()

	if tn != nil {
		go tn.StartPolling(ctx, func(text string) string {
			reply := make(chan string, 1)
			p.Send(ui.CommandMsg{Text: text, Reply: reply})
			select {
			case r := <-reply:
				return r
			case <-time.After(commandTimeout):
				return "Dashboard is busy, try again."
			case <-ctx.Done():
				return ""
			}
		})
		log.Println("[INFO] Telegram polling started")
	}

	_, runErr := p.Run()

	log.Println("[INFO] shutting down...")
	cancel()
	sched.Stop()
	coord.Teardown()
	if runErr != nil {
		log.Printf("[ERROR] ui: %v", runErr)
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
	log.Println("[INFO] StockPulse stopped")
}

// openTrades builds the trade repository for the configured backend. The
// returned closer is nil when the backend holds no resources.
func openTrades(cfg *config.Config) (trade.Repository, io.Closer, error) {
	switch cfg.Trades.Backend {
	case "memory":
		return trade.NewMemoryRepository(), nil, nil
	case "sqlite":
		kv, err := trade.NewSQLiteKV(cfg.Database.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return trade.NewPersistentRepository(kv), kv, nil
	default:
		return trade.NewPersistentRepository(trade.NewFileKV(cfg.Trades.Path)), nil, nil
	}
}
