package dashboard

import (
	"fmt"
	"strings"

	"StockPulse/internal/notifier"
)

// CommandResult is the outcome of a remote command.
type CommandResult struct {
	Reply   string
	Refetch bool // the displayed ticker must be fetched again
}

const commandHelp = `Available commands:
/quote - current snapshot and P/L
/trades - tracked entry prices
/ticker SYMBOL - switch the dashboard
/clear SYMBOL - reset one entry price
/clearall - reset every entry price`

// HandleCommand runs a remote chat command against the dashboard.
func (c *Coordinator) HandleCommand(text string) CommandResult {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return CommandResult{Reply: commandHelp}
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch strings.ToLower(fields[0]) {
	case "/quote":
		return CommandResult{Reply: notifier.FormatQuote(c.State.Latest, c.State.Signal, c.State.Position)}
	case "/trades":
		return CommandResult{Reply: notifier.FormatPositions(c.Tracker.Records())}
	case "/ticker":
		ticker, ok := c.Search(arg)
		if !ok {
			return CommandResult{Reply: "Usage: /ticker SYMBOL"}
		}
		return CommandResult{Reply: fmt.Sprintf("Switching dashboard to %s.", ticker), Refetch: true}
	case "/clear":
		ticker := normalizeTicker(arg)
		if ticker == "" {
			return CommandResult{Reply: "Usage: /clear SYMBOL"}
		}
		refetch := c.ClearTrade(ticker)
		return CommandResult{Reply: fmt.Sprintf("Cleared entry price for %s.", ticker), Refetch: refetch}
	case "/clearall":
		refetch := c.ClearAllTrades()
		return CommandResult{Reply: "Cleared all entry prices.", Refetch: refetch}
	default:
		return CommandResult{Reply: commandHelp}
	}
}

func normalizeTicker(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
