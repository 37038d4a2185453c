package dashboard

import (
	"fmt"
	"math"
	"strings"

	"StockPulse/internal/model"
)

// Predicted move thresholds in percent.
const (
	strongMove     = 4.0
	moderateMove   = 1.5
	outlookMinimum = 0.1
)

// ComputeSignal maps the backend's predicted move to a badge.
func ComputeSignal(percentMove float64) model.TradingSignal {
	if math.IsNaN(percentMove) || math.IsInf(percentMove, 0) {
		percentMove = 0
	}
	up := percentMove >= 0
	sig := model.TradingSignal{
		Label:                  "HOLD",
		Class:                  model.ClassHold,
		BaseMessage:            "Minimal movement predicted. Maintaining position recommended.",
		PredictedChangePercent: percentMove,
	}
	switch move := math.Abs(percentMove); {
	case move >= strongMove && up:
		sig.Label, sig.Class = "STRONG BUY", model.ClassStrongBuy
		sig.BaseMessage = "AI expects strong bullish momentum. Consider building a position."
	case move >= strongMove:
		sig.Label, sig.Class = "STRONG SELL", model.ClassSell
		sig.BaseMessage = "AI expects a sharp drop. Consider trimming or hedging exposure."
	case move >= moderateMove && up:
		sig.Label, sig.Class = "BUY", model.ClassBuy
		sig.BaseMessage = "Upward move forecasted. Entry opportunity detected."
	case move >= moderateMove:
		sig.Label, sig.Class = "SELL", model.ClassSell
		sig.BaseMessage = "Downside pressure forecasted. Review risk exposure."
	}
	sig.Message = ComposeMessage(sig.BaseMessage, nil, percentMove)
	return sig
}

// ComposeMessage joins the base advice, the news sentiment when known and
// the model outlook when the move is noticeable.
func ComposeMessage(base string, sentiment *model.Sentiment, move float64) string {
	var segments []string
	if base != "" {
		segments = append(segments, base)
	}
	if sentiment != nil {
		label := sentiment.Label
		if label == "" {
			label = "Neutral"
		}
		segments = append(segments, fmt.Sprintf("News sentiment: %s (%.1f%% bullish, %.1f%% bearish).",
			label, finiteOrZero(sentiment.BullishPercent), finiteOrZero(sentiment.BearishPercent)))
	}
	if len(segments) == 0 {
		segments = append(segments, "No trading insights available.")
	}
	if !math.IsNaN(move) && math.Abs(move) >= outlookMinimum {
		sign := ""
		if move >= 0 {
			sign = "+"
		}
		segments = append(segments, fmt.Sprintf("Model outlook: %s%.2f%% expected move.", sign, move))
	}
	return strings.Join(segments, " ")
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
