package model

// SignalClass is the badge style of a trading signal.
type SignalClass string

const (
	ClassStrongBuy SignalClass = "strong-buy"
	ClassBuy       SignalClass = "buy"
	ClassHold      SignalClass = "hold"
	ClassSell      SignalClass = "sell"
)

// TradingSignal is the badge derived from the predicted move.
type TradingSignal struct {
	Label                  string
	Class                  SignalClass
	BaseMessage            string
	Message                string // BaseMessage plus sentiment and outlook
	PredictedChangePercent float64
}
