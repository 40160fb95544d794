package domain

type Action string

const (
	ActionStrongBuy  Action = "STRONG_BUY"
	ActionBuy        Action = "BUY"
	ActionAccumulate Action = "ACCUMULATE"
	ActionHold       Action = "HOLD"
	ActionReduce     Action = "REDUCE"
	ActionSell       Action = "SELL"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// Recommendation is the composed verdict for one symbol.
type Recommendation struct {
	Action         Action            `json:"action"`
	Confidence     Confidence        `json:"confidence"`
	CompositeScore int               `json:"composite_score"`
	Reasoning      string            `json:"reasoning"`
	KeyFactors     map[string]string `json:"key_factors"`
}
