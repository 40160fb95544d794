package domain

import "github.com/shopspring/decimal"

// Listing is one symbol from the equity universe collaborator.
type Listing struct {
	Symbol   string `json:"symbol" csv:"SYMBOL"`
	Name     string `json:"name" csv:"NAME OF COMPANY"`
	Series   string `json:"-" csv:"SERIES"`
	Industry string `json:"industry,omitempty" csv:"INDUSTRY"`
}

// RankedPick is one entry in a ranker's output. Picks live only for the
// duration of a single ranking request.
type RankedPick struct {
	Symbol            string          `json:"symbol"`
	Name              string          `json:"name"`
	Sector            string          `json:"sector"`
	Price             float64         `json:"price"`
	CompositeScore    float64         `json:"composite_score"`
	StabilityScore    int             `json:"stability_score"`
	TimingSignal      string          `json:"timing_signal"`
	RiskLevel         string          `json:"risk_level"`
	Action            Action          `json:"recommendation"`
	Confidence        Confidence      `json:"confidence"`
	Reasoning         string          `json:"reasoning"`
	Highlights        []string        `json:"key_highlights,omitempty"`
	FundamentalHealth string          `json:"fundamental_health"`
	NewsSentiment     string          `json:"news_sentiment"`
	AllocationAmount  decimal.Decimal `json:"allocation_amount"`
	AllocationPercent float64         `json:"allocation_percent"`
	SuggestedShares   int64           `json:"suggested_shares"`
}
