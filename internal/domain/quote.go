package domain

// PriceQuote is one provider's view of a symbol's last traded price.
// Quotes are ephemeral - they exist only while a consensus is being computed.
type PriceQuote struct {
	Source string
	Price  float64
	Weight float64
}

type ConsensusStatus string

const (
	ConsensusVerified     ConsensusStatus = "VERIFIED"
	ConsensusWarning      ConsensusStatus = "WARNING"
	ConsensusUnstable     ConsensusStatus = "UNSTABLE"
	ConsensusSingleSource ConsensusStatus = "SINGLE_SOURCE"
	ConsensusError        ConsensusStatus = "ERROR"
)

// ConsensusResult is the reconciled price across all providers that answered.
// Price is only meaningful when Status != ConsensusError. VariancePct is 0
// when fewer than two valid quotes were available.
type ConsensusResult struct {
	Price         float64            `json:"price"`
	Status        ConsensusStatus    `json:"status"`
	VariancePct   float64            `json:"variance_pct"`
	Sources       map[string]float64 `json:"sources"`
	PrimarySource string             `json:"primary_source"`
	// Details carries the raw payload from the highest-weight provider that
	// answered, so downstream analyzers can read source-specific fields.
	Details map[string]any `json:"details,omitempty"`
	Message string         `json:"message,omitempty"`
}
