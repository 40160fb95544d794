package domain

// FactorScore is one sub-score within a Score breakdown: the observed metric
// value rendered for humans, the points it contributed, and the factor's cap.
type FactorScore struct {
	Value        string `json:"value"`
	Contribution int    `json:"contribution"`
	Max          int    `json:"max"`
}

// Score is the output of one scoring engine. Total is always clamped to
// [0,100], even when the engine was fed garbage or nothing at all.
type Score struct {
	Total     int                    `json:"total"`
	Breakdown map[string]FactorScore `json:"breakdown"`
	// Label is engine-specific: a stability interpretation, a timing signal,
	// or a risk level.
	Label string `json:"label"`
}

// Clamp100 bounds v to [0,100].
func Clamp100(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v + 0.5)
}
