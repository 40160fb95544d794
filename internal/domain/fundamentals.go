package domain

// FundamentalRatios is the flat ratio bag consumed by the fundamental
// analyzer and the scoring engines. Fields are pointers because upstream
// sources routinely omit them; nil means "not reported". Consumers fall back
// to neutral defaults (documented per consumer) rather than treating missing
// data as zero.
type FundamentalRatios struct {
	PERatio       *float64 `json:"pe_ratio,omitempty"`
	ForwardPE     *float64 `json:"forward_pe,omitempty"`
	PBRatio       *float64 `json:"pb_ratio,omitempty"`
	DebtToEquity  *float64 `json:"debt_to_equity,omitempty"` // ratio, not percent
	ROE           *float64 `json:"roe,omitempty"`            // percent
	ProfitMargin  *float64 `json:"profit_margin,omitempty"`  // percent
	RevenueGrowth *float64 `json:"revenue_growth,omitempty"` // percent
	CurrentRatio  *float64 `json:"current_ratio,omitempty"`
	QuickRatio    *float64 `json:"quick_ratio,omitempty"`
	Beta          *float64 `json:"beta,omitempty"`
	MarketCap     *float64 `json:"market_cap,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"` // percent
}

// Merge fills r's nil fields from other. Fields r already carries win, so
// merging sources in priority order keeps the preferred source's numbers.
func (r FundamentalRatios) Merge(other FundamentalRatios) FundamentalRatios {
	fill := func(dst **float64, src *float64) {
		if *dst == nil {
			*dst = src
		}
	}
	fill(&r.PERatio, other.PERatio)
	fill(&r.ForwardPE, other.ForwardPE)
	fill(&r.PBRatio, other.PBRatio)
	fill(&r.DebtToEquity, other.DebtToEquity)
	fill(&r.ROE, other.ROE)
	fill(&r.ProfitMargin, other.ProfitMargin)
	fill(&r.RevenueGrowth, other.RevenueGrowth)
	fill(&r.CurrentRatio, other.CurrentRatio)
	fill(&r.QuickRatio, other.QuickRatio)
	fill(&r.Beta, other.Beta)
	fill(&r.MarketCap, other.MarketCap)
	fill(&r.DividendYield, other.DividendYield)
	return r
}

// ValueOr returns *p, or fallback when p is nil.
func ValueOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func Float64Ptr(f float64) *float64 {
	return &f
}
