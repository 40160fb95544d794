package domain

// Report types produced by the analyzers. They are value objects built fresh
// per request and cached only as part of an AnalysisBundle.

type MovingAverage struct {
	Value  *float64 `json:"value"` // nil when there were not enough bars
	Signal string   `json:"signal"`
}

type RSIReport struct {
	Value  float64 `json:"value"`
	Signal string  `json:"signal"`
}

type MACDReport struct {
	MACD       float64 `json:"macd"`
	SignalLine float64 `json:"signal_line"`
	Histogram  float64 `json:"histogram"`
	Signal     string  `json:"signal"`
}

type BollingerReport struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
	Signal string  `json:"signal"`
}

type SupportResistance struct {
	Support    float64 `json:"support"`
	Resistance float64 `json:"resistance"`
	Pivot      float64 `json:"pivot"`
}

type VolumeReport struct {
	Ratio  float64 `json:"ratio"`
	Signal string  `json:"signal"`
}

type TrendReport struct {
	Status string   `json:"status"`
	MA50   *float64 `json:"ma50,omitempty"`
	MA200  *float64 `json:"ma200,omitempty"`
}

type TechnicalReport struct {
	CurrentPrice      float64                  `json:"current_price"`
	MovingAverages    map[string]MovingAverage `json:"moving_averages"`
	RSI               RSIReport                `json:"rsi"`
	MACD              MACDReport               `json:"macd"`
	Bollinger         BollingerReport          `json:"bollinger_bands"`
	SupportResistance SupportResistance        `json:"support_resistance"`
	Volume            VolumeReport             `json:"volume"`
	Trend             TrendReport              `json:"trend"`
	Signal            string                   `json:"signal"`
}

type Assessment struct {
	Level       string `json:"level"`
	Description string `json:"description"`
}

type FundamentalReport struct {
	HealthScore     int               `json:"health_score"`
	Valuation       Assessment        `json:"valuation"`
	FinancialHealth Assessment        `json:"financial_health"`
	GrowthPotential Assessment        `json:"growth_potential"`
	KeyMetrics      map[string]string `json:"key_metrics"`
}

type NewsReport struct {
	Sentiment   string `json:"sentiment"`
	Score       int    `json:"score"`
	RecentCount int    `json:"recent_count"`
	Positive    int    `json:"positive"`
	Negative    int    `json:"negative"`
	Neutral     int    `json:"neutral"`
	Summary     string `json:"summary"`
}

// AggregatedDetails is the snapshot assembled before analysis: consensus
// price, the ratio bag, and recent headlines, with each branch degrading
// independently.
type AggregatedDetails struct {
	Symbol         string            `json:"symbol"`
	MarketData     ConsensusResult   `json:"market_data"`
	PriceFormatted string            `json:"price_formatted"`
	Fundamentals   FundamentalRatios `json:"fundamentals"`
	News           []NewsItem        `json:"news"`
}

// ScoreSet groups the three engine outputs.
type ScoreSet struct {
	Stability Score `json:"stability"`
	Timing    Score `json:"timing"`
	Risk      Score `json:"risk"`
}

// AnalysisBundle is the full per-symbol analysis. It is built fresh per
// request and cached as a whole unit, never field by field.
type AnalysisBundle struct {
	Symbol         string             `json:"symbol"`
	Price          float64            `json:"price"`
	PriceStatus    ConsensusStatus    `json:"price_status"`
	Recommendation Recommendation     `json:"recommendation"`
	Scores         ScoreSet           `json:"scores"`
	Technical      *TechnicalReport   `json:"technical,omitempty"`
	TechnicalErr   string             `json:"technical_error,omitempty"`
	Fundamental    *FundamentalReport `json:"fundamental,omitempty"`
	News           NewsReport         `json:"news"`
	Ratios         FundamentalRatios  `json:"ratios"`
	NewsItems      []NewsItem         `json:"news_items"`
}
