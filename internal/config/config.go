package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries every tunable constant in the pipeline. The defaults
// reproduce the heuristic values the scoring model was shipped with; none of
// them are derived truths, so they all live here rather than in code.
type Config struct {
	Providers ProvidersConfig `yaml:"providers"`
	Consensus ConsensusConfig `yaml:"consensus"`
	Market    MarketConfig    `yaml:"market"`
	Cache     CacheConfig     `yaml:"cache"`
	Composite CompositeConfig `yaml:"composite"`
	Ranker    RankerConfig    `yaml:"ranker"`
	Universe  UniverseConfig  `yaml:"universe"`
	Screener  ScreenerConfig  `yaml:"screener"`
	News      NewsConfig      `yaml:"news"`
}

type ProvidersConfig struct {
	// Weights keyed by provider SourceName. Unrecognized sources fall back
	// to DefaultWeight.
	Weights       map[string]float64 `yaml:"weights"`
	DefaultWeight float64            `yaml:"default_weight"`
	TimeoutSecs   int                `yaml:"timeout_secs"`
	// YahooSuffix is appended to NSE symbols for Yahoo Finance lookups.
	YahooSuffix string `yaml:"yahoo_suffix"`
	// YahooSummaryURL is the quoteSummary API host for ratio statistics.
	YahooSummaryURL string `yaml:"yahoo_summary_url"`
}

func (p ProvidersConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSecs) * time.Second
}

type ConsensusConfig struct {
	// Variance thresholds as fractions: below Verified => VERIFIED, below
	// Warning => WARNING, else UNSTABLE.
	VerifiedVariance float64 `yaml:"verified_variance"`
	WarningVariance  float64 `yaml:"warning_variance"`
	MaxSanePrice     float64 `yaml:"max_sane_price"`
}

type MarketConfig struct {
	Timezone  string `yaml:"timezone"`
	OpenHour  int    `yaml:"open_hour"`
	OpenMin   int    `yaml:"open_min"`
	CloseHour int    `yaml:"close_hour"`
	CloseMin  int    `yaml:"close_min"`
}

type CacheConfig struct {
	ConsensusTTLSecs int `yaml:"consensus_ttl_secs"`
	DetailsTTLSecs   int `yaml:"details_ttl_secs"`
	AnalysisTTLSecs  int `yaml:"analysis_ttl_secs"`
	HistoryTTLSecs   int `yaml:"history_ttl_secs"`
	UniverseTTLSecs  int `yaml:"universe_ttl_secs"`
}

type CompositeConfig struct {
	StabilityWeight   float64 `yaml:"stability_weight"`
	TimingWeight      float64 `yaml:"timing_weight"`
	RiskWeight        float64 `yaml:"risk_weight"`
	FundamentalWeight float64 `yaml:"fundamental_weight"`
}

type RankerConfig struct {
	Concurrency   int `yaml:"concurrency"`
	MaxPerSector  int `yaml:"max_per_sector"`
	AnalyzeLimit  int `yaml:"analyze_limit"`
	CompareLimit  int `yaml:"compare_limit"`
	DefaultPicks  int `yaml:"default_picks"`
	GeneralChecks int `yaml:"general_checks"`
}

type UniverseConfig struct {
	EquityListPath string `yaml:"equity_list_path"`
}

type ScreenerConfig struct {
	BaseURL string `yaml:"base_url"`
}

type NewsConfig struct {
	FeedURL  string `yaml:"feed_url"`
	MaxItems int    `yaml:"max_items"`
}

// Default returns the shipped constants: NSE session hours in IST, the
// 0.5%/1% variance bands, the provider weight table, and the 0.3/0.3/0.2/0.2
// composite weights.
func Default() Config {
	return Config{
		Providers: ProvidersConfig{
			Weights: map[string]float64{
				"NSE":           1.0,
				"YahooFinance":  0.8,
				"GoogleFinance": 0.6,
			},
			DefaultWeight:   0.5,
			TimeoutSecs:     10,
			YahooSuffix:     ".NS",
			YahooSummaryURL: "https://query1.finance.yahoo.com",
		},
		Consensus: ConsensusConfig{
			VerifiedVariance: 0.005,
			WarningVariance:  0.01,
			MaxSanePrice:     1_000_000,
		},
		Market: MarketConfig{
			Timezone:  "Asia/Kolkata",
			OpenHour:  9,
			OpenMin:   15,
			CloseHour: 15,
			CloseMin:  30,
		},
		Cache: CacheConfig{
			ConsensusTTLSecs: 60,
			DetailsTTLSecs:   300,
			AnalysisTTLSecs:  300,
			HistoryTTLSecs:   3600,
			UniverseTTLSecs:  86400,
		},
		Composite: CompositeConfig{
			StabilityWeight:   0.3,
			TimingWeight:      0.3,
			RiskWeight:        0.2,
			FundamentalWeight: 0.2,
		},
		Ranker: RankerConfig{
			Concurrency:   3,
			MaxPerSector:  2,
			AnalyzeLimit:  20,
			CompareLimit:  5,
			DefaultPicks:  5,
			GeneralChecks: 100,
		},
		Universe: UniverseConfig{
			EquityListPath: "data/equity_list.csv",
		},
		Screener: ScreenerConfig{
			BaseURL: "https://www.screener.in",
		},
		News: NewsConfig{
			FeedURL:  "https://news.google.com/rss/search",
			MaxItems: 5,
		},
	}
}

// Load reads YAML overrides on top of the defaults. A missing file is not an
// error - the defaults stand.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
