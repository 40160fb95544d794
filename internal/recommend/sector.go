package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"stocksense/internal/config"
	"stocksense/internal/domain"

	"go.uber.org/zap"
)

// SectorSource discovers candidate symbols for a sector query.
type SectorSource interface {
	SectorListings(ctx context.Context, query string) (matched string, listings []domain.Listing, err error)
	AvailableSectors() []string
}

type SectorRanker struct {
	analyzer Analyzer
	universe SectorSource
	cfg      config.RankerConfig
	log      *zap.SugaredLogger
}

func NewSectorRanker(analyzer Analyzer, universe SectorSource, cfg config.RankerConfig, log *zap.SugaredLogger) *SectorRanker {
	return &SectorRanker{analyzer: analyzer, universe: universe, cfg: cfg, log: log}
}

type SectorPicks struct {
	Sector          string              `json:"sector"`
	Query           string              `json:"query"`
	TopPicks        []domain.RankedPick `json:"top_picks"`
	TotalAnalyzed   int                 `json:"total_analyzed"`
	TotalInSector   int                 `json:"total_in_sector"`
	Overview        SectorOverview      `json:"sector_overview"`
	RankingCriteria Criteria            `json:"ranking_criteria"`
}

type SectorOverview struct {
	Health              string `json:"sector_health"`
	Outlook             string `json:"outlook"`
	AverageStability    int    `json:"average_stability"`
	AverageScore        int    `json:"average_score"`
	BuyRecommendations  int    `json:"buy_recommendations"`
	HoldRecommendations int    `json:"hold_recommendations"`
	TotalStocks         int    `json:"total_stocks"`
}

// TopPicks discovers the sector universe, analyzes up to the configured
// candidate cap concurrently, and returns the best picks under the
// per-sector diversification rule.
func (r *SectorRanker) TopPicks(ctx context.Context, query string, limit int, criteria Criteria) (*SectorPicks, error) {
	if limit <= 0 {
		limit = r.cfg.DefaultPicks
	}

	matched, listings, err := r.universe.SectorListings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("discover sector %q: %w", query, err)
	}
	if len(listings) == 0 {
		return nil, fmt.Errorf("no stocks found for %q, try one of: %s", query, strings.Join(r.universe.AvailableSectors(), ", "))
	}

	candidates := listings
	if len(candidates) > r.cfg.AnalyzeLimit {
		candidates = candidates[:r.cfg.AnalyzeLimit]
	}
	r.log.Infow("analyzing sector", "sector", matched, "candidates", len(candidates), "criteria", criteria)

	results := analyzeBatch(ctx, r.analyzer, candidates, r.cfg.Concurrency, r.log)
	if len(results) == 0 {
		return nil, fmt.Errorf("sector %q: %w", matched, ErrEmptyBatch)
	}

	picks := make([]domain.RankedPick, 0, len(results))
	for _, res := range results {
		picks = append(picks, pickFromBundle(res.listing, res.bundle, criteriaScore(res.bundle, criteria)))
	}
	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].CompositeScore > picks[j].CompositeScore
	})

	return &SectorPicks{
		Sector:          matched,
		Query:           query,
		TopPicks:        diversify(picks, r.cfg.MaxPerSector, limit),
		TotalAnalyzed:   len(picks),
		TotalInSector:   len(listings),
		Overview:        sectorOverview(picks),
		RankingCriteria: criteria,
	}, nil
}

func sectorOverview(picks []domain.RankedPick) SectorOverview {
	if len(picks) == 0 {
		return SectorOverview{}
	}

	sumStability := 0
	sumComposite := 0.0
	buys, holds := 0, 0
	for _, p := range picks {
		sumStability += p.StabilityScore
		sumComposite += p.CompositeScore
		switch p.Action {
		case domain.ActionBuy, domain.ActionStrongBuy:
			buys++
		case domain.ActionHold:
			holds++
		}
	}

	avgComposite := sumComposite / float64(len(picks))
	health, outlook := "WEAK", "Sector facing challenges - caution advised"
	switch {
	case avgComposite >= 70:
		health, outlook = "STRONG", "Positive sector outlook with multiple strong performers"
	case avgComposite >= 55:
		health, outlook = "HEALTHY", "Stable sector with good opportunities"
	case avgComposite >= 40:
		health, outlook = "MIXED", "Mixed signals - selective opportunities"
	}

	return SectorOverview{
		Health:              health,
		Outlook:             outlook,
		AverageStability:    sumStability / len(picks),
		AverageScore:        int(avgComposite + 0.5),
		BuyRecommendations:  buys,
		HoldRecommendations: holds,
		TotalStocks:         len(picks),
	}
}
