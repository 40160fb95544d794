package recommend

import (
	"context"
	"errors"
	"testing"

	"stocksense/internal/config"
	"stocksense/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAnalyzer struct {
	bundles map[string]*domain.AnalysisBundle
}

func (f *fakeAnalyzer) GetComprehensiveAnalysis(_ context.Context, symbol string) (*domain.AnalysisBundle, error) {
	if b, ok := f.bundles[symbol]; ok {
		return b, nil
	}
	return nil, errors.New("symbol unavailable")
}

func (f *fakeAnalyzer) GetAggregatedDetails(_ context.Context, symbol string) (*domain.AggregatedDetails, error) {
	b, ok := f.bundles[symbol]
	if !ok {
		return nil, errors.New("symbol unavailable")
	}
	return &domain.AggregatedDetails{
		Symbol:     symbol,
		MarketData: domain.ConsensusResult{Price: b.Price, Status: b.PriceStatus},
	}, nil
}

type fakeSectorSource struct {
	matched  string
	listings []domain.Listing
}

func (f *fakeSectorSource) SectorListings(_ context.Context, _ string) (string, []domain.Listing, error) {
	return f.matched, f.listings, nil
}

func (f *fakeSectorSource) AvailableSectors() []string {
	return []string{"AUTO", "IT", "BANK"}
}

type fakeUniverse struct {
	listings []domain.Listing
}

func (f *fakeUniverse) Listings(_ context.Context) ([]domain.Listing, error) {
	return f.listings, nil
}

func testBundle(symbol string, price float64, stability, timing, risk int) *domain.AnalysisBundle {
	return &domain.AnalysisBundle{
		Symbol:      symbol,
		Price:       price,
		PriceStatus: domain.ConsensusVerified,
		Recommendation: domain.Recommendation{
			Action:     domain.ActionHold,
			Confidence: domain.ConfidenceMedium,
		},
		Scores: domain.ScoreSet{
			Stability: domain.Score{Total: stability, Label: "MEDIUM_STABILITY"},
			Timing:    domain.Score{Total: timing, Label: "NEUTRAL"},
			Risk:      domain.Score{Total: risk, Label: "MEDIUM"},
		},
		Fundamental: &domain.FundamentalReport{
			HealthScore:     60,
			Valuation:       domain.Assessment{Level: "FAIR"},
			GrowthPotential: domain.Assessment{Level: "MODERATE"},
		},
		News: domain.NewsReport{Sentiment: "NEUTRAL"},
	}
}

func listing(symbol, industry string) domain.Listing {
	return domain.Listing{Symbol: symbol, Name: symbol + " Ltd", Series: "EQ", Industry: industry}
}

func testRankerConfig() config.RankerConfig {
	return config.Default().Ranker
}

func TestSectorRanker(t *testing.T) {
	log := zap.NewNop().Sugar()

	t.Run("picks come back sorted and failures are skipped", func(t *testing.T) {
		analyzer := &fakeAnalyzer{bundles: map[string]*domain.AnalysisBundle{
			"TATAMOTORS": testBundle("TATAMOTORS", 700, 80, 70, 20),
			"MARUTI":     testBundle("MARUTI", 11000, 60, 50, 40),
			"EICHERMOT":  testBundle("EICHERMOT", 4000, 40, 40, 60),
		}}
		universe := &fakeSectorSource{matched: "AUTO", listings: []domain.Listing{
			listing("TATAMOTORS", "Auto"),
			listing("MARUTI", "Auto"),
			listing("EICHERMOT", "Auto"),
			listing("DEADCO", "Auto"), // analysis fails, must not sink the batch
		}}

		ranker := NewSectorRanker(analyzer, universe, testRankerConfig(), log)
		picks, err := ranker.TopPicks(context.Background(), "auto", 5, CriteriaBalanced)
		require.NoError(t, err)

		require.Equal(t, "AUTO", picks.Sector)
		require.Equal(t, 3, picks.TotalAnalyzed)
		require.Equal(t, 4, picks.TotalInSector)
		for i := 1; i < len(picks.TopPicks); i++ {
			require.GreaterOrEqual(t, picks.TopPicks[i-1].CompositeScore, picks.TopPicks[i].CompositeScore)
		}
		require.Equal(t, "TATAMOTORS", picks.TopPicks[0].Symbol)
	})

	t.Run("all failures is an empty-batch error", func(t *testing.T) {
		analyzer := &fakeAnalyzer{bundles: map[string]*domain.AnalysisBundle{}}
		universe := &fakeSectorSource{matched: "IT", listings: []domain.Listing{listing("INFY", "IT")}}

		ranker := NewSectorRanker(analyzer, universe, testRankerConfig(), log)
		_, err := ranker.TopPicks(context.Background(), "it", 5, CriteriaBalanced)
		require.ErrorIs(t, err, ErrEmptyBatch)
	})

	t.Run("no more than two picks per industry", func(t *testing.T) {
		bundles := map[string]*domain.AnalysisBundle{}
		listings := []domain.Listing{}
		for _, sym := range []string{"A", "B", "C", "D", "E", "F"} {
			bundles[sym] = testBundle(sym, 100, 70, 60, 30)
			industry := "Software"
			if sym == "E" || sym == "F" {
				industry = "Hardware"
			}
			listings = append(listings, listing(sym, industry))
		}

		ranker := NewSectorRanker(&fakeAnalyzer{bundles: bundles}, &fakeSectorSource{matched: "IT", listings: listings}, testRankerConfig(), log)
		picks, err := ranker.TopPicks(context.Background(), "it", 4, CriteriaBalanced)
		require.NoError(t, err)

		counts := map[string]int{}
		for _, p := range picks.TopPicks {
			counts[p.Sector]++
		}
		require.LessOrEqual(t, counts["Software"], 2)
		require.LessOrEqual(t, counts["Hardware"], 2)
	})

	t.Run("criteria reweighting changes the order", func(t *testing.T) {
		steady := testBundle("STEADY", 100, 90, 30, 10)
		momo := testBundle("MOMO", 100, 40, 90, 50)
		momo.Fundamental.GrowthPotential.Level = "HIGH"

		analyzer := &fakeAnalyzer{bundles: map[string]*domain.AnalysisBundle{"STEADY": steady, "MOMO": momo}}
		universe := &fakeSectorSource{matched: "IT", listings: []domain.Listing{
			listing("STEADY", "IT"), listing("MOMO", "IT"),
		}}
		ranker := NewSectorRanker(analyzer, universe, testRankerConfig(), log)

		byStability, err := ranker.TopPicks(context.Background(), "it", 2, CriteriaStability)
		require.NoError(t, err)
		require.Equal(t, "STEADY", byStability.TopPicks[0].Symbol)

		byGrowth, err := ranker.TopPicks(context.Background(), "it", 2, CriteriaGrowth)
		require.NoError(t, err)
		require.Equal(t, "MOMO", byGrowth.TopPicks[0].Symbol)
	})
}

func TestGeneralRanker(t *testing.T) {
	log := zap.NewNop().Sugar()

	newRanker := func(bundles map[string]*domain.AnalysisBundle, listings []domain.Listing) *GeneralRanker {
		return NewGeneralRanker(&fakeAnalyzer{bundles: bundles}, &fakeUniverse{listings: listings}, testRankerConfig(), log)
	}

	t.Run("unaffordable symbols are filtered out", func(t *testing.T) {
		bundles := map[string]*domain.AnalysisBundle{
			"CHEAP":  testBundle("CHEAP", 100, 70, 60, 30),
			"PRICEY": testBundle("PRICEY", 50000, 90, 80, 10),
		}
		ranker := newRanker(bundles, []domain.Listing{listing("CHEAP", "IT"), listing("PRICEY", "IT")})

		// one PRICEY share costs more than 20% of the budget
		got, err := ranker.Recommend(context.Background(), GeneralRequest{
			Budget:      decimal.NewFromInt(10000),
			RiskProfile: ProfileBalanced,
			Horizon:     HorizonMedium,
			Limit:       5,
		})
		require.NoError(t, err)
		require.Equal(t, []string{"CHEAP"}, symbols(got.Recommendations))
	})

	t.Run("conservative allocation splits the budget equally", func(t *testing.T) {
		bundles := map[string]*domain.AnalysisBundle{
			"A": testBundle("A", 100, 80, 60, 20),
			"B": testBundle("B", 200, 70, 50, 30),
			"C": testBundle("C", 300, 60, 40, 40),
		}
		ranker := newRanker(bundles, []domain.Listing{
			listing("A", "IT"), listing("B", "AUTO"), listing("C", "PHARMA"),
		})

		got, err := ranker.Recommend(context.Background(), GeneralRequest{
			Budget:      decimal.NewFromInt(30000),
			RiskProfile: ProfileConservative,
			Horizon:     HorizonLong,
			Limit:       3,
		})
		require.NoError(t, err)
		require.Len(t, got.Recommendations, 3)

		for _, p := range got.Recommendations {
			require.True(t, p.AllocationAmount.Equal(decimal.NewFromInt(10000)), "got %s", p.AllocationAmount)
			require.InDelta(t, 33.3, p.AllocationPercent, 0.1)
			require.Equal(t, decimal.NewFromInt(10000).Div(decimal.NewFromFloat(p.Price)).IntPart(), p.SuggestedShares)
		}
		require.True(t, got.AllocatedAmount.Equal(decimal.NewFromInt(30000)))
	})

	t.Run("balanced allocation weights by score and spends the budget", func(t *testing.T) {
		bundles := map[string]*domain.AnalysisBundle{
			"A": testBundle("A", 100, 90, 80, 10),
			"B": testBundle("B", 100, 40, 30, 70),
		}
		ranker := newRanker(bundles, []domain.Listing{listing("A", "IT"), listing("B", "AUTO")})

		got, err := ranker.Recommend(context.Background(), GeneralRequest{
			Budget:      decimal.NewFromInt(10000),
			RiskProfile: ProfileBalanced,
			Horizon:     HorizonMedium,
			Limit:       2,
		})
		require.NoError(t, err)
		require.Len(t, got.Recommendations, 2)

		require.Equal(t, "A", got.Recommendations[0].Symbol)
		require.True(t, got.Recommendations[0].AllocationAmount.GreaterThan(got.Recommendations[1].AllocationAmount))

		total := got.Recommendations[0].AllocationAmount.Add(got.Recommendations[1].AllocationAmount)
		diff := total.Sub(decimal.NewFromInt(10000)).Abs()
		require.True(t, diff.LessThan(decimal.NewFromFloat(0.05)), "allocations drifted by %s", diff)
	})

	t.Run("aggressive allocation is top-heavy", func(t *testing.T) {
		bundles := map[string]*domain.AnalysisBundle{}
		listings := []domain.Listing{}
		industries := []string{"IT", "AUTO", "PHARMA", "FMCG", "METAL"}
		for i, sym := range []string{"A", "B", "C", "D", "E"} {
			bundles[sym] = testBundle(sym, 100, 90-i*10, 60, 20+i*10)
			listings = append(listings, listing(sym, industries[i]))
		}
		ranker := newRanker(bundles, listings)

		got, err := ranker.Recommend(context.Background(), GeneralRequest{
			Budget:      decimal.NewFromInt(15000),
			RiskProfile: ProfileAggressive,
			Horizon:     HorizonShort,
			Limit:       5,
		})
		require.NoError(t, err)
		require.Len(t, got.Recommendations, 5)

		topShare := decimal.NewFromInt(15000).Mul(decimal.NewFromFloat(0.8)).Div(decimal.NewFromInt(3)).Round(2)
		for i := 0; i < 3; i++ {
			require.True(t, got.Recommendations[i].AllocationAmount.Equal(topShare))
		}
		require.True(t, got.Recommendations[3].AllocationAmount.LessThan(topShare))
	})

	t.Run("empty universe errors", func(t *testing.T) {
		ranker := newRanker(map[string]*domain.AnalysisBundle{}, nil)
		_, err := ranker.Recommend(context.Background(), GeneralRequest{
			Budget:      decimal.NewFromInt(1000),
			RiskProfile: ProfileBalanced,
			Horizon:     HorizonMedium,
		})
		require.Error(t, err)
	})
}

func TestCompareEngine(t *testing.T) {
	log := zap.NewNop().Sugar()

	t.Run("winners per category", func(t *testing.T) {
		stable := testBundle("STABLE", 100, 95, 40, 15)
		stable.Recommendation.CompositeScore = 70
		cheap := testBundle("CHEAP", 50, 50, 60, 40)
		cheap.Recommendation.CompositeScore = 75
		cheap.Fundamental.Valuation.Level = "UNDERVALUED"
		cheap.Ratios.DebtToEquity = domain.Float64Ptr(0.4)

		engine := NewCompareEngine(&fakeAnalyzer{bundles: map[string]*domain.AnalysisBundle{
			"STABLE": stable,
			"CHEAP":  cheap,
		}}, testRankerConfig(), log)

		got, err := engine.Compare(context.Background(), []string{"STABLE", "CHEAP", "MISSING"})
		require.NoError(t, err)

		require.Len(t, got.Comparison, 2)
		require.Equal(t, "CHEAP", got.Winners["best_overall"])
		require.Equal(t, "STABLE", got.Winners["most_stable"])
		require.Equal(t, "STABLE", got.Winners["lowest_risk"])
		require.Equal(t, "CHEAP", got.Winners["best_value"])
		require.Equal(t, "CHEAP", got.Winners["best_equity_to_debt"])
		require.Contains(t, got.Summary, "CHEAP is the top pick")
	})

	t.Run("nothing analyzable is an error", func(t *testing.T) {
		engine := NewCompareEngine(&fakeAnalyzer{bundles: map[string]*domain.AnalysisBundle{}}, testRankerConfig(), log)
		_, err := engine.Compare(context.Background(), []string{"X", "Y"})
		require.ErrorIs(t, err, ErrEmptyBatch)
	})
}
