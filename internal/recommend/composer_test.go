package recommend

import (
	"testing"

	"stocksense/internal/config"
	"stocksense/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func scoreWith(total int, label string) domain.Score {
	return domain.Score{Total: total, Label: label}
}

// composeAt builds inputs whose weighted composite equals exactly x under
// the default 0.3/0.3/0.2/0.2 weights.
func composeAt(t *testing.T, x int, timingLabel string) domain.Recommendation {
	t.Helper()
	fundamental := &domain.FundamentalReport{
		HealthScore: x,
		Valuation:   domain.Assessment{Level: "FAIR"},
	}
	rec := Compose(
		scoreWith(x, "LABEL"),
		scoreWith(x, timingLabel),
		scoreWith(100-x, "MEDIUM"),
		fundamental,
		config.Default().Composite,
	)
	require.Equal(t, x, rec.CompositeScore)
	return rec
}

func actionRank(a domain.Action) int {
	switch a {
	case domain.ActionSell:
		return 0
	case domain.ActionReduce:
		return 1
	case domain.ActionHold:
		return 2
	case domain.ActionAccumulate:
		return 3
	case domain.ActionBuy:
		return 4
	case domain.ActionStrongBuy:
		return 5
	}
	return -1
}

func TestCompose(t *testing.T) {
	t.Run("action ladder boundaries", func(t *testing.T) {
		for _, tc := range []struct {
			composite int
			timing    string
			want      domain.Action
		}{
			{80, "BUY", domain.ActionStrongBuy},
			{80, "NEUTRAL", domain.ActionBuy},
			{75, "BUY", domain.ActionStrongBuy},
			{70, "NEUTRAL", domain.ActionBuy},
			{60, "BUY", domain.ActionAccumulate},
			{60, "NEUTRAL", domain.ActionHold},
			{45, "BUY", domain.ActionHold},
			{30, "NEUTRAL", domain.ActionReduce},
			{10, "WAIT", domain.ActionSell},
		} {
			rec := composeAt(t, tc.composite, tc.timing)
			require.Equal(t, tc.want, rec.Action, "composite=%d timing=%s", tc.composite, tc.timing)
		}
	})

	t.Run("action is monotonic in composite for a fixed timing signal", func(t *testing.T) {
		for _, timing := range []string{"BUY", "NEUTRAL", "WAIT"} {
			prev := -1
			for x := 0; x <= 100; x++ {
				rec := composeAt(t, x, timing)
				rank := actionRank(rec.Action)
				require.GreaterOrEqual(t, rank, prev, "timing=%s composite=%d", timing, x)
				prev = rank
			}
		}
	})

	t.Run("missing fundamentals fall back to neutral health", func(t *testing.T) {
		rec := Compose(
			scoreWith(60, "x"),
			scoreWith(60, "NEUTRAL"),
			scoreWith(40, "MEDIUM"),
			nil,
			config.Default().Composite,
		)
		// 60*0.3 + 60*0.3 + 60*0.2 + 50*0.2 = 58
		require.Equal(t, 58, rec.CompositeScore)
		require.Equal(t, "FAIR", rec.KeyFactors["fundamentals"])
	})

	t.Run("key factors carry the inputs", func(t *testing.T) {
		rec := composeAt(t, 68, "BUY")
		require.Equal(t, "", cmp.Diff(map[string]string{
			"stability":    "68/100",
			"timing":       "BUY",
			"risk":         "MEDIUM",
			"fundamentals": "FAIR",
		}, rec.KeyFactors))
	})
}

func TestDiversify(t *testing.T) {
	pick := func(symbol, sector string, score float64) domain.RankedPick {
		return domain.RankedPick{Symbol: symbol, Sector: sector, CompositeScore: score}
	}

	t.Run("caps picks per sector", func(t *testing.T) {
		sorted := []domain.RankedPick{
			pick("A", "IT", 90),
			pick("B", "IT", 85),
			pick("C", "IT", 80),
			pick("D", "AUTO", 75),
			pick("E", "PHARMA", 70),
		}

		got := diversify(sorted, 2, 4)
		require.Len(t, got, 4)
		require.Equal(t, []string{"A", "B", "D", "E"}, symbols(got))
	})

	t.Run("undersized universe overflows the cap to fill the limit", func(t *testing.T) {
		sorted := []domain.RankedPick{
			pick("A", "IT", 90),
			pick("B", "IT", 85),
			pick("C", "IT", 80),
		}

		got := diversify(sorted, 2, 3)
		require.Len(t, got, 3)
	})

	t.Run("stops at the limit", func(t *testing.T) {
		sorted := []domain.RankedPick{
			pick("A", "IT", 90),
			pick("B", "AUTO", 85),
			pick("C", "PHARMA", 80),
		}
		require.Len(t, diversify(sorted, 2, 2), 2)
	})
}

func symbols(picks []domain.RankedPick) []string {
	out := make([]string, len(picks))
	for i, p := range picks {
		out[i] = p.Symbol
	}
	return out
}
