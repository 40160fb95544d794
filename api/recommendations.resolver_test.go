package api

import (
	"testing"

	"stocksense/internal/recommend"

	"github.com/stretchr/testify/require"
)

func Test_normalizeCriteria(t *testing.T) {
	t.Run("empty defaults to balanced", func(t *testing.T) {
		criteria, err := normalizeCriteria("")
		require.NoError(t, err)
		require.Equal(t, recommend.CriteriaBalanced, criteria)
	})

	t.Run("known values pass through", func(t *testing.T) {
		criteria, err := normalizeCriteria("growth")
		require.NoError(t, err)
		require.Equal(t, recommend.CriteriaGrowth, criteria)
	})

	t.Run("unknown value is rejected", func(t *testing.T) {
		_, err := normalizeCriteria("yolo")
		require.Error(t, err)
	})
}

func Test_buildGeneralRequest(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		req, err := buildGeneralRequest(generalRecommendationsRequest{Budget: 50000})
		require.NoError(t, err)
		require.Equal(t, recommend.ProfileBalanced, req.RiskProfile)
		require.Equal(t, recommend.HorizonMedium, req.Horizon)
		require.Equal(t, "50000", req.Budget.String())
	})

	t.Run("zero budget rejected", func(t *testing.T) {
		_, err := buildGeneralRequest(generalRecommendationsRequest{Budget: 0})
		require.Error(t, err)
	})

	t.Run("bad profile rejected", func(t *testing.T) {
		_, err := buildGeneralRequest(generalRecommendationsRequest{Budget: 1000, RiskProfile: "reckless"})
		require.Error(t, err)
	})
}
