package api

import (
	"testing"

	"stocksense/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_consensusResponse(t *testing.T) {
	t.Run("carries display strings beside the raw result", func(t *testing.T) {
		result := domain.ConsensusResult{Price: 3500, VariancePct: 0.25}
		body := consensusResponse("TCS", result)

		require.Equal(t, "TCS", body["symbol"])
		require.Equal(t, result, body["data"])
		require.Equal(t, "₹3,500", body["price_formatted"])
		require.Equal(t, "+0.25%", body["variance_formatted"])
	})

	t.Run("zero variance formats as a plain zero", func(t *testing.T) {
		body := consensusResponse("INFY", domain.ConsensusResult{Price: 101.5})
		require.Equal(t, "+0.00%", body["variance_formatted"])
	})
}
