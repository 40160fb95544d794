package api

import (
	"errors"
	"fmt"

	"stocksense/internal/recommend"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type sectorRecommendationsRequest struct {
	Sector   string `json:"sector"`
	Limit    int    `json:"limit"`
	Criteria string `json:"criteria"`
}

func (m *ApiHandler) sectorRecommendations(c *gin.Context) {
	var requestBody sectorRecommendationsRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if requestBody.Sector == "" {
		returnErrorJsonCode(fmt.Errorf("missing sector"), c, 400)
		return
	}

	criteria, err := normalizeCriteria(requestBody.Criteria)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	picks, err := m.SectorRanker.TopPicks(c.Request.Context(), requestBody.Sector, requestBody.Limit, criteria)
	if errors.Is(err, recommend.ErrEmptyBatch) {
		returnErrorJsonCode(err, c, 404)
		return
	}
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, picks)
}

func (m *ApiHandler) listSectors(c *gin.Context) {
	c.JSON(200, gin.H{
		"sectors": m.Universe.AvailableSectors(),
	})
}

type generalRecommendationsRequest struct {
	Budget      float64  `json:"budget"`
	RiskProfile string   `json:"risk_profile"`
	Horizon     string   `json:"investment_horizon"`
	Limit       int      `json:"limit"`
	Preferences []string `json:"preferences"`
}

func (m *ApiHandler) generalRecommendations(c *gin.Context) {
	var requestBody generalRecommendationsRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	req, err := buildGeneralRequest(requestBody)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	recs, err := m.GeneralRanker.Recommend(c.Request.Context(), req)
	if errors.Is(err, recommend.ErrEmptyBatch) {
		returnErrorJsonCode(err, c, 404)
		return
	}
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, recs)
}

func normalizeCriteria(raw string) (recommend.Criteria, error) {
	switch recommend.Criteria(raw) {
	case "":
		return recommend.CriteriaBalanced, nil
	case recommend.CriteriaBalanced, recommend.CriteriaStability, recommend.CriteriaGrowth, recommend.CriteriaValue:
		return recommend.Criteria(raw), nil
	}
	return "", fmt.Errorf("unknown criteria %q", raw)
}

func buildGeneralRequest(body generalRecommendationsRequest) (recommend.GeneralRequest, error) {
	if body.Budget <= 0 {
		return recommend.GeneralRequest{}, fmt.Errorf("budget must be positive")
	}

	profile := recommend.RiskProfile(body.RiskProfile)
	switch profile {
	case "":
		profile = recommend.ProfileBalanced
	case recommend.ProfileConservative, recommend.ProfileBalanced, recommend.ProfileAggressive:
	default:
		return recommend.GeneralRequest{}, fmt.Errorf("unknown risk profile %q", body.RiskProfile)
	}

	horizon := recommend.Horizon(body.Horizon)
	switch horizon {
	case "":
		horizon = recommend.HorizonMedium
	case recommend.HorizonShort, recommend.HorizonMedium, recommend.HorizonLong:
	default:
		return recommend.GeneralRequest{}, fmt.Errorf("unknown investment horizon %q", body.Horizon)
	}

	return recommend.GeneralRequest{
		Budget:      decimal.NewFromFloat(body.Budget),
		RiskProfile: profile,
		Horizon:     horizon,
		Limit:       body.Limit,
		Preferences: body.Preferences,
	}, nil
}
