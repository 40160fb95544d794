package api

import (
	"fmt"
	"time"

	"stocksense/internal/consensus"
	"stocksense/internal/markethours"
	"stocksense/internal/marketdata"
	"stocksense/internal/recommend"
	"stocksense/internal/universe"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApiHandler struct {
	Consensus     *consensus.Engine
	MarketData    *marketdata.Service
	Universe      *universe.Service
	SectorRanker  *recommend.SectorRanker
	GeneralRanker *recommend.GeneralRanker
	Compare       *recommend.CompareEngine
	Session       markethours.Session
	Log           *zap.SugaredLogger
}

func (m *ApiHandler) StartApi(port int) error {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to stocksense"})
	})
	router.GET("/api/market/status", m.marketStatus)
	router.GET("/api/stocks/search", m.searchStocks)
	router.GET("/api/stocks/:symbol", m.stockDetails)
	router.GET("/api/stocks/:symbol/price", m.consensusPrice)
	router.GET("/api/stocks/:symbol/analysis", m.comprehensiveAnalysis)
	router.GET("/api/sectors", m.listSectors)
	router.POST("/api/recommendations/sector", m.sectorRecommendations)
	router.POST("/api/recommendations", m.generalRecommendations)
	router.POST("/api/compare", m.compareStocks)

	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m *ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	requestID := uuid.NewString()
	ctx.Set("requestID", requestID)

	start := time.Now()
	ctx.Next()

	m.Log.Infow("api request",
		"requestID", requestID,
		"method", ctx.Request.Method,
		"route", ctx.FullPath(),
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"ip", ctx.ClientIP(),
	)
}
