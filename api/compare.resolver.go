package api

import (
	"errors"
	"fmt"

	"stocksense/internal/recommend"

	"github.com/gin-gonic/gin"
)

type compareRequest struct {
	Symbols []string `json:"symbols"`
}

func (m *ApiHandler) compareStocks(c *gin.Context) {
	var requestBody compareRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if len(requestBody.Symbols) < 2 {
		returnErrorJsonCode(fmt.Errorf("need at least two symbols to compare"), c, 400)
		return
	}

	result, err := m.Compare.Compare(c.Request.Context(), requestBody.Symbols)
	if errors.Is(err, recommend.ErrEmptyBatch) {
		returnErrorJsonCode(err, c, 404)
		return
	}
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, result)
}
