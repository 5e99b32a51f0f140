package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sales-insight/internal/api/models"
	"sales-insight/internal/engine"
	"sales-insight/internal/model"
	"sales-insight/internal/query"
)

const defaultRankLimit = 10

// RankHandler serves top-N rankings built directly from query parameters
type RankHandler struct {
	store *engine.Store
}

// NewRankHandler creates a new rank handler
func NewRankHandler(store *engine.Store) *RankHandler {
	return &RankHandler{store: store}
}

// Rank handles GET /api/v1/rank
func (h *RankHandler) Rank(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("INVALID_REQUEST", err.Error()))
		return
	}

	params, err := rankParams(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("INVALID_PARAM", err.Error()))
		return
	}

	eng := h.store.Engine()
	res := eng.Run(params)

	rankings := make([]models.Ranking, 0, len(res.Rows))
	for i, r := range res.Rows {
		rankings = append(rankings, models.Ranking{
			Rank:      i + 1,
			Key:       r.Key,
			Value:     r.Value.InexactFloat64(),
			Formatted: query.FormatCurrency(r.Value, eng.CurrencySymbol()),
		})
	}

	c.JSON(http.StatusOK, models.RankResponse{
		Answer:   eng.Format(params, res),
		Params:   toParamsResponse(params),
		Rankings: rankings,
		EngineID: eng.ID(),
	})
}

// rankParams validates a RankRequest and converts it to query parameters
func rankParams(req models.RankRequest) (query.Params, error) {
	params := query.Params{Metric: model.MetricSales, Filters: query.Filters{}}

	if req.Metric != "" {
		m, ok := model.ParseMetric(req.Metric)
		if !ok {
			return params, fmt.Errorf("unknown metric %q", req.Metric)
		}
		params.Metric = m
	}

	dim, ok := model.ParseDimension(req.Dimension)
	if !ok || !dim.Rankable() {
		return params, fmt.Errorf("dimension must be one of Region, State, Category, Product (got %q)", req.Dimension)
	}

	n := req.N
	if n < 0 {
		return params, fmt.Errorf("n must be positive")
	}
	if n == 0 {
		n = defaultRankLimit
	}
	params.TopN = &query.TopN{N: n, Dimension: dim}

	if req.Year != 0 {
		if req.Year < 1900 || req.Year > 2099 {
			return params, fmt.Errorf("year must be between 1900 and 2099")
		}
		w := query.CalendarYear(req.Year)
		params.TimeWindow = &w
	}

	if state := strings.TrimSpace(req.State); state != "" {
		if name, ok := model.StateForAbbreviation(state); ok && len(state) == 2 {
			state = name
		} else if name, ok := model.CanonicalStateName(state); ok {
			state = name
		}
		params.Filters[model.ColState] = state
	}
	if category := strings.TrimSpace(req.Category); category != "" {
		params.Filters[model.ColCategory] = category
	}
	return params, nil
}
