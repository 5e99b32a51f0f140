package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sales-insight/internal/analysis"
	"sales-insight/internal/api/models"
	"sales-insight/internal/engine"
	"sales-insight/internal/query"
)

// DatasetHandler describes and reloads the dataset being served
type DatasetHandler struct {
	store  *engine.Store
	reload func() error
}

// NewDatasetHandler creates a new dataset handler. reload may be nil, in
// which case POST /api/v1/dataset/reload answers 501.
func NewDatasetHandler(store *engine.Store, reload func() error) *DatasetHandler {
	return &DatasetHandler{store: store, reload: reload}
}

// GetDataset handles GET /api/v1/dataset
func (h *DatasetHandler) GetDataset(c *gin.Context) {
	c.JSON(http.StatusOK, datasetResponse(h.store.Engine()))
}

// Reload handles POST /api/v1/dataset/reload
func (h *DatasetHandler) Reload(c *gin.Context) {
	if h.reload == nil {
		c.JSON(http.StatusNotImplemented, errorResponse("RELOAD_DISABLED", "Dataset reloading is not configured."))
		return
	}
	if err := h.reload(); err != nil {
		log.Printf("DatasetHandler: reload failed: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse("RELOAD_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusOK, datasetResponse(h.store.Engine()))
}

func datasetResponse(eng *engine.Engine) models.DatasetResponse {
	p := analysis.ComputeProfile(eng.Table())

	resp := models.DatasetResponse{
		EngineID:    eng.ID(),
		Source:      eng.Source(),
		LoadedAt:    eng.LoadedAt(),
		AnchorDate:  eng.Anchor().Format(query.DateLayout),
		Rows:        p.Rows,
		Undated:     p.Undated,
		TotalSales:  p.TotalSales.InexactFloat64(),
		TotalProfit: p.TotalProfit.InexactFloat64(),
		Years:       make([]models.YearTotal, 0, len(p.Years)),
		Distinct:    make(map[string]int, len(p.Distinct)),
	}
	for _, col := range p.Columns {
		resp.Columns = append(resp.Columns, string(col))
	}
	if !p.FirstDate.IsZero() {
		resp.FirstDate = p.FirstDate.Format(query.DateLayout)
		resp.LastDate = p.LastDate.Format(query.DateLayout)
	}
	for _, y := range p.Years {
		resp.Years = append(resp.Years, models.YearTotal{
			Year:   y.Year,
			Sales:  y.Sales.InexactFloat64(),
			Profit: y.Profit.InexactFloat64(),
			Rows:   y.Rows,
		})
	}
	for col, n := range p.Distinct {
		resp.Distinct[string(col)] = n
	}
	return resp
}
