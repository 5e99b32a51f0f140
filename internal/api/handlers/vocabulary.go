package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sales-insight/internal/api/models"
	"sales-insight/internal/model"
	"sales-insight/internal/query"
)

// ExampleQuestions are shown to clients as starting points.
var ExampleQuestions = []string{
	"total sales last month in California",
	"profit by region this year",
	"top 3 categories by sales in 2017",
	"monthly sales last year in TX",
	"profit for category furniture ytd",
}

// ListVocabulary handles GET /api/v1/vocabulary
func ListVocabulary(c *gin.Context) {
	resp := models.VocabularyResponse{Examples: ExampleQuestions}
	for _, m := range model.Metrics {
		resp.Metrics = append(resp.Metrics, string(m))
	}
	for _, d := range model.Dimensions {
		resp.Dimensions = append(resp.Dimensions, string(d))
	}
	for _, p := range query.Vocabulary() {
		resp.Phrases = append(resp.Phrases, models.PhraseInfo{Text: p.Text, Selects: p.Selects})
	}
	c.JSON(http.StatusOK, resp)
}
