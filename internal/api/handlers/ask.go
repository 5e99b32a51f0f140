package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sales-insight/internal/api/models"
	"sales-insight/internal/engine"
)

// AskHandler answers natural-language questions
type AskHandler struct {
	store *engine.Store
	cache *engine.AnswerCache
}

// NewAskHandler creates a new ask handler. cache may be nil.
func NewAskHandler(store *engine.Store, cache *engine.AnswerCache) *AskHandler {
	return &AskHandler{store: store, cache: cache}
}

// Ask handles POST /api/v1/ask
func (h *AskHandler) Ask(c *gin.Context) {
	var req models.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("INVALID_REQUEST", err.Error()))
		return
	}

	eng := h.store.Engine()
	answer, cached := h.cache.Get(eng.ID(), req.Question)
	if !cached {
		answer = eng.Answer(req.Question)
		h.cache.Set(eng.ID(), req.Question, answer)
	}
	log.Printf("AskHandler: %q -> %q (cached=%v)", req.Question, answer.Text, cached)

	c.JSON(http.StatusOK, models.AskResponse{
		ID:       uuid.NewString(),
		Question: req.Question,
		Answer:   answer.Text,
		Params:   toParamsResponse(answer.Params),
		Rows:     toResultRows(answer.Result, eng.CurrencySymbol()),
		EngineID: answer.EngineID,
		Cached:   cached,
	})
}

// Parse handles POST /api/v1/parse
// It returns the structured query without executing it.
func (h *AskHandler) Parse(c *gin.Context) {
	var req models.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("INVALID_REQUEST", err.Error()))
		return
	}
	params := h.store.Engine().Parse(req.Question)
	c.JSON(http.StatusOK, gin.H{"params": toParamsResponse(params)})
}
