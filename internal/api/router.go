package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sales-insight/internal/api/handlers"
	"sales-insight/internal/api/middleware"
	"sales-insight/internal/engine"
)

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	Store *engine.Store
	// Cache may be nil (no caching).
	Cache *engine.AnswerCache
	// Reload may be nil (reload endpoint disabled).
	Reload func() error
}

// NewRouter wires middleware and routes.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	askHandler := handlers.NewAskHandler(deps.Store, deps.Cache)
	rankHandler := handlers.NewRankHandler(deps.Store)
	datasetHandler := handlers.NewDatasetHandler(deps.Store, deps.Reload)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "engine_id": deps.Store.Engine().ID()})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/ask", askHandler.Ask)
		api.POST("/parse", askHandler.Parse)
		api.GET("/rank", rankHandler.Rank)

		api.GET("/dataset", datasetHandler.GetDataset)
		api.POST("/dataset/reload", datasetHandler.Reload)

		api.GET("/vocabulary", handlers.ListVocabulary)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})

	return router
}
