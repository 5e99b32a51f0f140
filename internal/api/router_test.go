package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-insight/internal/api/middleware"
	"sales-insight/internal/api/models"
	"sales-insight/internal/engine"
	"sales-insight/internal/model/modeltest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestStore(t *testing.T) *engine.Store {
	t.Helper()
	e, err := engine.New(modeltest.Sales(), engine.WithSource("fixture"))
	require.NoError(t, err)
	return engine.NewStore(e)
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	store := newTestStore(t)
	router := NewRouter(Deps{Store: store})

	w := do(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, store.Engine().ID(), body["engine_id"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	router := NewRouter(Deps{Store: newTestStore(t)})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(middleware.RequestIDHeader))
}

func TestAsk(t *testing.T) {
	cache := engine.NewAnswerCache(time.Hour)
	defer cache.Close()
	router := NewRouter(Deps{Store: newTestStore(t), Cache: cache})

	w := do(t, router, http.MethodPost, "/api/v1/ask", models.AskRequest{Question: "total sales last month in CA"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.AskResponse](t, w)
	assert.Equal(t, "Sales in California (2024-02-01 → 2024-02-29) — $250.00.", resp.Answer)
	assert.False(t, resp.Cached)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Sales", resp.Params.Metric)
	assert.Equal(t, map[string]string{"State": "California"}, resp.Params.Filters)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, 250.0, resp.Rows[0].Value)
	assert.Equal(t, "$250.00", resp.Rows[0].Formatted)

	w = do(t, router, http.MethodPost, "/api/v1/ask", models.AskRequest{Question: "Total Sales Last Month in CA"})
	require.Equal(t, http.StatusOK, w.Code)
	again := decode[models.AskResponse](t, w)
	assert.True(t, again.Cached)
	assert.Equal(t, resp.Answer, again.Answer)
	assert.Equal(t, "Total Sales Last Month in CA", again.Question)
}

func TestAsk_NoMatchingData(t *testing.T) {
	router := NewRouter(Deps{Store: newTestStore(t)})
	w := do(t, router, http.MethodPost, "/api/v1/ask", models.AskRequest{Question: "sales in Mars"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.AskResponse](t, w)
	assert.Equal(t, "Sales in Mars: no matching data.", resp.Answer)
	assert.Empty(t, resp.Rows)
}

func TestAsk_InvalidRequest(t *testing.T) {
	router := NewRouter(Deps{Store: newTestStore(t)})
	w := do(t, router, http.MethodPost, "/api/v1/ask", map[string]string{"q": "sales"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestParse(t *testing.T) {
	router := NewRouter(Deps{Store: newTestStore(t)})
	w := do(t, router, http.MethodPost, "/api/v1/parse", models.AskRequest{Question: "top 3 categories by profit in Texas last year"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]models.ParamsResponse](t, w)
	p := body["params"]
	assert.Equal(t, "Profit", p.Metric)
	assert.Equal(t, "Category", p.GroupDim)
	require.NotNil(t, p.TopN)
	assert.Equal(t, models.TopN{N: 3, Dimension: "Category"}, *p.TopN)
	require.NotNil(t, p.TimeWindow)
	assert.Equal(t, models.TimeWindow{Start: "2023-01-01", End: "2023-12-31"}, *p.TimeWindow)
	assert.Equal(t, map[string]string{"State": "Texas"}, p.Filters)
}

func TestRank(t *testing.T) {
	router := NewRouter(Deps{Store: newTestStore(t)})

	w := do(t, router, http.MethodGet, "/api/v1/rank?dimension=category&year=2017&n=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.RankResponse](t, w)
	assert.Equal(t,
		"Sales (2017-01-01 → 2017-12-31) by Category — Technology: $1,200.00; Furniture: $300.00.",
		resp.Answer)
	require.Len(t, resp.Rankings, 2)
	assert.Equal(t, models.Ranking{Rank: 1, Key: "Technology", Value: 1200, Formatted: "$1,200.00"}, resp.Rankings[0])
	assert.Equal(t, 2, resp.Rankings[1].Rank)

	w = do(t, router, http.MethodGet, "/api/v1/rank?dimension=Product&state=ca&metric=sales", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[models.RankResponse](t, w)
	assert.Equal(t, map[string]string{"State": "California"}, resp.Params.Filters)
	require.Len(t, resp.Rankings, 4)
	assert.Equal(t, "Chairs", resp.Rankings[0].Key)
	assert.Equal(t, 1200.0, resp.Rankings[0].Value)
}

func TestRank_Validation(t *testing.T) {
	router := NewRouter(Deps{Store: newTestStore(t)})
	tests := []struct {
		query string
		code  string
	}{
		{"", "INVALID_REQUEST"},
		{"dimension=region&n=abc", "INVALID_REQUEST"},
		{"dimension=month", "INVALID_PARAM"},
		{"dimension=planet", "INVALID_PARAM"},
		{"dimension=region&metric=revenue", "INVALID_PARAM"},
		{"dimension=region&n=-1", "INVALID_PARAM"},
		{"dimension=region&year=3000", "INVALID_PARAM"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := do(t, router, http.MethodGet, "/api/v1/rank?"+tt.query, nil)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decode[models.ErrorResponse](t, w).Error.Code)
		})
	}
}

func TestDataset(t *testing.T) {
	store := newTestStore(t)
	router := NewRouter(Deps{Store: store})

	w := do(t, router, http.MethodGet, "/api/v1/dataset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.DatasetResponse](t, w)
	assert.Equal(t, store.Engine().ID(), resp.EngineID)
	assert.Equal(t, "fixture", resp.Source)
	assert.Equal(t, "2024-03-15", resp.AnchorDate)
	assert.Equal(t, "2017-03-03", resp.FirstDate)
	assert.Equal(t, 14, resp.Rows)
	assert.Equal(t, 1, resp.Undated)
	assert.Equal(t, 4350.0, resp.TotalSales)
	assert.Len(t, resp.Years, 3)
	assert.Equal(t, 4, resp.Distinct["Region"])
}

func TestReload(t *testing.T) {
	store := newTestStore(t)

	w := do(t, NewRouter(Deps{Store: store}), http.MethodPost, "/api/v1/dataset/reload", nil)
	require.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Equal(t, "RELOAD_DISABLED", decode[models.ErrorResponse](t, w).Error.Code)

	before := store.Engine().ID()
	reloader, err := engine.NewReloader(store, "@every 1h", func() (*engine.Engine, error) {
		return engine.New(modeltest.Sales())
	})
	require.NoError(t, err)
	w = do(t, NewRouter(Deps{Store: store, Reload: reloader.Reload}), http.MethodPost, "/api/v1/dataset/reload", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.DatasetResponse](t, w)
	assert.NotEqual(t, before, resp.EngineID)
	assert.Equal(t, store.Engine().ID(), resp.EngineID)

	failing := func() error { return errors.New("source gone") }
	w = do(t, NewRouter(Deps{Store: store, Reload: failing}), http.MethodPost, "/api/v1/dataset/reload", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "RELOAD_FAILED", decode[models.ErrorResponse](t, w).Error.Code)
	assert.Equal(t, resp.EngineID, store.Engine().ID())
}

func TestVocabulary(t *testing.T) {
	w := do(t, NewRouter(Deps{Store: newTestStore(t)}), http.MethodGet, "/api/v1/vocabulary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.VocabularyResponse](t, w)
	assert.Equal(t, []string{"Sales", "Profit"}, resp.Metrics)
	assert.Contains(t, resp.Dimensions, "MonthName")
	assert.NotEmpty(t, resp.Phrases)
	assert.NotEmpty(t, resp.Examples)
}

func TestNotFound(t *testing.T) {
	w := do(t, NewRouter(Deps{Store: newTestStore(t)}), http.MethodGet, "/api/v2/nothing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestCORS(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	router := NewRouter(Deps{Store: newTestStore(t)})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
