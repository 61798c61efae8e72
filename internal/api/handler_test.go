package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"procurement-service/internal/broker"
	"procurement-service/internal/catalog"
	"procurement-service/internal/checkout"
	"procurement-service/internal/models"
	"procurement-service/internal/narration"
	"procurement-service/internal/planner"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter() *gin.Engine {
	cat := catalog.New(catalog.DefaultItems())
	publisher := broker.NewEventPublisher(nil)

	handler := NewHandler(
		cat,
		planner.NewService(cat, narration.NewStubExplainer(), publisher),
		checkout.NewSimulator(publisher),
		narration.NewStubVoice(),
	)

	router := gin.New()
	handler.SetupRoutes(router)
	return router
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetInventory(t *testing.T) {
	router := newTestRouter()

	w := doJSON(router, http.MethodGet, "/api/inventory", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var items []models.CatalogItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 9)
}

func TestGetInventoryWithQuery(t *testing.T) {
	router := newTestRouter()

	w := doJSON(router, http.MethodGet, "/api/inventory?q=pizza", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var items []models.CatalogItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "food-1", items[0].ID)
	assert.Equal(t, "food-2", items[1].ID)
}

func TestGetInventoryIsIdempotent(t *testing.T) {
	router := newTestRouter()

	first := doJSON(router, http.MethodGet, "/api/inventory", nil)
	second := doJSON(router, http.MethodGet, "/api/inventory", nil)

	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestBuildPlan(t *testing.T) {
	router := newTestRouter()

	w := doJSON(router, http.MethodPost, "/api/plan", gin.H{
		"people": 50, "budget": 2000, "deadline": 3, "strategy": "cheapest",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Plan      []models.PlanLine `json:"plan"`
		Reasoning string            `json:"reasoning"`
		TotalCost float64           `json:"total_cost"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Plan, 3)
	assert.Equal(t, "Mixed Length Grab Bag", resp.Plan[0].Name)
	assert.Equal(t, "Energy Bar Crate", resp.Plan[1].Name)
	assert.Equal(t, "Generic Logo Stickers", resp.Plan[2].Name)
	assert.Equal(t, 300.0, resp.TotalCost)
	assert.Contains(t, resp.Reasoning, "[PLANNER]: Calculating needs for 50 attendees...")
	assert.Contains(t, resp.Reasoning, "[SUCCESS]: Under budget by $1700.00!")
}

func TestBuildPlanRejectsZeroPeople(t *testing.T) {
	router := newTestRouter()

	w := doJSON(router, http.MethodPost, "/api/plan", gin.H{
		"people": 0, "budget": 2000, "deadline": 3,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuildPlanRejectsMissingFields(t *testing.T) {
	router := newTestRouter()

	w := doJSON(router, http.MethodPost, "/api/plan", gin.H{
		"people": 50, "deadline": 3,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "people, budget, deadline")
}

func TestCheckoutTwoStores(t *testing.T) {
	router := newTestRouter()

	w := doJSON(router, http.MethodPost, "/api/checkout", gin.H{
		"cart": []gin.H{
			{"store": "Tech Salvage", "price": 40, "quantity": 5, "totalPrice": 200},
			{"store": "Wholesale Grocer", "price": 5, "quantity": 25, "totalPrice": 125},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp checkout.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "complete", resp.Status)
	require.Len(t, resp.Orders, 2)
	require.Len(t, resp.AuditLog, 2)
	assert.Equal(t, 200.0, resp.Orders[0].Total)
	assert.Equal(t, 125.0, resp.Orders[1].Total)
}

func TestCheckoutRejectsMissingCart(t *testing.T) {
	router := newTestRouter()

	w := doJSON(router, http.MethodPost, "/api/checkout", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid cart format")
}

func TestCheckoutRejectsNonListCart(t *testing.T) {
	router := newTestRouter()

	w := doJSON(router, http.MethodPost, "/api/checkout", gin.H{"cart": "not-a-list"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutAcceptsEmptyCart(t *testing.T) {
	router := newTestRouter()

	w := doJSON(router, http.MethodPost, "/api/checkout", gin.H{"cart": []gin.H{}})

	require.Equal(t, http.StatusOK, w.Code)

	var resp checkout.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "complete", resp.Status)
	assert.Empty(t, resp.Orders)
}

func TestSpeakFallsBackWithoutAudio(t *testing.T) {
	router := newTestRouter()

	w := doJSON(router, http.MethodPost, "/api/speak", gin.H{
		"savings": 150, "orderCount": 3,
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, w.Body.String(), "Voice unavailable")
}

func TestSpeakAcceptsZeroSavings(t *testing.T) {
	router := newTestRouter()

	w := doJSON(router, http.MethodPost, "/api/speak", gin.H{
		"savings": 0, "orderCount": 2,
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSpeakRejectsMissingFields(t *testing.T) {
	router := newTestRouter()

	w := doJSON(router, http.MethodPost, "/api/speak", gin.H{"savings": 150})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreflightAllowed(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/plan", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "OPTIONS")
}

func TestUnsupportedMethodReturns405(t *testing.T) {
	router := newTestRouter()

	w := doJSON(router, http.MethodGet, "/api/plan", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter()

	w := doJSON(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
