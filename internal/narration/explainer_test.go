package narration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"procurement-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	selectedFixture = models.CatalogItem{
		ID: "food-2", Name: "Frozen Bulk Pizza", Store: "Wholesale Grocer",
		Price: 5, DeliveryDays: 1, Category: models.CategoryFood,
	}
	rejectedFixture = []models.CatalogItem{
		{ID: "food-1", Name: "Gourmet Pizza Catering", Price: 15, DeliveryDays: 0.04},
	}
)

func TestStubExplainerSoleOption(t *testing.T) {
	e := NewStubExplainer()

	text := e.ExplainChoice(context.Background(), selectedFixture, nil, ExplainContext{DeadlineDays: 3})

	assert.Equal(t, "Chose Frozen Bulk Pizza as it was the only viable option.", text)
}

func TestStubExplainerCitesDeliveryAndDeadline(t *testing.T) {
	e := NewStubExplainer()

	text := e.ExplainChoice(context.Background(), selectedFixture, rejectedFixture,
		ExplainContext{RemainingBudget: 500, DeadlineDays: 3})

	assert.Contains(t, text, "Frozen Bulk Pizza")
	assert.Contains(t, text, "1 days")
	assert.Contains(t, text, "3 day deadline")
}

func TestOpenAIExplainerMissingKeyFallsBack(t *testing.T) {
	e := NewOpenAIExplainer("", "", "", time.Second)

	text := e.ExplainChoice(context.Background(), selectedFixture, rejectedFixture,
		ExplainContext{DeadlineDays: 3})

	assert.Contains(t, text, "Frozen Bulk Pizza")
	assert.Contains(t, text, "3 day deadline")
}

func TestOpenAIExplainerUsesCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":" Chose the frozen pizza to save money. "}}]}`))
	}))
	defer srv.Close()

	e := NewOpenAIExplainer("test-key", "gpt-4o", srv.URL, time.Second)

	text := e.ExplainChoice(context.Background(), selectedFixture, rejectedFixture,
		ExplainContext{RemainingBudget: 500, DeadlineDays: 3})

	assert.Equal(t, "Chose the frozen pizza to save money.", text)
}

func TestOpenAIExplainerUpstreamErrorNeverPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	e := NewOpenAIExplainer("test-key", "gpt-4o", srv.URL, time.Second)

	text := e.ExplainChoice(context.Background(), selectedFixture, rejectedFixture,
		ExplainContext{DeadlineDays: 3})

	assert.Equal(t, "Selected Frozen Bulk Pizza. (explanation unavailable)", text)
}

func TestOpenAIExplainerSoleOptionSkipsUpstream(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	e := NewOpenAIExplainer("test-key", "gpt-4o", srv.URL, time.Second)

	text := e.ExplainChoice(context.Background(), selectedFixture, nil, ExplainContext{DeadlineDays: 3})

	assert.False(t, called)
	assert.Equal(t, "Chose Frozen Bulk Pizza as it was the only viable option.", text)
}
