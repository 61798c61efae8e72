package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PlansBuiltTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plans_built_total",
		Help: "Total number of procurement plans built",
	}, []string{"strategy"})

	PlansOverBudgetTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plans_over_budget_total",
		Help: "Total number of plans whose cost exceeded the stated budget",
	})

	PlanCategoriesSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_categories_skipped_total",
		Help: "Total number of categories with no item inside the deadline",
	}, []string{"category"})

	CheckoutOrdersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_orders_total",
		Help: "Total number of simulated per-store orders authorized",
	})

	NarrationFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "narration_fallbacks_total",
		Help: "Total number of explanation calls that fell back to templated text",
	})

	VoiceFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voice_fallbacks_total",
		Help: "Total number of voice reports returned without audio",
	})

	ExplanationCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "explanation_cache_hits_total",
		Help: "Total number of explanation texts served from cache",
	})

	EventsConsumedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "events_consumed_total",
		Help: "Total number of procurement events consumed by the audit worker",
	}, []string{"type"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
