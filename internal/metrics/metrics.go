package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Domain metrics
	RecipesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_written_total",
			Help: "Recipes created, updated or deleted",
		},
		[]string{"operation"},
	)

	SocialToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "social_toggles_total",
			Help: "Favorite, cart and subscription changes by outcome",
		},
		[]string{"relation", "action", "outcome"},
	)

	ShoppingListDownloads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shopping_list_downloads_total",
			Help: "Shopping lists rendered for download",
		},
	)

	ShoppingListItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shopping_list_items",
			Help:    "Distinct ingredients per downloaded shopping list",
			Buckets: []float64{1, 5, 10, 20, 50, 100},
		},
	)
)

// RecordAPIRequest records one served request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRateLimitHit records a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecipeWrite records a committed recipe mutation.
func RecordRecipeWrite(operation string) {
	RecipesWritten.WithLabelValues(operation).Inc()
}

// RecordSocialToggle records the outcome of a favorite, cart or subscription change.
func RecordSocialToggle(relation, action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	SocialToggles.WithLabelValues(relation, action, outcome).Inc()
}

// RecordShoppingListDownload records a rendered shopping list.
func RecordShoppingListDownload(items int) {
	ShoppingListDownloads.Inc()
	ShoppingListItems.Observe(float64(items))
}
