package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DescriptionsFormatted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "descriptions_formatted_total",
			Help: "Descriptions run through the formatter",
		},
	)
	DescriptionFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "description_fallbacks_total",
			Help: "Descriptions that fell back to the title template",
		},
	)
	SpecificationsExtracted = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "specifications_extracted",
			Help:    "Specifications extracted per description",
			Buckets: prometheus.LinearBuckets(0, 2, 8),
		},
	)
	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "format_cache_hits_total",
			Help: "Formatted descriptions served from redis",
		},
	)
	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "format_cache_misses_total",
			Help: "Formatted descriptions not found in redis",
		},
	)
	EmbeddingsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "embeddings_total",
			Help: "Embeddings generated for formatted products",
		},
	)
	WhopPlansCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "whop_plans_created_total",
			Help: "Whop plans created from Shopify variants",
		},
	)
	MetafieldsUpdated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "metafields_updated_total",
			Help: "Shopify variant metafields written",
		},
	)
)

var registerOnce sync.Once

// Register adds the catalog metrics to the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			DescriptionsFormatted,
			DescriptionFallbacks,
			SpecificationsExtracted,
			CacheHits,
			CacheMisses,
			EmbeddingsTotal,
			WhopPlansCreated,
			MetafieldsUpdated,
		)
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}

func Start(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	go http.ListenAndServe(":"+port, mux)
}
