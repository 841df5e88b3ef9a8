package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	collaboratorCallCnt = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wardrobe",
		Subsystem: "ai",
		Name:      "collaborator_calls_total",
		Help:      "Total number of detection and styling calls by outcome",
	}, []string{"operation", "provider", "status"})

	collaboratorCallDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wardrobe",
		Subsystem: "ai",
		Name:      "collaborator_call_duration_seconds",
		Help:      "Duration of detection and styling calls in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12), // from 50ms to ~100s
	}, []string{"operation", "provider"})

	detectionsFilteredCnt = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wardrobe",
		Subsystem: "ai",
		Name:      "detections_total",
		Help:      "Detected items before and after confidence filtering",
	}, []string{"stage"})

	suggestionsReturned = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wardrobe",
		Subsystem: "ai",
		Name:      "suggestions_returned",
		Help:      "Number of outfit suggestions per request",
		Buckets:   prometheus.LinearBuckets(0, 1, 11),
	})

	analysisCacheHitCnt = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wardrobe",
		Subsystem: "ai",
		Name:      "analysis_cache_hits_total",
		Help:      "Analyze requests answered from the analysis cache",
	})
)

func init() {
	prometheus.MustRegister(collaboratorCallCnt)
	prometheus.MustRegister(collaboratorCallDuration)
	prometheus.MustRegister(detectionsFilteredCnt)
	prometheus.MustRegister(suggestionsReturned)
	prometheus.MustRegister(analysisCacheHitCnt)
}
