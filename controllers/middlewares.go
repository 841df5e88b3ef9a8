package controllers

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestCnt = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wardrobe",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wardrobe",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 15), // from 5ms to ~80s
	}, []string{"method", "route"})
)

func init() {
	prometheus.MustRegister(httpRequestCnt)
	prometheus.MustRegister(httpRequestDuration)
}

// requestMetrics counts requests per matched route, so unknown paths share one label.
func requestMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		started := time.Now()
		err := next(c)

		status := c.Response().Status
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
		}
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		httpRequestCnt.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(started).Seconds())
		return err
	}
}
