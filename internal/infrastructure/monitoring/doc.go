/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the backend
service, tracking HTTP traffic and the AI pipeline: requests per operation,
generative provider call latency, and web search enrichment outcomes.

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Time provider calls
	timer := monitoring.NewTimer(metrics, "gemini", "generate")
	// ... perform call ...
	timer.Stop("success")

# Metrics Endpoint

Expose metrics via the handler bound to this collector's registry:

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
