// Package main is the entry point for the SafeScribe backend server.
//
// The server fronts a note store and an AI enrichment pipeline that
// summarizes, rewrites, translates, answers questions about, and explains
// topics related to notes, backed by a generative language model and an
// optional web search provider.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8080
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
