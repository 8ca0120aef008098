// Package server exposes the read-only HTTP surface: session status,
// upcoming holiday, quote passthrough, cached trades, and health.
//
// Handlers never write to the caches; the feed ingestor and the holiday
// refresher are the exclusive writers.
package server
