// Package archive implements the optional batch writer that persists
// trade ticks to PostgreSQL.
//
// The writer is append-only (never update, only insert) and sits
// behind a buffered channel so a slow or failing database never stalls
// the feed.
package archive
