// Package feed implements the streaming trade feed and its cache.
//
// The feed:
//   - Holds one long-lived WebSocket connection to Finnhub
//   - Sends no subscription commands; the deployment delivers global
//     trade ticks only
//   - Reconnects with exponential backoff on connection loss
//   - Drops malformed frames at the decode boundary
//
// The Cache maps symbol to the latest TradeRecord; the ingestor task is
// its sole writer, request handlers read concurrently.
package feed
