// Package api provides the Finnhub REST client.
//
// Endpoints used:
//   - /stock/market-holiday: exchange holiday calendar
//   - /quote: current and previous-close price for a symbol
//
// Authentication is a token sent in the X-Finnhub-Token header.
package api
