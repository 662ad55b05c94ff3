// Package services contains the business layer between the HTTP/WebSocket
// transports and the dataset store.
//
// DashboardService answers every dashboard query (selector domains,
// institution lookups, chart aggregates, the branch table, and the full
// view snapshot used by the WebSocket channel). It normalizes wire input
// (the ALL sentinel, certificate canonicalization) before touching the
// store, and returns wrapped sentinel errors that the transport layer maps
// to RFC 7807 problems.
//
// HealthService reports liveness, readiness (datasets loaded and
// non-empty), version/build info, and system statistics.
package services
