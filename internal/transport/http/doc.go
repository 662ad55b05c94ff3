// Package http contains the chi HTTP handlers for the dashboard query API.
//
// Handlers follow a single pattern: a struct holding the service interface,
// a *slog.Logger, and an *errors.ErrorHandler, with a Routes() method
// returning a chi.Router. Successful responses are rendered as
// {"status":"success","data":...} envelopes with counts where natural;
// service sentinel errors are mapped to RFC 7807 problem documents.
package http
