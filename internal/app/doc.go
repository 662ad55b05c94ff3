// Package app wires the FDIC Bank Explorer together: configuration,
// logging, OpenTelemetry, the in-memory dataset store, the dashboard
// and health services, the WebSocket hub and the chi router.
//
// Initialization order matters: configuration and observability come
// first, then the dataset load, then the services that depend on it.
// Both dataset files must load cleanly; a missing or malformed file
// aborts startup with an error naming the path.
//
// The application does not call os.Exit; all errors are returned to
// main so the exit path stays in one place.
package app
