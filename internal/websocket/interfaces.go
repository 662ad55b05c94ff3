package websocket

import (
	"context"
	"time"

	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/domain"
	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/events"
)

// Connection abstracts a WebSocket connection so the pumps can be
// tested without a live network socket.
type Connection interface {
	// WriteMessage writes a message with the given message type and payload
	WriteMessage(messageType int, data []byte) error

	// ReadMessage reads a message from the connection
	ReadMessage() (messageType int, p []byte, err error)

	// Close closes the connection
	Close() error

	// SetReadDeadline sets the read deadline on the connection
	SetReadDeadline(t time.Time) error

	// SetWriteDeadline sets the write deadline on the connection
	SetWriteDeadline(t time.Time) error

	// SetReadLimit sets the maximum size for a message read from the connection
	SetReadLimit(limit int64)

	// SetPongHandler sets the handler for pong messages
	SetPongHandler(h func(string) error)

	// RemoteAddr returns the remote network address
	RemoteAddr() string
}

// SnapshotSource derives the dashboard view set for a filter state.
// The dashboard service satisfies this; the indirection keeps the hub
// free of a service import.
type SnapshotSource interface {
	Snapshot(ctx context.Context, state domain.FilterState) events.DashboardViews
}
