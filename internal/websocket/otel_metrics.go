package websocket

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "fdic-bank-explorer.websocket"

// OTelMetrics records OpenTelemetry metrics for the live dashboard
// channel: connection churn, message volume and per-type filter events.
type OTelMetrics struct {
	connectionsTotal   metric.Int64Counter
	connectionsActive  metric.Int64UpDownCounter
	connectionDuration metric.Float64Histogram

	messagesTotal   metric.Int64Counter
	messageBytes    metric.Int64Counter
	filterEvents    metric.Int64Counter
	droppedMessages metric.Int64Counter
	broadcasts      metric.Int64Counter
}

// NewOTelMetrics registers the channel instruments on the global meter
// provider.
func NewOTelMetrics() (*OTelMetrics, error) {
	meter := otel.Meter(meterName)

	connectionsTotal, err := meter.Int64Counter(
		"websocket_connections_total",
		metric.WithDescription("Total number of WebSocket connections"),
	)
	if err != nil {
		return nil, err
	}

	connectionsActive, err := meter.Int64UpDownCounter(
		"websocket_connections_active",
		metric.WithDescription("Number of active WebSocket connections"),
	)
	if err != nil {
		return nil, err
	}

	connectionDuration, err := meter.Float64Histogram(
		"websocket_connection_duration_seconds",
		metric.WithDescription("Duration of WebSocket connections"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	messagesTotal, err := meter.Int64Counter(
		"websocket_messages_total",
		metric.WithDescription("Total number of WebSocket messages"),
	)
	if err != nil {
		return nil, err
	}

	messageBytes, err := meter.Int64Counter(
		"websocket_message_bytes_total",
		metric.WithDescription("Total bytes of WebSocket messages"),
	)
	if err != nil {
		return nil, err
	}

	filterEvents, err := meter.Int64Counter(
		"websocket_filter_events_total",
		metric.WithDescription("Total number of filter events applied to client sessions"),
	)
	if err != nil {
		return nil, err
	}

	droppedMessages, err := meter.Int64Counter(
		"websocket_dropped_messages_total",
		metric.WithDescription("Total number of dropped WebSocket messages"),
	)
	if err != nil {
		return nil, err
	}

	broadcasts, err := meter.Int64Counter(
		"websocket_broadcasts_total",
		metric.WithDescription("Total number of broadcast operations"),
	)
	if err != nil {
		return nil, err
	}

	return &OTelMetrics{
		connectionsTotal:   connectionsTotal,
		connectionsActive:  connectionsActive,
		connectionDuration: connectionDuration,
		messagesTotal:      messagesTotal,
		messageBytes:       messageBytes,
		filterEvents:       filterEvents,
		droppedMessages:    droppedMessages,
		broadcasts:         broadcasts,
	}, nil
}

// RecordConnection records a new client connection.
func (m *OTelMetrics) RecordConnection(ctx context.Context) {
	m.connectionsTotal.Add(ctx, 1)
	m.connectionsActive.Add(ctx, 1)
}

// RecordDisconnection records a client disconnect and its lifetime.
func (m *OTelMetrics) RecordDisconnection(ctx context.Context, duration time.Duration) {
	m.connectionsActive.Add(ctx, -1)
	m.connectionDuration.Record(ctx, duration.Seconds())
}

// RecordMessageSent records one outbound message.
func (m *OTelMetrics) RecordMessageSent(ctx context.Context, size int64) {
	attrs := metric.WithAttributes(attribute.String("direction", "outbound"))
	m.messagesTotal.Add(ctx, 1, attrs)
	m.messageBytes.Add(ctx, size, attrs)
}

// RecordMessageReceived records one inbound message.
func (m *OTelMetrics) RecordMessageReceived(ctx context.Context, size int64) {
	attrs := metric.WithAttributes(attribute.String("direction", "inbound"))
	m.messagesTotal.Add(ctx, 1, attrs)
	m.messageBytes.Add(ctx, size, attrs)
}

// RecordFilterEvent records one applied filter event by type.
func (m *OTelMetrics) RecordFilterEvent(ctx context.Context, eventType string) {
	m.filterEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_type", eventType),
	))
}

// RecordDroppedMessage records a message dropped on a full queue.
func (m *OTelMetrics) RecordDroppedMessage(ctx context.Context, reason string) {
	m.droppedMessages.Add(ctx, 1, metric.WithAttributes(
		attribute.String("drop_reason", reason),
	))
}

// RecordBroadcast records one broadcast fan-out.
func (m *OTelMetrics) RecordBroadcast(ctx context.Context, clientCount int) {
	m.broadcasts.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("client_count", clientCount),
	))
}

var globalOTelMetrics *OTelMetrics

// InitOTelMetrics initializes the package-level metrics instance. Call
// once during startup after the meter provider is configured.
func InitOTelMetrics() error {
	metrics, err := NewOTelMetrics()
	if err != nil {
		return err
	}
	globalOTelMetrics = metrics
	return nil
}

// GetOTelMetrics returns the package-level metrics instance, nil when
// metrics were never initialized.
func GetOTelMetrics() *OTelMetrics {
	return globalOTelMetrics
}
