// Package websocket implements the live dashboard channel. A Hub tracks
// connected clients; every client owns an independent filter session, so
// two browsers never see each other's selections. Filter events arrive on
// the read pump, mutate the session and trigger a full dashboard snapshot
// push back to that client only. Broadcasts are reserved for system-wide
// status messages.
package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/events"
)

const (
	// metricsReportInterval controls how often hub counters are logged.
	metricsReportInterval = 30 * time.Second

	// broadcastQueueSize bounds pending broadcasts before senders drop.
	broadcastQueueSize = 256
)

// Hub owns the client set and the broadcast fan-out. Snapshot derivation
// is delegated to a SnapshotSource so the hub stays free of dataset and
// service imports.
type Hub struct {
	clients map[*Client]bool

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	snapshots SnapshotSource
	logger    *slog.Logger

	mu sync.RWMutex

	totalConnections int64
	totalMessages    int64
	totalBroadcasts  int64
	droppedMessages  int64

	startedAt   time.Time
	quit        chan struct{}
	metricsQuit chan struct{}
	running     bool
	runningMu   sync.Mutex
}

// NewHub creates a hub that derives dashboard views from snapshots.
func NewHub(snapshots SnapshotSource, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:     make(map[*Client]bool),
		broadcast:   make(chan []byte, broadcastQueueSize),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		snapshots:   snapshots,
		logger:      logger.With(slog.String("component", "websocket_hub")),
		quit:        make(chan struct{}),
		metricsQuit: make(chan struct{}),
	}
}

// Start launches the hub loop and the metrics reporter. Calling Start on a
// running hub is a no-op.
func (h *Hub) Start() {
	h.runningMu.Lock()
	defer h.runningMu.Unlock()
	if h.running {
		return
	}
	h.running = true
	h.startedAt = time.Now()

	go h.Run()
	go h.reportMetrics()

	h.logger.Info("websocket hub started")
}

// Run processes register, unregister and broadcast requests until Stop is
// called. Start runs it in its own goroutine; it is exported so tests can
// drive the loop directly.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			h.fanOut(message)

		case <-h.quit:
			return
		}
	}
}

// Register hands a new client to the hub loop.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub loop.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast queues a message for delivery to every connected client. The
// message is dropped when the broadcast queue is full.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
		atomic.AddInt64(&h.totalBroadcasts, 1)
	default:
		atomic.AddInt64(&h.droppedMessages, 1)
		h.logger.Warn("broadcast queue full, message dropped")
	}
}

// BroadcastSystemStatus pushes a status event to every connected client.
// The health service calls this after startup and on status transitions.
func (h *Hub) BroadcastSystemStatus(status string, institutions, branches int, version string) {
	event := events.SystemStatusEvent{
		BaseMessage: events.BaseMessage{
			ID:        uuid.New().String(),
			Type:      events.MessageTypeSystemStatus,
			Timestamp: time.Now().UTC(),
		},
	}
	event.Data.Status = status
	event.Data.Institutions = institutions
	event.Data.Branches = branches
	event.Data.Uptime = h.uptime().Round(time.Second).String()
	event.Data.Version = version

	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("marshal system status", slog.String("error", err.Error()))
		return
	}
	h.Broadcast(payload)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stats returns a point-in-time view of the hub counters for health
// reporting.
func (h *Hub) Stats() map[string]interface{} {
	return map[string]interface{}{
		"active_clients":    h.ClientCount(),
		"total_connections": atomic.LoadInt64(&h.totalConnections),
		"total_messages":    atomic.LoadInt64(&h.totalMessages),
		"total_broadcasts":  atomic.LoadInt64(&h.totalBroadcasts),
		"dropped_messages":  atomic.LoadInt64(&h.droppedMessages),
	}
}

// Stop shuts the hub down and closes every client connection.
func (h *Hub) Stop() {
	h.runningMu.Lock()
	if !h.running {
		h.runningMu.Unlock()
		return
	}
	h.running = false
	h.runningMu.Unlock()

	close(h.quit)
	close(h.metricsQuit)

	h.mu.Lock()
	for client := range h.clients {
		client.closeSend()
		client.conn.Close()
		delete(h.clients, client)
	}
	h.mu.Unlock()

	h.logger.Info("websocket hub stopped",
		slog.Int64("total_connections", atomic.LoadInt64(&h.totalConnections)),
		slog.Int64("total_messages", atomic.LoadInt64(&h.totalMessages)))
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	active := len(h.clients)
	h.mu.Unlock()

	atomic.AddInt64(&h.totalConnections, 1)
	if m := GetOTelMetrics(); m != nil {
		m.RecordConnection(context.Background())
	}
	h.logger.Info("websocket client connected",
		slog.String("client_id", client.ID()),
		slog.String("remote_addr", client.RemoteAddr()),
		slog.Int("active_clients", active))

	client.sendConnectAck()

	// A fresh session renders the unfiltered dashboard.
	client.pushSnapshot(context.Background())
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
	}
	active := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}
	client.closeSend()
	if m := GetOTelMetrics(); m != nil {
		m.RecordDisconnection(context.Background(), time.Since(client.connectedAt))
	}
	h.logger.Info("websocket client disconnected",
		slog.String("client_id", client.ID()),
		slog.Duration("connected_for", time.Since(client.connectedAt)),
		slog.Int("active_clients", active))
}

func (h *Hub) fanOut(message []byte) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	if m := GetOTelMetrics(); m != nil {
		m.RecordBroadcast(context.Background(), len(targets))
	}

	for _, client := range targets {
		if client.enqueue(message) {
			atomic.AddInt64(&h.totalMessages, 1)
			continue
		}
		// Send buffer full or already closed: disconnect the slow client
		// so the rest keep receiving.
		atomic.AddInt64(&h.droppedMessages, 1)
		if m := GetOTelMetrics(); m != nil {
			m.RecordDroppedMessage(context.Background(), "queue_full")
		}
		h.removeClient(client)
	}
}

func (h *Hub) uptime() time.Duration {
	h.runningMu.Lock()
	defer h.runningMu.Unlock()
	if h.startedAt.IsZero() {
		return 0
	}
	return time.Since(h.startedAt)
}

func (h *Hub) reportMetrics() {
	ticker := time.NewTicker(metricsReportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.logger.Debug("websocket hub stats",
				slog.Int("active_clients", h.ClientCount()),
				slog.Int64("total_connections", atomic.LoadInt64(&h.totalConnections)),
				slog.Int64("total_messages", atomic.LoadInt64(&h.totalMessages)),
				slog.Int64("total_broadcasts", atomic.LoadInt64(&h.totalBroadcasts)),
				slog.Int64("dropped_messages", atomic.LoadInt64(&h.droppedMessages)))

		case <-h.metricsQuit:
			return
		}
	}
}

// marshalEnvelope wraps a payload in the standard message envelope.
func marshalEnvelope(msgType events.MessageType, traceID string, data interface{}) ([]byte, error) {
	msg := events.WebSocketMessage{
		BaseMessage: events.BaseMessage{
			ID:        uuid.New().String(),
			Type:      msgType,
			Timestamp: time.Now().UTC(),
			TraceID:   traceID,
		},
		Data: data,
	}
	return json.Marshal(msg)
}
