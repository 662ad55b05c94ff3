package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Eringolaw/fdic-bank-explorer/internal/filter"
	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/events"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size. Filter envelopes are tiny; anything
	// larger is a misbehaving client.
	maxMessageSize = 4096

	// Outbound buffer per client. Snapshots are the largest payload, so
	// a modest buffer absorbs a burst of filter events.
	sendQueueSize = 64
)

var (
	newline = []byte{'\n'}
	space   = []byte{' '}
)

// Client pairs one websocket connection with its own filter session.
// Inbound filter events mutate the session; each applied event produces
// exactly one dashboard snapshot pushed back on this client's send queue.
type Client struct {
	hub  *Hub
	conn Connection

	send      chan []byte
	closeOnce sync.Once

	session *filter.Session

	id          string
	traceID     string
	remoteAddr  string
	connectedAt time.Time

	logger *slog.Logger

	messagesSent     int64
	messagesReceived int64
}

// NewClient wraps an upgraded gorilla connection in a client with a
// fresh filter session.
func NewClient(hub *Hub, conn *websocket.Conn, logger *slog.Logger) *Client {
	return NewClientWithConnection(hub, NewConnectionWrapper(conn), logger)
}

// NewClientWithConnection creates a client over an abstract connection,
// used by tests to avoid a live socket.
func NewClientWithConnection(hub *Hub, conn Connection, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.New().String()
	logger = logger.With(
		slog.String("component", "websocket_client"),
		slog.String("client_id", id),
	)

	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, sendQueueSize),
		session:     filter.NewSession(),
		id:          id,
		remoteAddr:  conn.RemoteAddr(),
		connectedAt: time.Now(),
		logger:      logger,
	}
}

// NewClientWithTrace attaches the upgrade request's trace ID so pushed
// snapshots correlate with the HTTP logs.
func NewClientWithTrace(hub *Hub, conn *websocket.Conn, traceID string, logger *slog.Logger) *Client {
	client := NewClient(hub, conn, logger)
	client.traceID = traceID
	client.logger = client.logger.With(slog.String("trace_id", traceID))
	return client
}

// ID returns the client's generated identifier.
func (c *Client) ID() string {
	return c.id
}

// RemoteAddr returns the peer address captured at connect time.
func (c *Client) RemoteAddr() string {
	return c.remoteAddr
}

// Session exposes the client's filter session for inspection.
func (c *Client) Session() *filter.Session {
	return c.session
}

// enqueue queues an outbound message without blocking. It reports false
// when the buffer is full or the send channel is already closed, so the
// hub can drop the client.
func (c *Client) enqueue(message []byte) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// closeSend closes the outbound queue exactly once. The write pump sees
// the closed channel and sends the close frame.
func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// sendConnectAck tells the client its connection and session are live.
func (c *Client) sendConnectAck() {
	payload, err := marshalEnvelope(events.MessageTypeConnect, c.traceID, map[string]string{
		"client_id": c.id,
	})
	if err != nil {
		c.logger.Error("marshal connect ack", slog.String("error", err.Error()))
		return
	}
	c.enqueue(payload)
}

// pushSnapshot derives the full dashboard view set for the session's
// current state and queues it for this client only.
func (c *Client) pushSnapshot(ctx context.Context) {
	if c.hub == nil || c.hub.snapshots == nil {
		return
	}

	state := c.session.State()
	snapshot := events.DashboardSnapshot{
		State:     state,
		Views:     c.hub.snapshots.Snapshot(ctx, state),
		Sequence:  c.session.Sequence(),
		UpdatedAt: c.session.UpdatedAt(),
	}

	payload, err := marshalEnvelope(events.MessageTypeDashboardSnapshot, c.traceID, snapshot)
	if err != nil {
		c.logger.Error("marshal dashboard snapshot", slog.String("error", err.Error()))
		return
	}
	if !c.enqueue(payload) {
		c.logger.Warn("snapshot dropped, send queue full")
	}
}

// sendError pushes a non-fatal error message. The connection stays open;
// the client's session is untouched.
func (c *Client) sendError(code, message string) {
	errMsg := events.ErrorMessage{
		BaseMessage: events.BaseMessage{
			ID:        uuid.New().String(),
			Type:      events.MessageTypeError,
			Timestamp: time.Now().UTC(),
			TraceID:   c.traceID,
		},
	}
	errMsg.Data.Code = code
	errMsg.Data.Message = message
	errMsg.Data.Retry = true

	payload, err := json.Marshal(errMsg)
	if err != nil {
		c.logger.Error("marshal error message", slog.String("error", err.Error()))
		return
	}
	c.enqueue(payload)
}

// filterEventFor maps an inbound message type to a reducer event. The
// second return is false for types that are not filter events.
func filterEventFor(msgType events.MessageType, value string) (filter.Event, bool) {
	switch msgType {
	case events.MessageTypeSetState:
		return filter.Event{Type: filter.EventSetState, Value: value}, true
	case events.MessageTypeSetCounty:
		return filter.Event{Type: filter.EventSetCounty, Value: value}, true
	case events.MessageTypeSetInstitution:
		return filter.Event{Type: filter.EventSetInstitution, Value: value}, true
	case events.MessageTypeClickState:
		return filter.Event{Type: filter.EventClickStateBar, Value: value}, true
	case events.MessageTypeClickCounty:
		return filter.Event{Type: filter.EventClickCountyBar, Value: value}, true
	case events.MessageTypeReset:
		return filter.Event{Type: filter.EventReset}, true
	default:
		return filter.Event{}, false
	}
}

// inboundMessage is the wire shape of client messages. Data is decoded
// lazily because only filter messages carry a payload.
type inboundMessage struct {
	Type events.MessageType `json:"type"`
	Data json.RawMessage    `json:"data,omitempty"`
}

// handleMessage decodes one inbound frame and applies it to the session.
func (c *Client) handleMessage(raw []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.logger.Debug("undecodable client message", slog.String("error", err.Error()))
		c.sendError("INVALID_MESSAGE", "message is not a valid JSON envelope")
		return
	}

	// Heartbeats keep proxies from idling the connection out; the pong
	// handler already extends the read deadline.
	if msg.Type == "heartbeat" || msg.Type == "ping" {
		return
	}

	var input events.FilterInput
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &input); err != nil {
			c.sendError("INVALID_PAYLOAD", "filter payload must be an object with a value field")
			return
		}
	}

	ev, ok := filterEventFor(msg.Type, input.Value)
	if !ok {
		c.sendError("UNKNOWN_MESSAGE_TYPE", "unsupported message type: "+string(msg.Type))
		return
	}

	state, seq := c.session.Apply(ev)
	if m := GetOTelMetrics(); m != nil {
		m.RecordFilterEvent(context.Background(), string(ev.Type))
	}
	c.logger.Debug("filter event applied",
		slog.String("event", string(ev.Type)),
		slog.String("value", ev.Value),
		slog.Uint64("sequence", seq),
		slog.String("state", state.Cert+"/"+state.State+"/"+state.County))

	c.pushSnapshot(context.Background())
}

// ReadPump pumps messages from the websocket connection into the filter
// session. It runs in its own goroutine; exactly one per connection.
func (c *Client) ReadPump() {
	defer func() {
		c.logger.Info("websocket read pump stopped",
			slog.Duration("connected_for", time.Since(c.connectedAt)),
			slog.Int64("messages_received", c.messagesReceived))
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.Error("unexpected websocket close",
					slog.String("error", err.Error()))
			}
			break
		}
		message = bytes.TrimSpace(bytes.Replace(message, newline, space, -1))
		if len(message) == 0 {
			continue
		}

		c.messagesReceived++
		if m := GetOTelMetrics(); m != nil {
			m.RecordMessageReceived(context.Background(), int64(len(message)))
		}
		c.handleMessage(message)
	}
}

// WritePump drains the send queue onto the connection and keeps the peer
// alive with periodic pings. It runs in its own goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.logger.Info("websocket write pump stopped",
			slog.Int64("messages_sent", c.messagesSent))
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debug("write failed", slog.String("error", err.Error()))
				return
			}
			c.messagesSent++
			if m := GetOTelMetrics(); m != nil {
				m.RecordMessageSent(context.Background(), int64(len(message)))
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWS registers an upgraded connection with the hub and starts its
// pumps.
func ServeWS(hub *Hub, conn *websocket.Conn, traceID string, logger *slog.Logger) {
	client := NewClientWithTrace(hub, conn, traceID, logger)
	hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
