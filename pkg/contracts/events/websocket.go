// Package events contains the event contract definitions for WebSocket
// communication in the FDIC Bank Explorer system.
package events

import (
	"time"

	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/domain"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Core dashboard message - the primary server push
	MessageTypeDashboardSnapshot MessageType = "dashboard:snapshot"

	// Client filter messages
	MessageTypeSetState       MessageType = "filter:set_state"
	MessageTypeSetCounty      MessageType = "filter:set_county"
	MessageTypeSetInstitution MessageType = "filter:set_institution"
	MessageTypeClickState     MessageType = "chart:click_state"
	MessageTypeClickCounty    MessageType = "chart:click_county"
	MessageTypeReset          MessageType = "filter:reset"

	// System messages
	MessageTypeSystemStatus MessageType = "system:status"

	// Connection messages
	MessageTypeConnect    MessageType = "connect"
	MessageTypeDisconnect MessageType = "disconnect"
	MessageTypeError      MessageType = "error"
)

// BaseMessage represents the base structure for all WebSocket messages
type BaseMessage struct {
	ID        string      `json:"id,omitempty"`       // Unique message ID
	Type      MessageType `json:"type"`               // Message type
	Timestamp time.Time   `json:"timestamp"`          // Message timestamp
	TraceID   string      `json:"trace_id,omitempty"` // Request trace ID
}

// WebSocketMessage represents a complete WebSocket message
type WebSocketMessage struct {
	BaseMessage
	Data interface{} `json:"data,omitempty"` // Message payload
}

// FilterInput is the payload of every client filter message. Value carries
// the selected state, county or cert depending on the message type; reset
// messages send no value.
type FilterInput struct {
	Value string `json:"value"`
}

// DashboardViews bundles every derived view pushed after a filter event.
type DashboardViews struct {
	Counties    []string                   `json:"counties"`
	Options     []domain.InstitutionOption `json:"options"`
	Info        domain.InstitutionDetail   `json:"info"`
	Map         domain.MapView             `json:"map"`
	StateChart  domain.ChartAggregate      `json:"state_chart"`
	StatePie    domain.ChartAggregate      `json:"state_pie"`
	CountyChart domain.ChartAggregate      `json:"county_chart"`
	Area        domain.AreaAggregate       `json:"area"`
	Table       domain.TableView           `json:"table"`
}

// DashboardSnapshot is the primary message type for all dashboard updates.
// Each client filter event produces exactly one snapshot reflecting the
// session state after the event was applied.
type DashboardSnapshot struct {
	State     domain.FilterState `json:"state"`
	Views     DashboardViews     `json:"views"`
	Sequence  uint64             `json:"sequence"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ErrorMessage represents an error message
type ErrorMessage struct {
	BaseMessage
	Data struct {
		Code    string      `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
		Retry   bool        `json:"retry"`
		Fatal   bool        `json:"fatal"`
	} `json:"data"`
}

// SystemStatusEvent represents a system status broadcast
type SystemStatusEvent struct {
	BaseMessage
	Data struct {
		Status       string `json:"status"` // healthy|degraded|unhealthy
		Institutions int    `json:"institutions"`
		Branches     int    `json:"branches"`
		Uptime       string `json:"uptime"`
		Version      string `json:"version"`
	} `json:"data"`
}
