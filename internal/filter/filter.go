// Package filter implements the dashboard selection state machine: an
// explicit event type for every mutation and a pure reducer that applies
// events to a selection. All dependency rules between dropdowns and chart
// click overrides live here and nowhere else.
package filter

import (
	"strings"

	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/domain"
)

// EventType enumerates the dashboard selection mutations.
type EventType string

const (
	// EventSetState selects a state in the dropdown.
	EventSetState EventType = "set_state"
	// EventSetCounty selects a county in the dropdown.
	EventSetCounty EventType = "set_county"
	// EventSetInstitution selects an institution by certificate number.
	EventSetInstitution EventType = "set_institution"
	// EventClickStateBar toggles the state override from a chart click.
	EventClickStateBar EventType = "click_state"
	// EventClickCountyBar toggles the county override from a chart click.
	EventClickCountyBar EventType = "click_county"
	// EventReset clears the whole selection.
	EventReset EventType = "reset"
)

// Event pairs a mutation with its input value. Reset events carry no value.
type Event struct {
	Type  EventType `json:"type"`
	Value string    `json:"value,omitempty"`
}

// Normalize maps the wire sentinel for an unconstrained dimension to the
// internal empty string. The sentinel is matched case-insensitively.
func Normalize(value string) string {
	if strings.EqualFold(value, domain.AllValue) {
		return ""
	}
	return value
}

// NormalizeState normalizes every dimension of a selection arriving from
// the wire.
func NormalizeState(s domain.FilterState) domain.FilterState {
	s.State = Normalize(s.State)
	s.County = Normalize(s.County)
	s.Cert = Normalize(s.Cert)
	s.StateOverride = Normalize(s.StateOverride)
	s.CountyOverride = Normalize(s.CountyOverride)
	return s
}

// Reduce applies one event to a selection and returns the next selection.
// It is pure: no I/O, no clock, no mutation of the input.
//
// Dependency rules:
//   - a state change resets the county dropdown and clears both overrides;
//   - a county change clears the county override;
//   - an institution change clears both overrides;
//   - a state chart click toggles the state override and always clears the
//     county override, whether it sets or clears;
//   - a county chart click toggles the county override.
//
// Unknown event types and empty chart click values leave the selection
// unchanged.
func Reduce(s domain.FilterState, ev Event) domain.FilterState {
	switch ev.Type {
	case EventSetState:
		s.State = Normalize(ev.Value)
		s.County = ""
		s.StateOverride = ""
		s.CountyOverride = ""

	case EventSetCounty:
		s.County = Normalize(ev.Value)
		s.CountyOverride = ""

	case EventSetInstitution:
		s.Cert = Normalize(ev.Value)
		s.StateOverride = ""
		s.CountyOverride = ""

	case EventClickStateBar:
		if ev.Value == "" {
			break
		}
		if s.StateOverride == ev.Value {
			s.StateOverride = ""
		} else {
			s.StateOverride = ev.Value
		}
		s.CountyOverride = ""

	case EventClickCountyBar:
		if ev.Value == "" {
			break
		}
		if s.CountyOverride == ev.Value {
			s.CountyOverride = ""
		} else {
			s.CountyOverride = ev.Value
		}

	case EventReset:
		s = domain.FilterState{}
	}

	return s
}
