package domain

// AllValue is the wire sentinel for an unconstrained geography dimension.
// Internally the empty string means the same thing; Normalize maps one to
// the other at the API boundary.
const AllValue = "ALL"

// FilterState captures the dashboard selection of one client session.
// The zero value selects nothing: no geography filter, no institution.
// StateOverride and CountyOverride come from chart clicks and are managed
// by the reducer, never set directly by dropdown input.
type FilterState struct {
	State          string `json:"state,omitempty" validate:"omitempty,max=60"`
	County         string `json:"county,omitempty" validate:"omitempty,max=80"`
	Cert           string `json:"cert,omitempty" validate:"omitempty,max=12"`
	StateOverride  string `json:"state_override,omitempty" validate:"omitempty,max=60"`
	CountyOverride string `json:"county_override,omitempty" validate:"omitempty,max=80"`
}

// EffectiveState returns the state scope with chart override precedence.
func (f FilterState) EffectiveState() string {
	if f.StateOverride != "" {
		return f.StateOverride
	}
	return f.State
}

// EffectiveCounty returns the county scope with chart override precedence.
func (f FilterState) EffectiveCounty() string {
	if f.CountyOverride != "" {
		return f.CountyOverride
	}
	return f.County
}

// HasOverride reports whether any chart click override is active.
func (f FilterState) HasOverride() bool {
	return f.StateOverride != "" || f.CountyOverride != ""
}

// HasGeography reports whether a concrete state or county is selected.
func (f FilterState) HasGeography() bool {
	return f.State != "" || f.County != ""
}
