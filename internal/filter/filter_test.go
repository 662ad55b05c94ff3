package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/domain"
)

func TestReduce(t *testing.T) {
	tests := []struct {
		name  string
		start domain.FilterState
		event Event
		want  domain.FilterState
	}{
		{
			name:  "set state from zero",
			event: Event{Type: EventSetState, Value: "Texas"},
			want:  domain.FilterState{State: "Texas"},
		},
		{
			name:  "set state normalizes ALL",
			start: domain.FilterState{State: "Texas"},
			event: Event{Type: EventSetState, Value: "ALL"},
			want:  domain.FilterState{},
		},
		{
			name: "state change resets county and overrides",
			start: domain.FilterState{
				State: "Texas", County: "Dallas", Cert: "628",
				StateOverride: "Oklahoma", CountyOverride: "Tulsa",
			},
			event: Event{Type: EventSetState, Value: "Oklahoma"},
			want:  domain.FilterState{State: "Oklahoma", Cert: "628"},
		},
		{
			name:  "set county clears county override only",
			start: domain.FilterState{State: "Texas", StateOverride: "Oklahoma", CountyOverride: "Tulsa"},
			event: Event{Type: EventSetCounty, Value: "Dallas"},
			want:  domain.FilterState{State: "Texas", County: "Dallas", StateOverride: "Oklahoma"},
		},
		{
			name:  "set institution clears both overrides",
			start: domain.FilterState{State: "Texas", StateOverride: "Oklahoma", CountyOverride: "Tulsa"},
			event: Event{Type: EventSetInstitution, Value: "628"},
			want:  domain.FilterState{State: "Texas", Cert: "628"},
		},
		{
			name:  "state bar click sets override and clears county override",
			start: domain.FilterState{Cert: "628", CountyOverride: "Dallas"},
			event: Event{Type: EventClickStateBar, Value: "Texas"},
			want:  domain.FilterState{Cert: "628", StateOverride: "Texas"},
		},
		{
			name:  "state bar click on active override toggles it off",
			start: domain.FilterState{Cert: "628", StateOverride: "Texas", CountyOverride: "Dallas"},
			event: Event{Type: EventClickStateBar, Value: "Texas"},
			want:  domain.FilterState{Cert: "628"},
		},
		{
			name:  "county bar click sets override",
			start: domain.FilterState{Cert: "628"},
			event: Event{Type: EventClickCountyBar, Value: "Dallas"},
			want:  domain.FilterState{Cert: "628", CountyOverride: "Dallas"},
		},
		{
			name:  "county bar click on active override toggles it off",
			start: domain.FilterState{Cert: "628", CountyOverride: "Dallas"},
			event: Event{Type: EventClickCountyBar, Value: "Dallas"},
			want:  domain.FilterState{Cert: "628"},
		},
		{
			name:  "empty chart click value is a no-op",
			start: domain.FilterState{Cert: "628", StateOverride: "Texas"},
			event: Event{Type: EventClickStateBar},
			want:  domain.FilterState{Cert: "628", StateOverride: "Texas"},
		},
		{
			name: "reset clears everything",
			start: domain.FilterState{
				State: "Texas", County: "Dallas", Cert: "628",
				StateOverride: "Oklahoma", CountyOverride: "Tulsa",
			},
			event: Event{Type: EventReset},
			want:  domain.FilterState{},
		},
		{
			name:  "unknown event leaves selection unchanged",
			start: domain.FilterState{State: "Texas", Cert: "628"},
			event: Event{Type: EventType("bogus"), Value: "x"},
			want:  domain.FilterState{State: "Texas", Cert: "628"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(tt.start, tt.event)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	start := domain.FilterState{State: "Texas", County: "Dallas"}
	_ = Reduce(start, Event{Type: EventSetState, Value: "Oklahoma"})
	assert.Equal(t, domain.FilterState{State: "Texas", County: "Dallas"}, start)
}

func TestNormalizeState(t *testing.T) {
	in := domain.FilterState{
		State: "ALL", County: "ALL", Cert: "628",
		StateOverride: "Texas", CountyOverride: "ALL",
	}
	got := NormalizeState(in)
	assert.Equal(t, domain.FilterState{Cert: "628", StateOverride: "Texas"}, got)
}

func TestNormalize_CaseInsensitiveSentinel(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"ALL", ""},
		{"all", ""},
		{"All", ""},
		{"", ""},
		{"Texas", "Texas"},
		{"Allendale", "Allendale"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.value), tt.value)
	}
}

func TestSession_Apply(t *testing.T) {
	s := NewSession()

	state, seq := s.Apply(Event{Type: EventSetState, Value: "Texas"})
	assert.Equal(t, "Texas", state.State)
	assert.Equal(t, uint64(1), seq)

	state, seq = s.Apply(Event{Type: EventClickStateBar, Value: "Oklahoma"})
	assert.Equal(t, "Oklahoma", state.StateOverride)
	assert.Equal(t, uint64(2), seq)

	require.Equal(t, state, s.State())
	assert.Equal(t, uint64(2), s.Sequence())
}

func TestSession_EffectiveGeography(t *testing.T) {
	s := NewSession()
	s.Apply(Event{Type: EventSetState, Value: "Texas"})
	s.Apply(Event{Type: EventSetCounty, Value: "Dallas"})

	state := s.State()
	assert.Equal(t, "Texas", state.EffectiveState())
	assert.Equal(t, "Dallas", state.EffectiveCounty())

	state, _ = s.Apply(Event{Type: EventClickStateBar, Value: "Oklahoma"})
	assert.Equal(t, "Oklahoma", state.EffectiveState())
	assert.True(t, state.HasOverride())
}
