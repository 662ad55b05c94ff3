package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CountiesIn(t *testing.T) {
	store := loadFixtureStore(t)

	assert.Equal(t, []string{"Dallas", "Tarrant", "Travis"}, store.CountiesIn("Texas"))
	assert.Equal(t, []string{"Tulsa"}, store.CountiesIn("Oklahoma"))
	assert.Empty(t, store.CountiesIn("Narnia"))
}

func TestStore_BranchesIn(t *testing.T) {
	store := loadFixtureStore(t)

	tests := []struct {
		name   string
		state  string
		county string
		want   int
	}{
		{name: "unconstrained", state: "", county: "", want: 6},
		{name: "state only", state: "Texas", county: "", want: 4},
		{name: "state and county", state: "Texas", county: "Dallas", want: 2},
		{name: "county only", state: "", county: "Tulsa", want: 2},
		{name: "no match", state: "Texas", county: "Tulsa", want: 0},
		{name: "unknown state", state: "Narnia", county: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, store.BranchesIn(tt.state, tt.county), tt.want)
		})
	}
}

func TestStore_BranchesFor(t *testing.T) {
	store := loadFixtureStore(t)

	branches := store.BranchesFor("628")
	require.Len(t, branches, 4)
	for _, b := range branches {
		assert.Equal(t, "628", b.Cert)
	}

	assert.Len(t, store.BranchesFor("942"), 1)
	assert.Empty(t, store.BranchesFor("404"))
}

func TestStore_InstitutionFor(t *testing.T) {
	store := loadFixtureStore(t)

	_, ok := store.InstitutionFor("404")
	assert.False(t, ok)

	inst, ok := store.InstitutionFor("942")
	require.True(t, ok)
	assert.Equal(t, "Oak Savings Bank", inst.Name)
	assert.Equal(t, "(CERT: 942)", inst.Label()[len(inst.Label())-11:])
}

func TestStore_HasState(t *testing.T) {
	store := loadFixtureStore(t)

	assert.True(t, store.HasState("Texas"))
	assert.False(t, store.HasState("Narnia"))
}
