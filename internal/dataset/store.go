package dataset

import (
	"log/slog"
	"sort"
	"time"

	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/domain"
)

// Store holds both tables plus the lookup indexes derived at load time.
// It is immutable after construction and safe for concurrent readers
// without locking.
type Store struct {
	institutions []domain.Institution
	branches     []domain.Branch

	institutionByCert map[string]int
	branchesByCert    map[string][]int
	branchesByState   map[string][]int

	states          []string
	countiesByState map[string][]string

	loadedAt time.Time
}

func newStore(institutions []domain.Institution, branches []domain.Branch, logger *slog.Logger) *Store {
	s := &Store{
		institutions:      institutions,
		branches:          branches,
		institutionByCert: make(map[string]int, len(institutions)),
		branchesByCert:    make(map[string][]int),
		branchesByState:   make(map[string][]int),
		countiesByState:   make(map[string][]string),
		loadedAt:          time.Now(),
	}

	duplicates := 0
	for i, inst := range institutions {
		if inst.Cert == "" {
			continue
		}
		if _, exists := s.institutionByCert[inst.Cert]; exists {
			duplicates++
			continue // first row wins
		}
		s.institutionByCert[inst.Cert] = i
	}
	if duplicates > 0 {
		logger.Warn("duplicate certificate numbers in institutions table",
			slog.Int("duplicates", duplicates))
	}

	countySets := make(map[string]map[string]struct{})
	for i, b := range branches {
		if b.Cert != "" {
			s.branchesByCert[b.Cert] = append(s.branchesByCert[b.Cert], i)
		}
		if b.State == "" {
			continue
		}
		s.branchesByState[b.State] = append(s.branchesByState[b.State], i)
		if b.County != "" {
			set, ok := countySets[b.State]
			if !ok {
				set = make(map[string]struct{})
				countySets[b.State] = set
			}
			set[b.County] = struct{}{}
		}
	}

	s.states = make([]string, 0, len(s.branchesByState))
	for state := range s.branchesByState {
		s.states = append(s.states, state)
	}
	sort.Strings(s.states)

	for state, set := range countySets {
		counties := make([]string, 0, len(set))
		for county := range set {
			counties = append(counties, county)
		}
		sort.Strings(counties)
		s.countiesByState[state] = counties
	}

	return s
}

// InstitutionCount returns the number of loaded institutions.
func (s *Store) InstitutionCount() int { return len(s.institutions) }

// BranchCount returns the number of loaded branch locations.
func (s *Store) BranchCount() int { return len(s.branches) }

// LoadedAt returns when the store was built.
func (s *Store) LoadedAt() time.Time { return s.loadedAt }

// States returns the sorted distinct states that have at least one branch.
func (s *Store) States() []string {
	out := make([]string, len(s.states))
	copy(out, s.states)
	return out
}

// CountiesIn returns the sorted distinct counties of one state. An unknown
// state returns the empty slice.
func (s *Store) CountiesIn(state string) []string {
	counties := s.countiesByState[state]
	out := make([]string, len(counties))
	copy(out, counties)
	return out
}

// HasState reports whether at least one branch belongs to the state.
func (s *Store) HasState(state string) bool {
	_, ok := s.branchesByState[state]
	return ok
}

// InstitutionFor looks up an institution by canonical certificate number.
func (s *Store) InstitutionFor(cert string) (domain.Institution, bool) {
	i, ok := s.institutionByCert[cert]
	if !ok {
		return domain.Institution{}, false
	}
	return s.institutions[i], true
}

// Institutions returns the institution table. The slice is shared; callers
// must not modify it.
func (s *Store) Institutions() []domain.Institution { return s.institutions }

// Branches returns the branch table. The slice is shared; callers must not
// modify it.
func (s *Store) Branches() []domain.Branch { return s.branches }

// BranchesFor returns the branches of one institution in table order.
func (s *Store) BranchesFor(cert string) []domain.Branch {
	idx := s.branchesByCert[cert]
	out := make([]domain.Branch, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.branches[i])
	}
	return out
}

// BranchesIn returns the branches matching the given state and county.
// Either dimension may be empty to leave it unconstrained.
func (s *Store) BranchesIn(state, county string) []domain.Branch {
	if state == "" && county == "" {
		out := make([]domain.Branch, len(s.branches))
		copy(out, s.branches)
		return out
	}

	var out []domain.Branch
	if state != "" {
		for _, i := range s.branchesByState[state] {
			b := s.branches[i]
			if county != "" && b.County != county {
				continue
			}
			out = append(out, b)
		}
		return out
	}
	for _, b := range s.branches {
		if b.County == county {
			out = append(out, b)
		}
	}
	return out
}
