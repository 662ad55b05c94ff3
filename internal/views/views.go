// Package views derives every dashboard payload from the immutable dataset
// store and a selection. All functions are pure: same store, same
// selection, same payload. Chart ranking is deterministic, count
// descending then label ascending.
package views

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Eringolaw/fdic-bank-explorer/internal/dataset"
	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/domain"
)

// Top-N truncation applied by each ranked chart.
const (
	topStates           = 10
	topPieStates        = 8
	topCounties         = 15
	topAreaInstitutions = 20
)

// Map zoom levels. A single point keeps the wide default; multiple points
// center on the mean coordinate at the closer zoom.
const (
	mapZoomDefault = 3
	mapZoomFitted  = 4
)

// Placeholder and status messages shown by the presentation shell.
const (
	msgSelectInstitutionDetails   = "Select an institution to view details"
	msgSelectInstitutionLocations = "Select an institution to view branch locations"
	msgNoCoordinates              = "No location coordinates available"
	msgTablePrompt                = "Select a state/county to view all branches, or select an institution"
	msgClickToFilter              = "Click on a state or county chart to filter"
)

// States returns the state selector domain: the ALL sentinel followed by
// every state that has at least one branch, sorted.
func States(store *dataset.Store) []string {
	states := store.States()
	out := make([]string, 0, len(states)+1)
	out = append(out, domain.AllValue)
	out = append(out, states...)
	return out
}

// Counties returns the county selector domain for a state. Without a
// concrete state the domain is just the ALL sentinel; counties are never
// enumerated across all states.
func Counties(store *dataset.Store, state string) []string {
	if state == "" {
		return []string{domain.AllValue}
	}
	counties := store.CountiesIn(state)
	out := make([]string, 0, len(counties)+1)
	out = append(out, domain.AllValue)
	out = append(out, counties...)
	return out
}

// InstitutionOptions lists the institutions having at least one branch in
// the given scope, labelled for the picker and sorted by name. Either
// dimension may be empty to leave it unconstrained.
func InstitutionOptions(store *dataset.Store, state, county string) []domain.InstitutionOption {
	seen := make(map[string]struct{})
	for _, b := range store.BranchesIn(state, county) {
		if b.Cert != "" {
			seen[b.Cert] = struct{}{}
		}
	}

	institutions := make([]domain.Institution, 0, len(seen))
	for cert := range seen {
		if inst, ok := store.InstitutionFor(cert); ok {
			institutions = append(institutions, inst)
		}
	}
	sort.Slice(institutions, func(i, j int) bool {
		if institutions[i].Name != institutions[j].Name {
			return institutions[i].Name < institutions[j].Name
		}
		return institutions[i].Cert < institutions[j].Cert
	})

	options := make([]domain.InstitutionOption, 0, len(institutions))
	for _, inst := range institutions {
		options = append(options, domain.InstitutionOption{
			Label: inst.Label(),
			Value: inst.Cert,
		})
	}
	return options
}

// InstitutionInfo builds the info card payload. Unknown or unselected
// certs render the neutral placeholder; an institution without branch
// rows renders a no-data message instead of its figures.
func InstitutionInfo(store *dataset.Store, cert string) domain.InstitutionDetail {
	if cert == "" {
		return domain.InstitutionDetail{Message: msgSelectInstitutionDetails}
	}
	inst, ok := store.InstitutionFor(cert)
	if !ok {
		return domain.InstitutionDetail{Message: msgSelectInstitutionDetails}
	}

	branchCount := len(store.BranchesFor(cert))
	if branchCount == 0 {
		return domain.InstitutionDetail{
			Institution: &inst,
			Message:     "No branch data found for " + inst.Name,
		}
	}
	return domain.InstitutionDetail{
		Institution: &inst,
		BranchCount: branchCount,
	}
}

// countBy tallies branches per key, skipping blank keys the way the source
// tables skip missing values.
func countBy(branches []domain.Branch, key func(domain.Branch) string) map[string]int {
	counts := make(map[string]int)
	for _, b := range branches {
		if k := key(b); k != "" {
			counts[k]++
		}
	}
	return counts
}

// rank orders a tally count descending, label ascending, truncated to top.
func rank(counts map[string]int, top int) []domain.CountItem {
	items := make([]domain.CountItem, 0, len(counts))
	for label, count := range counts {
		items = append(items, domain.CountItem{Label: label, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Label < items[j].Label
	})
	if len(items) > top {
		items = items[:top]
	}
	return items
}

// formatCount renders a count with thousands separators for status lines.
func formatCount(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
