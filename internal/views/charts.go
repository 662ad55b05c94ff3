package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Eringolaw/fdic-bank-explorer/internal/dataset"
	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/domain"
)

func emptyChart() domain.ChartAggregate {
	return domain.ChartAggregate{Items: []domain.CountItem{}}
}

func stateCounts(store *dataset.Store, cert string) ([]domain.Branch, map[string]int) {
	if cert == "" {
		return nil, nil
	}
	branches := store.BranchesFor(cert)
	if len(branches) == 0 {
		return nil, nil
	}
	return branches, countBy(branches, func(b domain.Branch) string { return b.State })
}

// StateAggregate builds the per-state bar chart for a selected institution:
// branch counts by state, top 10. Without a selection the chart is the
// empty placeholder.
func StateAggregate(store *dataset.Store, cert string) domain.ChartAggregate {
	branches, counts := stateCounts(store, cert)
	if counts == nil {
		return emptyChart()
	}
	return domain.ChartAggregate{
		Items: rank(counts, topStates),
		Total: len(branches),
	}
}

// StatePie builds the state share pie for a selected institution: the same
// per-state counts truncated to the top 8 slices.
func StatePie(store *dataset.Store, cert string) domain.ChartAggregate {
	branches, counts := stateCounts(store, cert)
	if counts == nil {
		return emptyChart()
	}
	return domain.ChartAggregate{
		Items: rank(counts, topPieStates),
		Total: len(branches),
	}
}

// CountyAggregate builds the county chart for a selected institution,
// scoped to one state when given. The caller resolves override precedence;
// state == "" means all states. A state scope with no branches yields the
// no-data message rather than an error.
func CountyAggregate(store *dataset.Store, cert, state string) domain.ChartAggregate {
	if cert == "" {
		return emptyChart()
	}
	branches := store.BranchesFor(cert)
	if len(branches) == 0 {
		return emptyChart()
	}

	scope := branches
	title := "Branches by County (All States)"
	if state != "" {
		title = fmt.Sprintf("Branches by County (%s)", state)
		filtered := make([]domain.Branch, 0, len(branches))
		for _, b := range branches {
			if b.State == state {
				filtered = append(filtered, b)
			}
		}
		if len(filtered) == 0 {
			return domain.ChartAggregate{
				Title:   title,
				Items:   []domain.CountItem{},
				Message: "No branches in " + state,
			}
		}
		scope = filtered
	}

	counts := countBy(scope, func(b domain.Branch) string { return b.County })
	return domain.ChartAggregate{
		Title: title,
		Items: rank(counts, topCounties),
		Total: len(scope),
	}
}

// AreaInstitutions summarizes the institutions operating in a dropdown
// geography selection, grouped by certificate and name, top 20 by branch
// count. It applies only when no institution is selected; with neither
// dimension concrete the payload is empty.
func AreaInstitutions(store *dataset.Store, state, county string) domain.AreaAggregate {
	if state == "" && county == "" {
		return domain.AreaAggregate{Items: []domain.AreaInstitution{}}
	}

	branches := store.BranchesIn(state, county)

	var parts []string
	if state != "" {
		parts = append(parts, state)
	}
	if county != "" {
		parts = append(parts, county+" County")
	}
	area := strings.Join(parts, ", ")

	type key struct{ cert, name string }
	counts := make(map[key]int)
	for _, b := range branches {
		if b.Cert == "" {
			continue
		}
		counts[key{cert: b.Cert, name: b.Name}]++
	}

	items := make([]domain.AreaInstitution, 0, len(counts))
	for k, count := range counts {
		items = append(items, domain.AreaInstitution{Cert: k.cert, Name: k.name, Branches: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Branches != items[j].Branches {
			return items[i].Branches > items[j].Branches
		}
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].Cert < items[j].Cert
	})

	institutionCount := len(items)
	if len(items) > topAreaInstitutions {
		items = items[:topAreaInstitutions]
	}

	return domain.AreaAggregate{
		Title:            "Institutions Operating in " + area,
		ChartTitle:       fmt.Sprintf("Top Institutions in %s (%d total)", area, institutionCount),
		Subtitle: fmt.Sprintf("%s institutions with %s total branches",
			formatCount(institutionCount), formatCount(len(branches))),
		Items:            items,
		InstitutionCount: institutionCount,
		BranchCount:      len(branches),
	}
}
