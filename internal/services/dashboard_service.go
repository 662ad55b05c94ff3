package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Eringolaw/fdic-bank-explorer/internal/dataset"
	"github.com/Eringolaw/fdic-bank-explorer/internal/filter"
	"github.com/Eringolaw/fdic-bank-explorer/internal/views"
	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/domain"
	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/events"
)

// DashboardService answers every dashboard query against the loaded
// dataset. The store is immutable, so all methods are read-only and safe
// for concurrent use. Inputs arriving from the wire are normalized here:
// the ALL sentinel collapses to the empty string and certificate numbers
// are canonicalized before any lookup.
type DashboardService struct {
	store  *dataset.Store
	logger *slog.Logger
}

// NewDashboardService creates a dashboard service over a loaded store.
func NewDashboardService(store *dataset.Store, logger *slog.Logger) (*DashboardService, error) {
	if store == nil {
		return nil, fmt.Errorf("dashboard service: %w", ErrDatasetUnavailable)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		store:  store,
		logger: logger.With(slog.String("service", "dashboard")),
	}, nil
}

// States returns the state selector domain.
func (s *DashboardService) States(ctx context.Context) []string {
	return views.States(s.store)
}

// Counties returns the county selector domain for a state. A concrete
// state that has no branches at all is rejected as unknown.
func (s *DashboardService) Counties(ctx context.Context, state string) ([]string, error) {
	state = filter.Normalize(state)
	if state != "" && !s.store.HasState(state) {
		return nil, fmt.Errorf("counties for %q: %w", state, ErrUnknownState)
	}
	return views.Counties(s.store, state), nil
}

// InstitutionOptions lists the picker options for a geography scope.
func (s *DashboardService) InstitutionOptions(ctx context.Context, state, county string) ([]domain.InstitutionOption, error) {
	state = filter.Normalize(state)
	county = filter.Normalize(county)
	return views.InstitutionOptions(s.store, state, county), nil
}

// InstitutionInfo returns the info card payload for one institution.
func (s *DashboardService) InstitutionInfo(ctx context.Context, cert string) (domain.InstitutionDetail, error) {
	cert, err := s.resolveCert(cert)
	if err != nil {
		return domain.InstitutionDetail{}, err
	}
	return views.InstitutionInfo(s.store, cert), nil
}

// Branches returns every branch row of one institution.
func (s *DashboardService) Branches(ctx context.Context, cert string) ([]domain.Branch, error) {
	cert, err := s.resolveCert(cert)
	if err != nil {
		return nil, err
	}
	branches := s.store.BranchesFor(cert)
	if len(branches) == 0 {
		return nil, fmt.Errorf("institution %s: %w", cert, ErrNoBranchesFound)
	}
	return branches, nil
}

// StateAggregate returns the per-state bar chart payload. An empty cert is
// a valid query and yields the placeholder payload.
func (s *DashboardService) StateAggregate(ctx context.Context, cert string) (domain.ChartAggregate, error) {
	cert, err := s.resolveOptionalCert(cert)
	if err != nil {
		return domain.ChartAggregate{}, err
	}
	return views.StateAggregate(s.store, cert), nil
}

// StatePie returns the state share pie payload.
func (s *DashboardService) StatePie(ctx context.Context, cert string) (domain.ChartAggregate, error) {
	cert, err := s.resolveOptionalCert(cert)
	if err != nil {
		return domain.ChartAggregate{}, err
	}
	return views.StatePie(s.store, cert), nil
}

// CountyAggregate returns the county chart payload scoped to a state.
func (s *DashboardService) CountyAggregate(ctx context.Context, cert, state string) (domain.ChartAggregate, error) {
	cert, err := s.resolveOptionalCert(cert)
	if err != nil {
		return domain.ChartAggregate{}, err
	}
	return views.CountyAggregate(s.store, cert, filter.Normalize(state)), nil
}

// AreaInstitutions returns the institutions-in-area payload for a dropdown
// geography selection.
func (s *DashboardService) AreaInstitutions(ctx context.Context, state, county string) (domain.AreaAggregate, error) {
	return views.AreaInstitutions(s.store, filter.Normalize(state), filter.Normalize(county)), nil
}

// MapPoints returns the branch map payload for an institution. An empty
// cert yields the placeholder payload.
func (s *DashboardService) MapPoints(ctx context.Context, cert string) (domain.MapView, error) {
	cert, err := s.resolveOptionalCert(cert)
	if err != nil {
		return domain.MapView{}, err
	}
	return views.MapPoints(s.store, cert), nil
}

// TableRows returns the branch table for a full selection.
func (s *DashboardService) TableRows(ctx context.Context, st domain.FilterState) (domain.TableView, error) {
	st = filter.NormalizeState(st)
	if st.Cert != "" {
		cert, err := s.resolveCert(st.Cert)
		if err != nil {
			return domain.TableView{}, err
		}
		st.Cert = cert
	}
	return views.TableRows(s.store, st), nil
}

// Snapshot derives the complete view bundle for one selection. Unknown
// certificates degrade to placeholder views instead of failing, matching
// the dashboard's tolerant rendering path.
func (s *DashboardService) Snapshot(ctx context.Context, st domain.FilterState) events.DashboardViews {
	st = filter.NormalizeState(st)
	st.Cert = dataset.CanonicalCert(st.Cert)

	area := domain.AreaAggregate{Items: []domain.AreaInstitution{}}
	if st.Cert == "" {
		area = views.AreaInstitutions(s.store, st.State, st.County)
	}

	return events.DashboardViews{
		Counties:    views.Counties(s.store, st.State),
		Options:     views.InstitutionOptions(s.store, st.State, st.County),
		Info:        views.InstitutionInfo(s.store, st.Cert),
		Map:         views.MapPoints(s.store, st.Cert),
		StateChart:  views.StateAggregate(s.store, st.Cert),
		StatePie:    views.StatePie(s.store, st.Cert),
		CountyChart: views.CountyAggregate(s.store, st.Cert, st.EffectiveState()),
		Area:        area,
		Table:       views.TableRows(s.store, st),
	}
}

// InstitutionCount returns the size of the institutions table.
func (s *DashboardService) InstitutionCount() int { return s.store.InstitutionCount() }

// BranchCount returns the size of the branch locations table.
func (s *DashboardService) BranchCount() int { return s.store.BranchCount() }

// LoadedAt returns when the datasets were loaded.
func (s *DashboardService) LoadedAt() time.Time { return s.store.LoadedAt() }

// resolveCert canonicalizes a required certificate number and verifies the
// institution exists.
func (s *DashboardService) resolveCert(cert string) (string, error) {
	cert = dataset.CanonicalCert(filter.Normalize(cert))
	if cert == "" {
		return "", fmt.Errorf("certificate number required: %w", ErrInvalidInput)
	}
	if _, ok := s.store.InstitutionFor(cert); !ok {
		return "", fmt.Errorf("institution %s: %w", cert, ErrInstitutionNotFound)
	}
	return cert, nil
}

// resolveOptionalCert is resolveCert for queries where no selection is a
// valid scope.
func (s *DashboardService) resolveOptionalCert(cert string) (string, error) {
	cert = dataset.CanonicalCert(filter.Normalize(cert))
	if cert == "" {
		return "", nil
	}
	if _, ok := s.store.InstitutionFor(cert); !ok {
		return "", fmt.Errorf("institution %s: %w", cert, ErrInstitutionNotFound)
	}
	return cert, nil
}
