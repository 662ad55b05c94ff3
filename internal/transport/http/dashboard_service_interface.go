package http

import (
	"context"

	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/domain"
)

// DashboardServiceInterface is the handler-facing dashboard contract.
// Satisfied by services.DashboardService.
type DashboardServiceInterface interface {
	States(ctx context.Context) []string
	Counties(ctx context.Context, state string) ([]string, error)
	InstitutionOptions(ctx context.Context, state, county string) ([]domain.InstitutionOption, error)
	InstitutionInfo(ctx context.Context, cert string) (domain.InstitutionDetail, error)
	Branches(ctx context.Context, cert string) ([]domain.Branch, error)
	StateAggregate(ctx context.Context, cert string) (domain.ChartAggregate, error)
	StatePie(ctx context.Context, cert string) (domain.ChartAggregate, error)
	CountyAggregate(ctx context.Context, cert, state string) (domain.ChartAggregate, error)
	AreaInstitutions(ctx context.Context, state, county string) (domain.AreaAggregate, error)
	MapPoints(ctx context.Context, cert string) (domain.MapView, error)
	TableRows(ctx context.Context, st domain.FilterState) (domain.TableView, error)
}
