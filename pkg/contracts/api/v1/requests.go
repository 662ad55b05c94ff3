// Package api contains API contract definitions for the FDIC Bank Explorer.
// Version v1 represents the current stable API version.
package api

// Geography API Requests

// CountiesRequest selects the state whose county domain is requested.
type CountiesRequest struct {
	State string `json:"state" query:"state" validate:"omitempty,max=60"`
}

// InstitutionOptionsRequest scopes the institution picker options.
type InstitutionOptionsRequest struct {
	State  string `json:"state" query:"state" validate:"omitempty,max=60"`
	County string `json:"county" query:"county" validate:"omitempty,max=80"`
}

// Aggregate API Requests

// StateAggregateRequest selects the institution behind the state chart and
// state pie. An empty cert yields the placeholder payload.
type StateAggregateRequest struct {
	Cert string `json:"cert" query:"cert" validate:"omitempty,max=12"`
}

// CountyAggregateRequest selects the institution and the state scope of
// the county chart.
type CountyAggregateRequest struct {
	Cert  string `json:"cert" query:"cert" validate:"omitempty,max=12"`
	State string `json:"state" query:"state" validate:"omitempty,max=60"`
}

// AreaInstitutionsRequest scopes the institutions-in-area aggregate.
type AreaInstitutionsRequest struct {
	State  string `json:"state" query:"state" validate:"omitempty,max=60"`
	County string `json:"county" query:"county" validate:"omitempty,max=80"`
}

// Table API Requests

// TableRowsRequest carries the full selection driving the branch table.
type TableRowsRequest struct {
	State          string `json:"state" query:"state" validate:"omitempty,max=60"`
	County         string `json:"county" query:"county" validate:"omitempty,max=80"`
	Cert           string `json:"cert" query:"cert" validate:"omitempty,max=12"`
	StateOverride  string `json:"state_override" query:"state_override" validate:"omitempty,max=60"`
	CountyOverride string `json:"county_override" query:"county_override" validate:"omitempty,max=80"`
}

// Map API Requests

// MapPointsRequest selects the institution whose branches are plotted.
type MapPointsRequest struct {
	Cert string `json:"cert" query:"cert" validate:"omitempty,max=12"`
}

// TableExportRequest requests a download of the current table view.
type TableExportRequest struct {
	TableRowsRequest
	Format string `json:"format" validate:"required,oneof=csv xlsx"`
}
