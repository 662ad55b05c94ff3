package exporter

import (
	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/domain"
)

// TableHeaders is the download header row for the branch table, in the
// same column order as the dashboard renders it.
var TableHeaders = []string{
	"Institution Name",
	"Office Name",
	"Address",
	"City",
	"County",
	"State",
	"Zip",
	"Service Type",
	"Main Office",
	"Established",
}

// TableRowValues projects table rows onto plain string rows matching
// TableHeaders.
func TableRowValues(rows []domain.TableRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			r.Name,
			r.OfficeName,
			r.Address,
			r.City,
			r.County,
			r.State,
			r.Zip,
			r.ServiceType,
			r.MainOffice,
			r.Established,
		}
	}
	return out
}
