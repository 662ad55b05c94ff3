package domain

// Branch represents a single branch or office location of an institution.
// Cert joins back to the owning Institution.
type Branch struct {
	Cert        string   `json:"cert" validate:"required"`
	UniNum      string   `json:"uninum,omitempty"`
	Name        string   `json:"name,omitempty"`
	OfficeName  string   `json:"office_name,omitempty"`
	OfficeNum   string   `json:"office_num,omitempty"`
	Address     string   `json:"address,omitempty"`
	City        string   `json:"city,omitempty"`
	State       string   `json:"state,omitempty"`
	Zip         string   `json:"zip,omitempty"`
	County      string   `json:"county,omitempty"`
	ServiceType string   `json:"service_type,omitempty"`
	MainOffice  string   `json:"main_office,omitempty"`
	Established string   `json:"established,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// HasCoordinates reports whether the branch carries a plottable location.
func (b Branch) HasCoordinates() bool {
	return b.Latitude != nil && b.Longitude != nil
}

// TableRow is the branch table projection shown in the dashboard.
type TableRow struct {
	Name        string `json:"name"`
	OfficeName  string `json:"office_name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	County      string `json:"county"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	ServiceType string `json:"service_type"`
	MainOffice  string `json:"main_office"`
	Established string `json:"established"`
}

// Row projects the branch onto its table representation.
func (b Branch) Row() TableRow {
	return TableRow{
		Name:        b.Name,
		OfficeName:  b.OfficeName,
		Address:     b.Address,
		City:        b.City,
		County:      b.County,
		State:       b.State,
		Zip:         b.Zip,
		ServiceType: b.ServiceType,
		MainOffice:  b.MainOffice,
		Established: b.Established,
	}
}
