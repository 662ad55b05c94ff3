package domain

// CountItem is a labelled branch count inside a ranked chart payload.
type CountItem struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ChartAggregate is the payload behind the state bar, state pie and county
// charts. Items are truncated to the chart's top-N; Total counts the
// untruncated distinct labels. Message is set when there is nothing to
// plot but the shell should say why.
type ChartAggregate struct {
	Title   string      `json:"title,omitempty"`
	Items   []CountItem `json:"items"`
	Total   int         `json:"total"`
	Message string      `json:"message,omitempty"`
}

// Empty reports whether the aggregate carries no items.
func (c ChartAggregate) Empty() bool {
	return len(c.Items) == 0
}

// MapPoint is one plottable branch on the location map.
type MapPoint struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	OfficeName  string  `json:"office_name"`
	Address     string  `json:"address,omitempty"`
	City        string  `json:"city,omitempty"`
	County      string  `json:"county,omitempty"`
	State       string  `json:"state,omitempty"`
	ServiceType string  `json:"service_type,omitempty"`
}

// MapView is the branch location map payload. With more than one point the
// view centers on the mean coordinates at a closer zoom; a Message replaces
// the map when there is nothing to plot.
type MapView struct {
	Points    []MapPoint `json:"points"`
	CenterLat float64    `json:"center_lat,omitempty"`
	CenterLon float64    `json:"center_lon,omitempty"`
	Zoom      int        `json:"zoom,omitempty"`
	Message   string     `json:"message,omitempty"`
}

// TableView is the branch table payload plus its filter status line.
type TableView struct {
	Rows    []TableRow `json:"rows"`
	Total   int        `json:"total"`
	Message string     `json:"message,omitempty"`
}

// AreaInstitution is one institution operating in the selected area.
type AreaInstitution struct {
	Cert     string `json:"cert"`
	Name     string `json:"name"`
	Branches int    `json:"branches"`
}

// AreaAggregate summarizes the institutions operating in a geography
// selection. It is only populated when no institution is selected and at
// least one geography dimension is concrete.
type AreaAggregate struct {
	Title            string            `json:"title,omitempty"`
	ChartTitle       string            `json:"chart_title,omitempty"`
	Subtitle         string            `json:"subtitle,omitempty"`
	Items            []AreaInstitution `json:"items"`
	InstitutionCount int               `json:"institution_count"`
	BranchCount      int               `json:"branch_count"`
}
