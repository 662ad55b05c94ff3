package domain

import "fmt"

// Institution represents an FDIC-insured banking institution.
// Asset and Deposits carry the figures exactly as reported by the
// BankFind API (thousands of dollars); they are display values, not
// arithmetic inputs.
type Institution struct {
	Cert        string   `json:"cert" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	City        string   `json:"city,omitempty"`
	State       string   `json:"state,omitempty"`
	Zip         string   `json:"zip,omitempty"`
	Address     string   `json:"address,omitempty"`
	BankClass   string   `json:"bank_class,omitempty"`
	Charter     string   `json:"charter,omitempty"`
	Active      string   `json:"active,omitempty"`
	InsuredDate string   `json:"insured_date,omitempty"`
	RegAgent    string   `json:"reg_agent,omitempty"`
	Asset       string   `json:"asset,omitempty"`
	Deposits    string   `json:"deposits,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	WebAddress  string   `json:"web_address,omitempty"`
}

// Label returns the display label used in institution pickers.
func (i Institution) Label() string {
	return fmt.Sprintf("%s (CERT: %s)", i.Name, i.Cert)
}

// InstitutionOption is one selectable entry in the institution picker.
type InstitutionOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// InstitutionDetail is the info card payload for a selected institution.
// Message is set instead of Institution when there is nothing to show.
type InstitutionDetail struct {
	Institution *Institution `json:"institution,omitempty"`
	BranchCount int          `json:"branch_count"`
	Message     string       `json:"message,omitempty"`
}
