package views

import (
	"fmt"
	"strings"

	"github.com/Eringolaw/fdic-bank-explorer/internal/dataset"
	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/domain"
)

// TableRows builds the branch table for the full selection.
//
// Without an institution the table lists all branches matching the
// dropdown dimensions only; chart overrides never apply in that mode. With
// an institution every set dimension, dropdowns and overrides alike, must
// match conjunctively. The Message field carries the status line the shell
// renders above the table.
func TableRows(store *dataset.Store, st domain.FilterState) domain.TableView {
	if st.Cert == "" {
		return allBranchesTable(store, st)
	}

	branches := store.BranchesFor(st.Cert)
	if len(branches) == 0 {
		return domain.TableView{Rows: []domain.TableRow{}}
	}

	filtered := make([]domain.Branch, 0, len(branches))
	for _, b := range branches {
		if st.State != "" && b.State != st.State {
			continue
		}
		if st.County != "" && b.County != st.County {
			continue
		}
		if st.StateOverride != "" && b.State != st.StateOverride {
			continue
		}
		if st.CountyOverride != "" && b.County != st.CountyOverride {
			continue
		}
		filtered = append(filtered, b)
	}

	var parts []string
	if st.StateOverride != "" {
		parts = append(parts, "State: "+st.StateOverride)
	}
	if st.CountyOverride != "" {
		parts = append(parts, "County: "+st.CountyOverride)
	}
	message := msgClickToFilter
	if len(parts) > 0 {
		message = fmt.Sprintf("Filtered by chart selection: %s (click again to clear)",
			strings.Join(parts, ", "))
	}

	return domain.TableView{
		Rows:    tableRows(filtered),
		Total:   len(filtered),
		Message: message,
	}
}

func allBranchesTable(store *dataset.Store, st domain.FilterState) domain.TableView {
	if st.State == "" && st.County == "" {
		return domain.TableView{Rows: []domain.TableRow{}, Message: msgTablePrompt}
	}

	branches := store.BranchesIn(st.State, st.County)

	var parts []string
	if st.State != "" {
		parts = append(parts, "State: "+st.State)
	}
	if st.County != "" {
		parts = append(parts, "County: "+st.County)
	}
	message := fmt.Sprintf("Showing all branches in %s (%s branches from all institutions)",
		strings.Join(parts, ", "), formatCount(len(branches)))

	return domain.TableView{
		Rows:    tableRows(branches),
		Total:   len(branches),
		Message: message,
	}
}

func tableRows(branches []domain.Branch) []domain.TableRow {
	rows := make([]domain.TableRow, 0, len(branches))
	for _, b := range branches {
		rows = append(rows, b.Row())
	}
	return rows
}

// MapPoints builds the branch location map for a selected institution.
// Branches without coordinates stay out of the map but remain in every
// other view. More than one point centers the view on the mean coordinate
// at the closer zoom level.
func MapPoints(store *dataset.Store, cert string) domain.MapView {
	if cert == "" {
		return domain.MapView{Points: []domain.MapPoint{}, Message: msgSelectInstitutionLocations}
	}
	branches := store.BranchesFor(cert)
	if len(branches) == 0 {
		return domain.MapView{Points: []domain.MapPoint{}, Message: msgSelectInstitutionLocations}
	}

	points := make([]domain.MapPoint, 0, len(branches))
	var sumLat, sumLon float64
	for _, b := range branches {
		if !b.HasCoordinates() {
			continue
		}
		points = append(points, domain.MapPoint{
			Latitude:    *b.Latitude,
			Longitude:   *b.Longitude,
			OfficeName:  b.OfficeName,
			Address:     b.Address,
			City:        b.City,
			County:      b.County,
			State:       b.State,
			ServiceType: b.ServiceType,
		})
		sumLat += *b.Latitude
		sumLon += *b.Longitude
	}

	if len(points) == 0 {
		return domain.MapView{Points: []domain.MapPoint{}, Message: msgNoCoordinates}
	}

	view := domain.MapView{
		Points:    points,
		CenterLat: points[0].Latitude,
		CenterLon: points[0].Longitude,
		Zoom:      mapZoomDefault,
	}
	if len(points) > 1 {
		view.CenterLat = sumLat / float64(len(points))
		view.CenterLon = sumLon / float64(len(points))
		view.Zoom = mapZoomFitted
	}
	return view
}
