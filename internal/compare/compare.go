// Package compare computes the difference between two distance reports.
package compare

import (
	"github.com/nao1215/vacationreport/internal/model"
)

// Change is a city present in both reports with a different distance.
type Change struct {
	City     string `json:"city"`
	Previous int    `json:"previous_km"`
	Current  int    `json:"current_km"`
}

// Delta returns Current - Previous.
func (c Change) Delta() int {
	return c.Current - c.Previous
}

// Result holds the difference between a previous and a current report.
// Cities are matched by exact name; for a city listed more than once the
// last row counts.
type Result struct {
	// Added lists cities only in the current report, in current file order.
	Added []model.CityDistance `json:"added"`

	// Removed lists cities only in the previous report, in previous file order.
	Removed []model.CityDistance `json:"removed"`

	// Changed lists cities whose distance differs, in current file order.
	Changed []Change `json:"changed"`

	// UnchangedCount is the number of cities with the same distance in both.
	UnchangedCount int `json:"unchanged_count"`

	// PreviousTotal and CurrentTotal are the summed distances of all rows.
	PreviousTotal int `json:"previous_total_km"`
	CurrentTotal  int `json:"current_total_km"`
}

// Reports compares previous with current.
func Reports(previous, current *model.Report) *Result {
	prev := previous.Lookup()
	cur := current.Lookup()

	result := &Result{
		Added:         []model.CityDistance{},
		Removed:       []model.CityDistance{},
		Changed:       []Change{},
		PreviousTotal: previous.TotalDistance(),
		CurrentTotal:  current.TotalDistance(),
	}

	for _, city := range uniqueCities(current) {
		km := cur[city]
		old, ok := prev[city]
		switch {
		case !ok:
			result.Added = append(result.Added, model.NewCityDistance(city, km))
		case old != km:
			result.Changed = append(result.Changed, Change{City: city, Previous: old, Current: km})
		default:
			result.UnchangedCount++
		}
	}

	for _, city := range uniqueCities(previous) {
		if _, ok := cur[city]; !ok {
			result.Removed = append(result.Removed, model.NewCityDistance(city, prev[city]))
		}
	}

	return result
}

// HasChanges reports whether anything was added, removed or changed.
func (r *Result) HasChanges() bool {
	return len(r.Added)+len(r.Removed)+len(r.Changed) > 0
}

// uniqueCities returns city names in order of first appearance.
func uniqueCities(report *model.Report) []string {
	seen := make(map[string]struct{}, report.Len())
	cities := make([]string, 0, report.Len())
	for _, e := range report.Entries {
		if _, ok := seen[e.City]; ok {
			continue
		}
		seen[e.City] = struct{}{}
		cities = append(cities, e.City)
	}
	return cities
}
