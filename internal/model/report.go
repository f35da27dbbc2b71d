package model

import (
	"slices"
	"time"
)

// Fixed banner values. Neither is configurable.
const (
	// ProjectTitle is the first line of every report.
	ProjectTitle = "European Vacation Project - Sprint 1"

	// StartingCity is the city all distances are measured from.
	StartingCity = "Berlin"
)

// Report is the result of loading distances.csv.
// Entries keep the order of the rows in the file.
type Report struct {
	// Title is the project title printed in the banner.
	Title string `json:"title"`

	// StartingCity is the origin all distances refer to.
	StartingCity string `json:"starting_city"`

	// Entries holds one element per data row, in file order.
	Entries []CityDistance `json:"entries"`

	// GeneratedAt is when the report was built. It is not printed by the
	// text writer so that the plain report stays byte-for-byte stable.
	GeneratedAt time.Time `json:"generated_at"`
}

// NewReport creates a Report with the fixed title and starting city.
// The entries slice is copied so later changes by the caller do not leak in.
func NewReport(entries []CityDistance) *Report {
	if entries == nil {
		entries = []CityDistance{}
	}
	return &Report{
		Title:        ProjectTitle,
		StartingCity: StartingCity,
		Entries:      slices.Clone(entries),
		GeneratedAt:  time.Now(),
	}
}

// Len returns the number of entries.
func (r *Report) Len() int {
	return len(r.Entries)
}

// IsEmpty reports whether the file had no data rows.
func (r *Report) IsEmpty() bool {
	return len(r.Entries) == 0
}

// TotalDistance returns the sum of all entry distances in kilometers.
func (r *Report) TotalDistance() int {
	total := 0
	for _, e := range r.Entries {
		total += e.Distance
	}
	return total
}

// Lookup returns the distance map keyed by city name.
// When a city appears more than once the last row wins.
func (r *Report) Lookup() map[string]int {
	m := make(map[string]int, len(r.Entries))
	for _, e := range r.Entries {
		m[e.City] = e.Distance
	}
	return m
}
