package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestCityDistance_Line tests the report line format.
func TestCityDistance_Line(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cd   CityDistance
		want string
	}{
		{name: "paris", cd: NewCityDistance("Paris", 878), want: "Paris - 878 km"},
		{name: "zero distance", cd: NewCityDistance("Berlin", 0), want: "Berlin - 0 km"},
		{name: "negative distance is printed as is", cd: NewCityDistance("Nowhere", -5), want: "Nowhere - -5 km"},
		{name: "city with spaces", cd: NewCityDistance(" Den Haag", 649), want: " Den Haag - 649 km"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.cd.Line(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestNewReport tests report construction.
func TestNewReport(t *testing.T) {
	t.Parallel()

	t.Run("sets fixed banner values", func(t *testing.T) {
		t.Parallel()
		r := NewReport(nil)
		if r.Title != ProjectTitle {
			t.Errorf("expected title %q, got %q", ProjectTitle, r.Title)
		}
		if r.StartingCity != "Berlin" {
			t.Errorf("expected starting city Berlin, got %q", r.StartingCity)
		}
		if r.GeneratedAt.IsZero() {
			t.Error("expected GeneratedAt to be set")
		}
	})

	t.Run("nil entries become empty slice", func(t *testing.T) {
		t.Parallel()
		r := NewReport(nil)
		if r.Entries == nil {
			t.Fatal("expected non-nil entries")
		}
		if !r.IsEmpty() {
			t.Error("expected empty report")
		}

		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(data), `"entries":[]`) {
			t.Errorf("expected empty JSON array, got %s", data)
		}
	})

	t.Run("copies entries", func(t *testing.T) {
		t.Parallel()
		entries := []CityDistance{NewCityDistance("Paris", 878)}
		r := NewReport(entries)
		entries[0].Distance = 1

		if r.Entries[0].Distance != 878 {
			t.Errorf("expected report to keep its own copy, got %d", r.Entries[0].Distance)
		}
	})
}

// TestReport_Aggregates tests Len, TotalDistance and Lookup.
func TestReport_Aggregates(t *testing.T) {
	t.Parallel()

	r := NewReport([]CityDistance{
		NewCityDistance("Paris", 878),
		NewCityDistance("Amsterdam", 577),
		NewCityDistance("Paris", 880),
	})

	if r.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", r.Len())
	}
	if got := r.TotalDistance(); got != 878+577+880 {
		t.Errorf("expected total %d, got %d", 878+577+880, got)
	}

	lookup := r.Lookup()
	if len(lookup) != 2 {
		t.Errorf("expected 2 distinct cities, got %d", len(lookup))
	}
	if lookup["Paris"] != 880 {
		t.Errorf("expected last Paris row to win, got %d", lookup["Paris"])
	}
}
