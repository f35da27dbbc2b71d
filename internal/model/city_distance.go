package model

import "strconv"

// CityDistance is a single row of the distance table: a destination city
// and its distance in kilometers from the starting city.
//
// No identity beyond the position in the owning slice; two rows with the
// same city are both kept.
type CityDistance struct {
	// City is the text before the first comma of the row, taken verbatim.
	City string `json:"city"`

	// Distance is the distance from the starting city in kilometers.
	Distance int `json:"distance_km"`
}

// NewCityDistance creates a CityDistance.
func NewCityDistance(city string, distance int) CityDistance {
	return CityDistance{City: city, Distance: distance}
}

// Line returns the row in report form, e.g. "Paris - 878 km".
func (c CityDistance) Line() string {
	return c.City + " - " + strconv.Itoa(c.Distance) + " km"
}
