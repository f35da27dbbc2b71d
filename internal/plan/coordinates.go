package plan

import "math"

// EarthRadiusKm is the mean Earth radius used by Haversine.
const EarthRadiusKm = 6371.0

// LatLon is a position in decimal degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

// coordinates holds approximate city centres.
var coordinates = map[string]LatLon{
	"Amsterdam":  {52.3676, 4.9041},
	"Berlin":     {52.52, 13.405},
	"Brussels":   {50.8503, 4.3517},
	"Budapest":   {47.4979, 19.0402},
	"Copenhagen": {55.6761, 12.5683},
	"Hamburg":    {53.5511, 9.9937},
	"Lisbon":     {38.7223, -9.1393},
	"London":     {51.5074, -0.1278},
	"Madrid":     {40.4168, -3.7038},
	"Paris":      {48.8566, 2.3522},
	"Prague":     {50.0755, 14.4378},
	"Rome":       {41.9028, 12.4964},
	"Stockholm":  {59.3293, 18.0686},
	"Vienna":     {48.2082, 16.3738},
	"Zurich":     {47.3769, 8.5417},
}

// Coordinates returns the position of a known city.
func Coordinates(city string) (LatLon, bool) {
	c, ok := coordinates[city]
	return c, ok
}

// Haversine returns the great-circle distance between a and b in km.
func Haversine(a, b LatLon) float64 {
	const rad = math.Pi / 180
	lat1, lon1 := a.Lat*rad, a.Lon*rad
	lat2, lon2 := b.Lat*rad, b.Lon*rad

	dlat := lat2 - lat1
	dlon := lon2 - lon1
	s := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(s)))
}
