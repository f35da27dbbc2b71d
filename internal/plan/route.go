package plan

import (
	"fmt"
	"math"
	"slices"
)

// DefaultMaxIterations bounds the 2-opt passes.
const DefaultMaxIterations = 1500

// improvementEpsilon ignores 2-opt gains caused by rounding.
const improvementEpsilon = 1e-6

// DistanceFunc returns the distance in km between two cities and whether it is known.
type DistanceFunc func(from, to string) (float64, bool)

// NewDistanceFunc returns a DistanceFunc that uses fromStart for legs that
// touch start and Haversine between known coordinates for everything else.
func NewDistanceFunc(start string, fromStart map[string]int) DistanceFunc {
	return func(from, to string) (float64, bool) {
		if from == to {
			return 0, true
		}
		if from == start {
			if km, ok := fromStart[to]; ok {
				return float64(km), true
			}
		}
		if to == start {
			if km, ok := fromStart[from]; ok {
				return float64(km), true
			}
		}
		a, okA := Coordinates(from)
		b, okB := Coordinates(to)
		if !okA || !okB {
			return 0, false
		}
		return Haversine(a, b), true
	}
}

// MissingDistanceError is returned when two cities of a route cannot be measured.
type MissingDistanceError struct {
	From string
	To   string
}

// Error implements error.
func (e *MissingDistanceError) Error() string {
	return fmt.Sprintf("no distance known between %s and %s", e.From, e.To)
}

// Stop is one city of a route.
type Stop struct {
	City string `json:"city"`

	// LegKm is the distance from the previous stop; zero for the start.
	LegKm float64 `json:"leg_km"`
}

// Route is an ordered open path that starts at Stops[0].
type Route struct {
	Stops   []Stop  `json:"stops"`
	TotalKm float64 `json:"total_km"`
}

// Planner builds routes.
type Planner struct {
	dist          DistanceFunc
	maxIterations int
}

// Option configures a Planner.
type Option func(*Planner)

// WithMaxIterations sets the 2-opt iteration limit. Zero disables 2-opt.
func WithMaxIterations(n int) Option {
	return func(p *Planner) {
		if n >= 0 {
			p.maxIterations = n
		}
	}
}

// NewPlanner creates a Planner that measures legs with dist.
func NewPlanner(dist DistanceFunc, opts ...Option) *Planner {
	p := &Planner{
		dist:          dist,
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan returns a route from start through every city. Duplicates and
// occurrences of start in cities are ignored.
func (p *Planner) Plan(start string, cities []string) (*Route, error) {
	names := []string{start}
	for _, c := range cities {
		if !slices.Contains(names, c) {
			names = append(names, c)
		}
	}

	m, err := Matrix(names, p.dist)
	if err != nil {
		return nil, err
	}

	order := NearestNeighbor(m)
	if p.maxIterations > 0 {
		order = TwoOpt(order, m, p.maxIterations)
	}

	route := &Route{Stops: make([]Stop, 0, len(order))}
	for i, idx := range order {
		leg := 0.0
		if i > 0 {
			leg = m[order[i-1]][idx]
		}
		route.Stops = append(route.Stops, Stop{City: names[idx], LegKm: leg})
	}
	route.TotalKm = Length(order, m)
	return route, nil
}

// Matrix returns the symmetric distance matrix of cities.
func Matrix(cities []string, dist DistanceFunc) ([][]float64, error) {
	n := len(cities)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for i := range n {
		for j := i + 1; j < n; j++ {
			d, ok := dist(cities[i], cities[j])
			if !ok || math.IsNaN(d) || math.IsInf(d, 0) {
				return nil, &MissingDistanceError{From: cities[i], To: cities[j]}
			}
			m[i][j], m[j][i] = d, d
		}
	}
	return m, nil
}

// NearestNeighbor returns an open path over m starting at index 0 that
// always moves to the closest unvisited city.
func NearestNeighbor(m [][]float64) []int {
	n := len(m)
	if n == 0 {
		return []int{}
	}

	visited := make([]bool, n)
	visited[0] = true
	order := []int{0}
	for len(order) < n {
		last := order[len(order)-1]
		best, bestD := -1, math.Inf(1)
		for j := range n {
			if !visited[j] && m[last][j] < bestD {
				best, bestD = j, m[last][j]
			}
		}
		visited[best] = true
		order = append(order, best)
	}
	return order
}

// TwoOpt shortens an open path by reversing segments while that helps.
// The first city stays fixed and order is not modified.
func TwoOpt(order []int, m [][]float64, maxIterations int) []int {
	best := slices.Clone(order)
	n := len(best)

	improved := true
	for iter := 0; improved && iter < maxIterations; iter++ {
		improved = false
		for i := 1; i < n-2; i++ {
			for k := i + 1; k < n-1; k++ {
				a, b, c, d := best[i-1], best[i], best[k], best[k+1]
				delta := (m[a][c] + m[b][d]) - (m[a][b] + m[c][d])
				if delta < -improvementEpsilon {
					slices.Reverse(best[i : k+1])
					improved = true
				}
			}
		}
	}
	return best
}

// Length returns the length of an open path over m.
func Length(order []int, m [][]float64) float64 {
	total := 0.0
	for i := 1; i < len(order); i++ {
		total += m[order[i-1]][order[i]]
	}
	return total
}
