// Package plan orders a set of cities into a short open route.
//
// A route starts at a fixed city and visits every other city once without
// returning. The order comes from a nearest-neighbour tour followed by 2-opt
// improvement. Distances come from a DistanceFunc; NewDistanceFunc prefers
// the measured distances from the start city and falls back to great-circle
// distances between known city coordinates.
package plan
