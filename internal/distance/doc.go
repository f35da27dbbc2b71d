// Package distance loads the distance table from distances.csv.
//
// The file format is deliberately simple: the first line is a header and is
// discarded without inspection; every following line is split on its first
// comma into a city name and an integer distance in kilometers. City names
// are taken verbatim (no trimming, no quoting rules). Rows keep file order
// and duplicates are kept.
//
// Two error types are returned:
//   - *OpenError when the file cannot be opened
//   - *ParseError when a distance is not an integer
//
// Both are fatal for the caller; there is no partial result.
package distance
