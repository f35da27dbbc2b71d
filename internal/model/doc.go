// Package model defines the data structures shared by the loader, the
// report writers, the history store and the compare command.
//
// This package contains the following main types:
//   - CityDistance: one parsed row of distances.csv
//   - Report: the ordered list of rows plus the fixed banner values
//
// The models are serializable to JSON for report output and history storage.
package model
