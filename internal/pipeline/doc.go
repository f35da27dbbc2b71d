// Package pipeline runs the steps that turn distances.csv into a report.
//
// A report run is a fixed sequence: load the file, write the report, and
// optionally save a history snapshot. Each stage is a Step that receives the
// shared Run state. Steps execute one after another and the first error
// stops the run, so nothing is written when loading fails.
package pipeline
