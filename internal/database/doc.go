// Package database provides SQLite-based storage for report snapshots.
//
// Every time a report is saved, the full report is stored as JSON together
// with its entry count, total distance and a BLAKE2b checksum of the rows.
// The checksum lets Save skip a report that is identical to the latest
// snapshot, and lets the compare command tell at a glance whether
// distances.csv changed.
//
// The database is a single file (vacationreport.db) driven by the CGO-free
// modernc.org/sqlite driver.
package database
