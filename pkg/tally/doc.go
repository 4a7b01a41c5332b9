// Package tally keeps per-run outcome counters in SQLite. It is used to record
// the states a random walk lands in and to read back empirical frequencies.
package tally
