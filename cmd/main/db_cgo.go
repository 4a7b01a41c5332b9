//go:build cgo_sqlite

package main

import (
	_ "github.com/mattn/go-sqlite3"
)

const sqliteDriver = "sqlite3"

// driverDSN passes the configured path through; mattn reads _name=value
// query options natively.
func driverDSN(dataSource string) string {
	return dataSource
}
