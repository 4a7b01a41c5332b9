package main

import (
	"database/sql"
	"fmt"
)

// initDB opens the tally database with the driver selected at build time and
// checks that the file can actually be opened.
func initDB(dataSource string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriver, driverDSN(dataSource))
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open %s database: %w", sqliteDriver, err)
	}
	return db, nil
}
