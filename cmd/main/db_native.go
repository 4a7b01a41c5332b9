//go:build !cgo_sqlite

package main

import (
	"strings"

	_ "modernc.org/sqlite"
)

const sqliteDriver = "sqlite"

// driverDSN rewrites mattn-style _name=value query options, as used by the
// default config, into the _pragma=name(value) form of the pure-Go driver.
// Other options are dropped.
func driverDSN(dataSource string) string {
	path, query, found := strings.Cut(dataSource, "?")
	if !found {
		return dataSource
	}
	var pragmas []string
	for _, opt := range strings.Split(query, "&") {
		name, value, ok := strings.Cut(opt, "=")
		if !ok || !strings.HasPrefix(name, "_") {
			continue
		}
		pragmas = append(pragmas, "_pragma="+strings.TrimPrefix(name, "_")+"("+value+")")
	}
	if len(pragmas) == 0 {
		return path
	}
	return path + "?" + strings.Join(pragmas, "&")
}
