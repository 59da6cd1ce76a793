// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"strings"
)

// sqlite connection defaults, each skipped when the DSN already sets it
var sqliteDefaults = []struct {
	name  string
	param string
}{
	{"busy_timeout", "_pragma=busy_timeout(5000)"},
	{"journal_mode", "_pragma=journal_mode(WAL)"},
	{"_time_format", "_time_format=sqlite"},
}

// Open opens the database for driver. SQLite gets a busy timeout and WAL
// through the DSN, and a single pooled connection so that concurrent
// writers in this process queue instead of failing with SQLITE_BUSY.
func Open(driver, dsn string) (*sql.DB, error) {
	if driver != "sqlite" {
		return sql.Open(driver, dsn)
	}

	conn, err := sql.Open(driver, SQLiteDSN(dsn))
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	return conn, nil
}

// SQLiteDSN appends the connection defaults missing from dsn.
func SQLiteDSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}

	var b strings.Builder
	b.WriteString(dsn)
	for _, d := range sqliteDefaults {
		if strings.Contains(dsn, d.name) {
			continue
		}
		b.WriteString(sep)
		b.WriteString(d.param)
		sep = "&"
	}
	return b.String()
}
