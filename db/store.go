// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrConflict  = errors.New("record already exists")
	ErrForbidden = errors.New("record is read-only")
)

// Unbounded disables the LIMIT clause for internal callers that load a
// whole window at once.
const Unbounded = -1

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// ListOptions filters and pages a collection. From and To are inclusive
// date keys; empty means open-ended.
type ListOptions struct {
	From          string
	To            string
	Limit         int
	Offset        int
	RoutineType   string
	FavoritesOnly bool
	Query         string
}

// Page clamps limit and offset to the values accepted from clients.
func (o ListOptions) Page() ListOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

// Store is the persistence layer over postgres or sqlite. Every query is
// scoped to the calling user; catalogs also expose the shared defaults.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

func NewStore(db *sql.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// DB exposes the underlying handle, mainly for tests and health checks.
func (s *Store) DB() *sql.DB {
	return s.db
}

// fail maps driver errors onto the package sentinels and logs the ones that
// are not expected outcomes.
func (s *Store) fail(op string, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	}
	s.logger.Error("store operation failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}

// where accumulates AND-ed conditions with numbered placeholders.
type where struct {
	clauses []string
	args    []interface{}
}

// add appends a condition; each "?" in clause becomes the next $N.
func (w *where) add(clause string, args ...interface{}) {
	for _, a := range args {
		w.args = append(w.args, a)
		clause = strings.Replace(clause, "?", "$"+strconv.Itoa(len(w.args)), 1)
	}
	w.clauses = append(w.clauses, clause)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// page renders LIMIT/OFFSET and appends their arguments.
func (w *where) page(opts ListOptions) string {
	if opts.Limit == Unbounded {
		return ""
	}
	w.args = append(w.args, opts.Limit, opts.Offset)
	n := len(w.args)
	return " LIMIT $" + strconv.Itoa(n-1) + " OFFSET $" + strconv.Itoa(n)
}

// dateRange adds inclusive bounds on a date key column.
func (w *where) dateRange(column string, opts ListOptions) {
	if opts.From != "" {
		w.add(column+" >= ?", opts.From)
	}
	if opts.To != "" {
		w.add(column+" <= ?", opts.To)
	}
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullableFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
