// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	// Registers the "postgres" driver.
	_ "github.com/lib/pq"
	// Registers the "sqlite" driver.
	_ "modernc.org/sqlite"
)

// ensure SQLStore implements Store at compile time.
var _ Store = (*SQLStore)(nil)

// SQL drivers understood by SQLStore.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const sqlTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var sqlSchemas = map[string]string{
	DriverPostgres: `CREATE TABLE IF NOT EXISTS audit_entries (
	id                  BIGSERIAL PRIMARY KEY,
	created_at          TIMESTAMPTZ NOT NULL,
	actor               TEXT,
	action              TEXT NOT NULL,
	outcome             TEXT NOT NULL,
	subject_description TEXT,
	request_id          TEXT NOT NULL DEFAULT ''
)`,
	DriverSQLite: `CREATE TABLE IF NOT EXISTS audit_entries (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at          TEXT NOT NULL,
	actor               TEXT,
	action              TEXT NOT NULL,
	outcome             TEXT NOT NULL,
	subject_description TEXT,
	request_id          TEXT NOT NULL DEFAULT ''
)`,
}

const selectEntries = `SELECT id, created_at, actor, action, outcome, subject_description, request_id
FROM audit_entries`

// SQLStore keeps the trail in a relational table. The database assigns ids,
// so concurrent appenders never share one.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// OpenSQLStore opens a database handle for driver and dsn and creates the
// audit table when missing.
func OpenSQLStore(
	ctx context.Context,
	driver string,
	dsn string,
) (*SQLStore, error) {
	driver = normalizeDriver(driver)
	if _, ok := sqlSchemas[driver]; !ok {
		return nil, fmt.Errorf("unsupported audit sql driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	}

	s := NewSQLStore(db, driver)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// NewSQLStore wraps an existing handle. Call Migrate before first use.
func NewSQLStore(
	db *sql.DB,
	driver string,
) *SQLStore {
	return &SQLStore{
		db:     db,
		driver: normalizeDriver(driver),
	}
}

// Migrate creates the audit table if it does not exist.
func (s *SQLStore) Migrate(
	ctx context.Context,
) error {
	schema, ok := sqlSchemas[s.driver]
	if !ok {
		return fmt.Errorf("unsupported audit sql driver %q", s.driver)
	}

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create audit table: %w", err)
	}

	return nil
}

// Close releases the database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *SQLStore) Ping(
	ctx context.Context,
) error {
	return s.db.PingContext(ctx)
}

// Append inserts entry and returns it with the id the database assigned.
func (s *SQLStore) Append(
	ctx context.Context,
	entry Entry,
) (Entry, error) {
	query := s.rebind(`INSERT INTO audit_entries
	(created_at, actor, action, outcome, subject_description, request_id)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id`)

	var subject sql.NullString
	if entry.SubjectDescription != nil {
		subject = sql.NullString{String: *entry.SubjectDescription, Valid: true}
	}

	stored := entry.clone()
	err := s.db.QueryRowContext(
		ctx,
		query,
		s.timeArg(entry.CreatedAt),
		entry.Actor,
		string(entry.Action),
		string(entry.Outcome),
		subject,
		entry.RequestID,
	).Scan(&stored.ID)
	if err != nil {
		return Entry{}, fmt.Errorf("insert audit entry: %w", err)
	}

	return stored, nil
}

// FindByID returns the entry with the given id.
func (s *SQLStore) FindByID(
	ctx context.Context,
	id int64,
) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(selectEntries+` WHERE id = ?`), id)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get audit entry: %w", err)
	}

	return &entry, nil
}

// FindAll returns every entry, oldest first.
func (s *SQLStore) FindAll(
	ctx context.Context,
) ([]Entry, error) {
	return s.query(ctx, selectEntries+` ORDER BY id`)
}

// FindByActor returns the entries recorded for actor, oldest first.
func (s *SQLStore) FindByActor(
	ctx context.Context,
	actor string,
) ([]Entry, error) {
	// Anonymous rows may hold NULL or ''.
	return s.query(ctx, selectEntries+` WHERE COALESCE(actor, '') = ? ORDER BY id`, actor)
}

// Update is refused; the trail is append-only.
func (s *SQLStore) Update(
	_ context.Context,
	_ Entry,
) (bool, error) {
	return false, nil
}

// Delete is refused; the trail is append-only.
func (s *SQLStore) Delete(
	_ context.Context,
	_ int64,
) (bool, error) {
	return false, nil
}

func (s *SQLStore) query(
	ctx context.Context,
	query string,
	args ...any,
) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}

	return entries, nil
}

// rebind turns ? placeholders into $n for postgres.
func (s *SQLStore) rebind(
	query string,
) string {
	if s.driver != DriverPostgres {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			n++
			continue
		}
		sb.WriteByte(query[i])
	}

	return sb.String()
}

func (s *SQLStore) timeArg(
	t time.Time,
) any {
	if s.driver == DriverSQLite {
		return t.UTC().Format(sqlTimeLayout)
	}

	return t.UTC()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(
	row rowScanner,
) (Entry, error) {
	var (
		entry   Entry
		created sqlTime
		actor   sql.NullString
		action  string
		outcome string
		subject sql.NullString
	)

	if err := row.Scan(
		&entry.ID,
		&created,
		&actor,
		&action,
		&outcome,
		&subject,
		&entry.RequestID,
	); err != nil {
		return Entry{}, err
	}

	entry.CreatedAt = created.Time
	entry.Actor = actor.String
	entry.Action = Action(action)
	entry.Outcome = Outcome(outcome)
	if subject.Valid {
		entry.SubjectDescription = stringPtr(subject.String)
	}

	return entry, nil
}

// sqlTime reads timestamps stored natively or as text.
type sqlTime struct {
	time.Time
}

// Scan implements sql.Scanner.
func (t *sqlTime) Scan(
	src any,
) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (t *sqlTime) parse(
	s string,
) error {
	for _, layout := range []string{sqlTimeLayout, time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}

	return fmt.Errorf("parse timestamp %q", s)
}

func normalizeDriver(
	driver string,
) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "postgres", "postgresql":
		return DriverPostgres
	case "sqlite", "sqlite3":
		return DriverSQLite
	default:
		return driver
	}
}
