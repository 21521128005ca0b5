// Package store saves device events to a SQL database. PostgreSQL (driver "pgx") and SQLite (driver "sqlite3")
// are supported.
package store

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/clambin/rachio-tools/internal/rachio"
	"github.com/georgysavva/scany/sqlscan"
	_ "github.com/jackc/pgx/v4/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

const DefaultTable = "rachio_device_event"

var (
	ErrUnsupportedDriver = errors.New("unsupported database driver")
	ErrInvalidTable      = errors.New("invalid table name")

	validIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)
)

// Store writes device events to a table. Events are keyed by their ID: saving an event that is already in
// the table leaves the existing row untouched.
type Store struct {
	DB     *sql.DB
	driver string
	table  string
}

// Open connects to the database. If table is blank, DefaultTable is used.
func Open(ctx context.Context, driver, dsn, table string) (*Store, error) {
	if driver != "pgx" && driver != "sqlite3" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	if table == "" {
		table = DefaultTable
	}
	if !validIdentifier.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect: %w", err)
	}
	return &Store{DB: db, driver: driver, table: table}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) Table() string {
	return s.table
}

// EnsureTable creates the table if it does not exist yet.
func (s *Store) EnsureTable(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+s.table+` (
	id         TEXT PRIMARY KEY,
	device_id  TEXT NOT NULL,
	category   TEXT,
	type       TEXT,
	sub_type   TEXT,
	event_date BIGINT NOT NULL,
	summary    TEXT,
	hidden     BOOLEAN NOT NULL,
	topic      TEXT
)`)
	if err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

// SaveEvents inserts all events that are not yet in the table, oldest first. It returns the number of rows inserted.
func (s *Store) SaveEvents(ctx context.Context, events []rachio.DeviceEvent) (int, error) {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b rachio.DeviceEvent) int { return cmp.Compare(a.EventDate, b.EventDate) })

	stmt, err := s.DB.PrepareContext(ctx, `INSERT INTO `+s.table+` (id, device_id, category, type, sub_type, event_date, summary, hidden, topic) `+
		`VALUES (`+s.placeholders(9)+`) ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	var inserted int
	for _, event := range sorted {
		result, err := stmt.ExecContext(ctx,
			event.ID,
			event.DeviceID,
			NullString(event.Category),
			NullString(event.Type),
			NullString(event.SubType),
			event.EventDate,
			NullString(event.Summary),
			event.Hidden,
			NullString(event.Topic),
		)
		if err != nil {
			return inserted, fmt.Errorf("insert %s: %w", event.ID, err)
		}
		if n, err := result.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, nil
}

// Count returns the number of events in the table
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := sqlscan.Get(ctx, s.DB, &count, `SELECT COUNT(*) FROM `+s.table)
	return count, err
}

type eventRow struct {
	ID        string         `db:"id"`
	DeviceID  string         `db:"device_id"`
	Category  sql.NullString `db:"category"`
	Type      sql.NullString `db:"type"`
	SubType   sql.NullString `db:"sub_type"`
	EventDate int64          `db:"event_date"`
	Summary   sql.NullString `db:"summary"`
	Hidden    bool           `db:"hidden"`
	Topic     sql.NullString `db:"topic"`
}

// Events returns all events in the table, oldest first.
func (s *Store) Events(ctx context.Context) ([]rachio.DeviceEvent, error) {
	var rows []eventRow
	if err := sqlscan.Select(ctx, s.DB, &rows, `SELECT id, device_id, category, type, sub_type, event_date, summary, hidden, topic FROM `+s.table+` ORDER BY event_date, id`); err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	events := make([]rachio.DeviceEvent, len(rows))
	for i, row := range rows {
		events[i] = rachio.DeviceEvent{
			ID:        row.ID,
			DeviceID:  row.DeviceID,
			Category:  row.Category.String,
			Type:      row.Type.String,
			SubType:   row.SubType.String,
			EventDate: row.EventDate,
			Summary:   row.Summary.String,
			Hidden:    row.Hidden,
			Topic:     row.Topic.String,
		}
	}
	return events, nil
}

func (s *Store) placeholders(n int) string {
	p := make([]string, n)
	for i := range p {
		if s.driver == "pgx" {
			p[i] = "$" + strconv.Itoa(i+1)
		} else {
			p[i] = "?"
		}
	}
	return strings.Join(p, ", ")
}

// NullString stores blank strings as NULL
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
