// Package store persists per-session state that the scoring functions never
// touch: community reports and accumulated eco points. It is backed by
// SQLite through the pure-Go modernc driver.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite" // driver: sqlite

	"github.com/couchcryptid/urban-risk-service/internal/domain"
)

// DefaultDSN is used when no DSN is configured.
const DefaultDSN = "file:urban-risk.db?_pragma=busy_timeout(5000)"

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id         TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	location   TEXT NOT NULL,
	kind       TEXT NOT NULL,
	details    TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS reports_session_idx ON reports (session_id, created_at);

CREATE TABLE IF NOT EXISTS eco_points (
	session_id TEXT PRIMARY KEY,
	points     INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// ReportKinds lists the accepted report categories.
var ReportKinds = []string{
	"Flood",
	"Pollution",
	"Water Management Idea",
	"Green Space Suggestion",
	"Air Quality Concern",
	"Other",
}

// Report is a community hazard report or improvement suggestion.
type Report struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Location  string    `json:"location"`
	Kind      string    `json:"kind"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// EcoPoints is the running eco-points balance of a session.
type EcoPoints struct {
	SessionID string    `json:"session_id"`
	Points    int64     `json:"points"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// SessionStore owns reports and eco points keyed by session ID.
type SessionStore struct {
	db    *sql.DB
	clock clockwork.Clock
}

// Open opens the database behind dsn and ensures the schema exists.
func Open(ctx context.Context, dsn string, clock clockwork.Clock) (*SessionStore, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &SessionStore{db: db, clock: clock}, nil
}

// Close releases the underlying database.
func (s *SessionStore) Close() error {
	return s.db.Close()
}

// CheckReadiness pings the database.
func (s *SessionStore) CheckReadiness(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// AddReport validates and stores a report, filling in ID and CreatedAt.
func (s *SessionStore) AddReport(ctx context.Context, r Report) (Report, error) {
	id, err := sessionKey(r.SessionID)
	if err != nil {
		return Report{}, err
	}
	r.SessionID = id
	r.Location = strings.TrimSpace(r.Location)
	r.Details = strings.TrimSpace(r.Details)
	if err := validateReport(r); err != nil {
		return Report{}, err
	}

	r.ID = uuid.NewString()
	r.CreatedAt = s.clock.Now().UTC().Truncate(time.Millisecond)
	_, err = s.db.ExecContext(ctx, `INSERT INTO reports (id,session_id,location,kind,details,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		r.ID, r.SessionID, r.Location, r.Kind, r.Details, r.CreatedAt.UnixMilli())
	if err != nil {
		return Report{}, fmt.Errorf("insert report: %w", err)
	}
	return r, nil
}

// ListReports returns a session's reports, oldest first.
func (s *SessionStore) ListReports(ctx context.Context, sessionID string) ([]Report, error) {
	sessionID, err := sessionKey(sessionID)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id,session_id,location,kind,details,created_at
		FROM reports WHERE session_id=$1 ORDER BY created_at, id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	reports := []Report{}
	for rows.Next() {
		var r Report
		var created int64
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Location, &r.Kind, &r.Details, &created); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		r.CreatedAt = time.UnixMilli(created).UTC()
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// AddEcoPoints adds delta to a session's balance and returns the new total.
// Balances never go below zero.
func (s *SessionStore) AddEcoPoints(ctx context.Context, sessionID string, delta int64) (EcoPoints, error) {
	sessionID, err := sessionKey(sessionID)
	if err != nil {
		return EcoPoints{}, err
	}
	now := s.clock.Now().UTC().Truncate(time.Millisecond)
	_, err = s.db.ExecContext(ctx, `INSERT INTO eco_points (session_id,points,updated_at)
		VALUES ($1,MAX(0,$2),$3)
		ON CONFLICT (session_id) DO UPDATE SET points=MAX(0,eco_points.points+$4), updated_at=EXCLUDED.updated_at`,
		sessionID, delta, now.UnixMilli(), delta)
	if err != nil {
		return EcoPoints{}, fmt.Errorf("upsert eco points: %w", err)
	}
	return s.GetEcoPoints(ctx, sessionID)
}

// GetEcoPoints returns a session's balance. Unknown sessions hold zero points.
func (s *SessionStore) GetEcoPoints(ctx context.Context, sessionID string) (EcoPoints, error) {
	sessionID, err := sessionKey(sessionID)
	if err != nil {
		return EcoPoints{}, err
	}
	row := s.db.QueryRowContext(ctx, `SELECT points,updated_at FROM eco_points WHERE session_id=$1`, sessionID)
	p := EcoPoints{SessionID: sessionID}
	var updated int64
	if err := row.Scan(&p.Points, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, nil
		}
		return EcoPoints{}, fmt.Errorf("query eco points: %w", err)
	}
	p.UpdatedAt = time.UnixMilli(updated).UTC()
	return p, nil
}

// sessionKey normalizes a session ID the same way for reads and writes.
func sessionKey(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", &domain.InvalidInputError{Field: "session_id", Reason: "must not be empty"}
	}
	return id, nil
}

func validateReport(r Report) error {
	switch {
	case !slices.Contains(ReportKinds, r.Kind):
		return &domain.InvalidInputError{Field: "kind", Reason: fmt.Sprintf("unknown report kind %q", r.Kind)}
	case r.Details == "":
		return &domain.InvalidInputError{Field: "details", Reason: "must not be empty"}
	}
	return nil
}
