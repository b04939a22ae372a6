// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ManuGH/statusbot/internal/persistence/sqlite"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS status_changes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	actor_id TEXT NOT NULL,
	product_id TEXT NOT NULL,
	product_name TEXT NOT NULL,
	status_text TEXT NOT NULL,
	status_color TEXT NOT NULL,
	result TEXT NOT NULL,
	reason TEXT NOT NULL,
	detail TEXT NOT NULL DEFAULT '',
	created_at_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_status_changes_product ON status_changes(product_id, created_at_ms);
CREATE INDEX IF NOT EXISTS idx_status_changes_actor ON status_changes(actor_id, created_at_ms);
`

// ErrCorrupt is returned by OpenStore when the integrity check fails.
var ErrCorrupt = errors.New("audit: database failed integrity check")

// Change is one attempted status write.
type Change struct {
	SessionID   string
	ActorID     string
	ProductID   string
	ProductName string
	Text        string
	Color       string
	Result      string // applied or failed
	Reason      string
	Detail      string
	At          time.Time
}

// Store persists status changes in SQLite.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the audit database at path. An existing file
// is integrity-checked before use.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	if _, err := os.Stat(path); err == nil {
		issues, err := sqlite.VerifyIntegrity(path, "quick")
		if err != nil {
			return nil, fmt.Errorf("audit: verify %s: %w", path, err)
		}
		if issues != nil {
			return nil, fmt.Errorf("%w: %s", ErrCorrupt, strings.Join(issues, "; "))
		}
	}

	db, err := sqlite.Open(path, sqlite.DefaultConfig())
	if err != nil {
		return nil, err
	}
	if err := sqlite.Migrate(ctx, db, schemaVersion, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("audit store: migration failed: %w", err)
	}
	return &Store{db: db}, nil
}

// Record inserts one change.
func (s *Store) Record(ctx context.Context, c Change) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO status_changes
		(session_id, actor_id, product_id, product_name, status_text, status_color, result, reason, detail, created_at_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.SessionID, c.ActorID, c.ProductID, c.ProductName, c.Text, c.Color, c.Result, c.Reason, c.Detail, c.At.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("audit: record change: %w", err)
	}
	return nil
}

// Recent returns up to limit changes, newest first. An empty productID
// returns changes for every product.
func (s *Store) Recent(ctx context.Context, productID string, limit int) ([]Change, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
	SELECT session_id, actor_id, product_id, product_name, status_text, status_color, result, reason, detail, created_at_ms
	FROM status_changes
	WHERE ? = '' OR product_id = ?
	ORDER BY created_at_ms DESC, id DESC
	LIMIT ?`, productID, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("audit: query changes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Change
	for rows.Next() {
		var c Change
		var atMS int64
		if err := rows.Scan(&c.SessionID, &c.ActorID, &c.ProductID, &c.ProductName, &c.Text, &c.Color, &c.Result, &c.Reason, &c.Detail, &atMS); err != nil {
			return nil, fmt.Errorf("audit: scan change: %w", err)
		}
		c.At = time.UnixMilli(atMS).UTC()
		out = append(out, c)
	}
	return out, rows.Err()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
