package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// MySQL keeps documents as rows of a two column table.  The whole JSON
// body is replaced on every write, which keeps the contract identical
// to the file backend.
type MySQL struct {
	db *sql.DB
}

const createDocumentsTable = `CREATE TABLE IF NOT EXISTS documents (
    name       VARCHAR(64) NOT NULL PRIMARY KEY,
    body       LONGTEXT    NOT NULL,
    updated_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) CHARACTER SET utf8mb4`

// NewMySQL ensures the documents table exists and returns the backend.
func NewMySQL(ctx context.Context, db *sql.DB) (*MySQL, error) {
	if _, err := db.ExecContext(ctx, createDocumentsTable); err != nil {
		return nil, fmt.Errorf("create documents table: %w", err)
	}
	return &MySQL{db: db}, nil
}

// Read implements Documents.
func (m *MySQL) Read(ctx context.Context, name string, v any) error {
	const q = "SELECT body FROM documents WHERE name = ?"
	var body string
	if err := m.db.QueryRowContext(ctx, q, name).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotExist
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	return nil
}

// Replace implements Documents.
func (m *MySQL) Replace(ctx context.Context, name string, v any) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	const q = "INSERT INTO documents (name, body) VALUES (?, ?) ON DUPLICATE KEY UPDATE body = VALUES(body)"
	if _, err := m.db.ExecContext(ctx, q, name, string(bs)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
