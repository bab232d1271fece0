package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pagos/internal/core"

	_ "modernc.org/sqlite"
)

// SQLite is an alternative durable binding for Collections. It keeps the
// whole-collection write semantics of the JSON store: Save replaces every
// row the user owns inside one transaction, preserving collection order via
// an explicit position column.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLite) Load(ctx context.Context, userID string) ([]core.Payment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, amount, currency, status, method, type, description, category,
		       notes, created_at, updated_at, completed_at
		FROM payments WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, fmt.Errorf("query collection for %s: %w", userID, err)
	}
	defer rows.Close()

	payments := []core.Payment{}
	for rows.Next() {
		var (
			p                    core.Payment
			createdAt, updatedAt string
			completedAt          sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Amount, &p.Currency, &p.Status, &p.Method,
			&p.Type, &p.Description, &p.Category, &p.Notes,
			&createdAt, &updatedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		if p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at for %s: %w", p.ID, err)
		}
		if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
			return nil, fmt.Errorf("parse updated_at for %s: %w", p.ID, err)
		}
		if completedAt.Valid {
			t, err := time.Parse(time.RFC3339Nano, completedAt.String)
			if err != nil {
				return nil, fmt.Errorf("parse completed_at for %s: %w", p.ID, err)
			}
			p.CompletedAt = &t
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection for %s: %w", userID, err)
	}
	return payments, nil
}

func (s *SQLite) Save(ctx context.Context, userID string, payments []core.Payment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear collection for %s: %w", userID, err)
	}

	for i, p := range payments {
		var completedAt any
		if p.CompletedAt != nil {
			completedAt = p.CompletedAt.Format(time.RFC3339Nano)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO payments (user_id, position, id, amount, currency, status,
			                      method, type, description, category, notes,
			                      created_at, updated_at, completed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, i, p.ID, p.Amount, p.Currency, p.Status, p.Method, p.Type,
			p.Description, p.Category, p.Notes,
			p.CreatedAt.Format(time.RFC3339Nano),
			p.UpdatedAt.Format(time.RFC3339Nano),
			completedAt)
		if err != nil {
			return fmt.Errorf("insert payment %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save for %s: %w", userID, err)
	}
	return nil
}
