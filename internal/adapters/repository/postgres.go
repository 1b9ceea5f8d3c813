// internal/adapters/repository/postgres.go
package repository

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/lib/pq"

	"github.com/mahabubulhasibshawon/library-borrow/internal/ports"
)

// PostgresCartRepository keeps one snapshot row per cart namespace.
// The table is created by the migrations in /migrations.
type PostgresCartRepository struct {
	db *sql.DB
}

func NewPostgresCartRepository(db *sql.DB) ports.CartPersistencePort {
	return &PostgresCartRepository{db: db}
}

func (r *PostgresCartRepository) Load(ctx context.Context, namespace string) ([]byte, error) {
	var snapshot []byte
	err := r.db.QueryRowContext(ctx, "SELECT snapshot FROM cart_snapshots WHERE namespace = $1", namespace).Scan(&snapshot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *PostgresCartRepository) Save(ctx context.Context, namespace string, snapshot []byte) error {
	query := `
		INSERT INTO cart_snapshots (namespace, snapshot, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (namespace) DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, namespace, snapshot)
	return err
}

func (r *PostgresCartRepository) Delete(ctx context.Context, namespace string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM cart_snapshots WHERE namespace = $1", namespace)
	return err
}

func (r *PostgresCartRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
