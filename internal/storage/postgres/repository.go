package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/internlink/server/internal/storage"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) (*Repository, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres repository: pool is nil")
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Accounts() storage.AccountRepository {
	return &AccountRepository{pool: r.pool}
}

func (r *Repository) Internships() storage.InternshipRepository {
	return &InternshipRepository{pool: r.pool}
}

func (r *Repository) Applications() storage.ApplicationRepository {
	return &ApplicationRepository{pool: r.pool}
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Repository) Close() {
	r.pool.Close()
}

type AccountRepository struct {
	pool *pgxpool.Pool
}

type InternshipRepository struct {
	pool *pgxpool.Pool
}

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique-constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func derefInt(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}
