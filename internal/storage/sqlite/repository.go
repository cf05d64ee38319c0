package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/internlink/server/internal/storage"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) (*Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlite repository: db is nil")
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Accounts() storage.AccountRepository {
	return &AccountRepository{db: r.db}
}

func (r *Repository) Internships() storage.InternshipRepository {
	return &InternshipRepository{db: r.db}
}

func (r *Repository) Applications() storage.ApplicationRepository {
	return &ApplicationRepository{db: r.db}
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) Close() {
	_ = r.db.Close()
}

type AccountRepository struct {
	db *sql.DB
}

type InternshipRepository struct {
	db *sql.DB
}

type ApplicationRepository struct {
	db *sql.DB
}

// isUniqueViolation reports whether err is a SQLite unique-constraint error.
// modernc.org/sqlite surfaces these as "constraint failed: UNIQUE constraint
// failed: <table>.<column>".
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
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
