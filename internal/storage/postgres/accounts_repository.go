package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/internlink/server/internal/storage"
	"github.com/jackc/pgx/v5"
)

func (r *AccountRepository) CreateStudent(ctx context.Context, student storage.NewStudent) (int64, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO students (name, email, password, course, year)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`, student.Name, student.Email, student.PasswordHash, student.Course, student.Year)

	var id int64
	if err := row.Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, storage.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("create student: %w", err)
	}
	return id, nil
}

func (r *AccountRepository) CreateAdmin(ctx context.Context, admin storage.NewAdmin) (int64, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO admins (name, email, password)
VALUES ($1, $2, $3)
RETURNING id
`, admin.Name, admin.Email, admin.PasswordHash)

	var id int64
	if err := row.Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, storage.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("create admin: %w", err)
	}
	return id, nil
}

func (r *AccountRepository) StudentByEmail(ctx context.Context, email string) (*storage.Student, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, name, email, password, course, year, created_at
  FROM students
 WHERE email = $1
 LIMIT 1
`, email)

	var (
		student storage.Student
		course  *string
		year    *int
	)
	if err := row.Scan(&student.ID, &student.Name, &student.Email, &student.PasswordHash, &course, &year, &student.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("student by email: %w", err)
	}
	student.Course = derefString(course)
	student.Year = derefInt(year)
	return &student, nil
}

func (r *AccountRepository) AdminByEmail(ctx context.Context, email string) (*storage.Admin, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, name, email, password, created_at
  FROM admins
 WHERE email = $1
 LIMIT 1
`, email)

	var admin storage.Admin
	if err := row.Scan(&admin.ID, &admin.Name, &admin.Email, &admin.PasswordHash, &admin.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("admin by email: %w", err)
	}
	return &admin, nil
}

func (r *AccountRepository) StudentExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM students WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("student exists: %w", err)
	}
	return exists, nil
}

func (r *AccountRepository) AdminExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM admins WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("admin exists: %w", err)
	}
	return exists, nil
}

func (r *AccountRepository) CountStudents(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}
