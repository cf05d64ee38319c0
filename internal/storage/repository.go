package storage

import (
	"context"
	"errors"
)

// Sentinel errors returned by every Repository implementation. Handlers map
// these to HTTP statuses; the dialect-specific constraint errors never leak
// past the repository boundary.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrAlreadyApplied = errors.New("already applied")
)

// Repository groups data access by domain. Two implementations exist,
// postgres and sqlite, selected once at startup from configuration.
type Repository interface {
	Accounts() AccountRepository
	Internships() InternshipRepository
	Applications() ApplicationRepository

	Ping(ctx context.Context) error
	Close()
}

type AccountRepository interface {
	CreateStudent(ctx context.Context, student NewStudent) (int64, error)
	CreateAdmin(ctx context.Context, admin NewAdmin) (int64, error)
	StudentByEmail(ctx context.Context, email string) (*Student, error)
	AdminByEmail(ctx context.Context, email string) (*Admin, error)
	StudentExists(ctx context.Context, id int64) (bool, error)
	AdminExists(ctx context.Context, id int64) (bool, error)
	CountStudents(ctx context.Context) (int64, error)
}

type InternshipRepository interface {
	Create(ctx context.Context, internship NewInternship) (int64, error)
	List(ctx context.Context) ([]Internship, error)
	Count(ctx context.Context) (int64, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, application NewApplication) (int64, error)
	Exists(ctx context.Context, studentID, internshipID int64) (bool, error)
	ListByStudent(ctx context.Context, studentID int64) ([]StudentApplication, error)
	ListAll(ctx context.Context) ([]AdminApplication, error)
	SetStatus(ctx context.Context, id int64, status ApplicationStatus) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status ApplicationStatus) (int64, error)
}
