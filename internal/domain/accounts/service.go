// Package accounts is the credential store: registration, authentication,
// and the seed admin.
package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/internlink/server/internal/auth"
	"github.com/internlink/server/internal/storage"
	"github.com/rs/zerolog"
)

type Service struct {
	accounts storage.AccountRepository
	logger   zerolog.Logger
}

func NewService(accounts storage.AccountRepository, logger zerolog.Logger) *Service {
	return &Service{
		accounts: accounts,
		logger:   logger.With().Str("component", "accounts").Logger(),
	}
}

type RegisterStudentParams struct {
	Name     string
	Email    string
	Password string
	Course   string
	Year     int
}

type RegisterAdminParams struct {
	Name     string
	Email    string
	Password string
}

func (s *Service) RegisterStudent(ctx context.Context, params RegisterStudentParams) (int64, error) {
	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.accounts.CreateStudent(ctx, storage.NewStudent{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
		Course:       params.Course,
		Year:         params.Year,
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("student_id", id).Msg("student registered")
	return id, nil
}

func (s *Service) RegisterAdmin(ctx context.Context, params RegisterAdminParams) (int64, error) {
	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.accounts.CreateAdmin(ctx, storage.NewAdmin{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("admin_id", id).Msg("admin registered")
	return id, nil
}

// Authenticate checks the email first against students, then admins, and
// verifies the password against the stored hash.
func (s *Service) Authenticate(ctx context.Context, email, password string) (auth.Identity, error) {
	student, err := s.accounts.StudentByEmail(ctx, email)
	if err == nil {
		if err := auth.CheckPassword(student.PasswordHash, password); err != nil {
			return auth.Identity{}, auth.ErrInvalidCredentials
		}
		return auth.Identity{ID: student.ID, Email: student.Email, Role: auth.RoleStudent}, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return auth.Identity{}, err
	}

	admin, err := s.accounts.AdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return auth.Identity{}, auth.ErrInvalidCredentials
		}
		return auth.Identity{}, err
	}
	if err := auth.CheckPassword(admin.PasswordHash, password); err != nil {
		return auth.Identity{}, auth.ErrInvalidCredentials
	}
	return auth.Identity{ID: admin.ID, Email: admin.Email, Role: auth.RoleAdmin}, nil
}

// SeedAdmin inserts the default administrator if no admin with the seed
// email exists. Idempotent across restarts.
func (s *Service) SeedAdmin(ctx context.Context, name, email, password string) error {
	_, err := s.accounts.AdminByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("check seed admin: %w", err)
	}

	if _, err := s.RegisterAdmin(ctx, RegisterAdminParams{Name: name, Email: email, Password: password}); err != nil {
		// A concurrent seeder may have won the race; the unique
		// constraint makes that outcome equivalent to success.
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return nil
		}
		return fmt.Errorf("create seed admin: %w", err)
	}
	s.logger.Info().Str("email", email).Msg("seed admin created")
	return nil
}
