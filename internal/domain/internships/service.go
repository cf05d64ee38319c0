package internships

import (
	"context"

	"github.com/internlink/server/internal/auth"
	"github.com/internlink/server/internal/storage"
	"github.com/rs/zerolog"
)

type Service struct {
	internships storage.InternshipRepository
	logger      zerolog.Logger
}

func NewService(internships storage.InternshipRepository, logger zerolog.Logger) *Service {
	return &Service{
		internships: internships,
		logger:      logger.With().Str("component", "internships").Logger(),
	}
}

type CreateParams struct {
	Title       string
	Company     string
	Description string
	Duration    string
	Slots       int
}

// Create posts a new internship, stamping the owning admin from the verified
// caller identity.
func (s *Service) Create(ctx context.Context, admin auth.Identity, params CreateParams) (int64, error) {
	id, err := s.internships.Create(ctx, storage.NewInternship{
		Title:       params.Title,
		Company:     params.Company,
		Description: params.Description,
		Duration:    params.Duration,
		Slots:       params.Slots,
		AdminID:     admin.ID,
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("internship_id", id).Int64("admin_id", admin.ID).Msg("internship created")
	return id, nil
}

// List returns all internships, newest first.
func (s *Service) List(ctx context.Context) ([]storage.Internship, error) {
	return s.internships.List(ctx)
}
