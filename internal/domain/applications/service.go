// Package applications implements the application lifecycle: students apply
// with an optional résumé, admins review and decide.
package applications

import (
	"context"
	"io"

	"github.com/internlink/server/internal/auth"
	"github.com/internlink/server/internal/storage"
	"github.com/internlink/server/internal/uploads"
	"github.com/rs/zerolog"
)

type Service struct {
	applications storage.ApplicationRepository
	store        *uploads.Store
	logger       zerolog.Logger
}

func NewService(applications storage.ApplicationRepository, store *uploads.Store, logger zerolog.Logger) *Service {
	return &Service{
		applications: applications,
		store:        store,
		logger:       logger.With().Str("component", "applications").Logger(),
	}
}

type ApplyParams struct {
	InternshipID int64
	CoverLetter  string
	// CVFilename and CV are the optional résumé part. A disallowed
	// extension drops the file silently; the application still saves.
	CVFilename string
	CV         io.Reader
}

func (s *Service) Apply(ctx context.Context, student auth.Identity, params ApplyParams) (int64, error) {
	// Pre-check for a friendlier error; the uniqueness constraint is the
	// real authority under concurrent submission.
	exists, err := s.applications.Exists(ctx, student.ID, params.InternshipID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, storage.ErrAlreadyApplied
	}

	var cvFile string
	if params.CV != nil && params.CVFilename != "" {
		if uploads.Allowed(params.CVFilename) {
			stored, err := s.store.Save(student.ID, params.InternshipID, params.CVFilename, params.CV)
			if err != nil {
				return 0, err
			}
			cvFile = stored
		} else {
			s.logger.Warn().
				Int64("student_id", student.ID).
				Str("filename", params.CVFilename).
				Msg("dropped resume with disallowed extension")
		}
	}

	id, err := s.applications.Create(ctx, storage.NewApplication{
		StudentID:    student.ID,
		InternshipID: params.InternshipID,
		CVFile:       cvFile,
		CoverLetter:  params.CoverLetter,
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("application_id", id).Int64("student_id", student.ID).Int64("internship_id", params.InternshipID).Msg("application submitted")
	return id, nil
}

// ListForStudent returns the caller's applications joined with internship
// detail, newest first.
func (s *Service) ListForStudent(ctx context.Context, student auth.Identity) ([]storage.StudentApplication, error) {
	return s.applications.ListByStudent(ctx, student.ID)
}

// ListAll returns every application with student and internship detail,
// newest first.
func (s *Service) ListAll(ctx context.Context) ([]storage.AdminApplication, error) {
	return s.applications.ListAll(ctx)
}

// Approve and Reject overwrite the status unconditionally; repeating a
// decision or reversing it is permitted, last write wins.
func (s *Service) Approve(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, storage.StatusApproved)
}

func (s *Service) Reject(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, storage.StatusRejected)
}

func (s *Service) setStatus(ctx context.Context, id int64, status storage.ApplicationStatus) error {
	if err := s.applications.SetStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.Info().Int64("application_id", id).Str("status", string(status)).Msg("application decided")
	return nil
}
