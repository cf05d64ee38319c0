package stats

import (
	"context"

	"github.com/internlink/server/internal/storage"
	"golang.org/x/sync/errgroup"
)

// Counts is the admin dashboard summary. Each field is an independent COUNT
// query; there is no single aggregate join.
type Counts struct {
	TotalInternships     int64 `json:"total_internships"`
	TotalApplications    int64 `json:"total_applications"`
	PendingApplications  int64 `json:"pending_applications"`
	ApprovedApplications int64 `json:"approved_applications"`
	RejectedApplications int64 `json:"rejected_applications"`
	TotalStudents        int64 `json:"total_students"`
}

type Service struct {
	accounts     storage.AccountRepository
	internships  storage.InternshipRepository
	applications storage.ApplicationRepository
}

func NewService(accounts storage.AccountRepository, internships storage.InternshipRepository, applications storage.ApplicationRepository) *Service {
	return &Service{
		accounts:     accounts,
		internships:  internships,
		applications: applications,
	}
}

// Collect runs the six counts concurrently against the pool; the first error
// cancels the rest.
func (s *Service) Collect(ctx context.Context) (Counts, error) {
	var counts Counts

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts.TotalInternships, err = s.internships.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		counts.TotalApplications, err = s.applications.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		counts.PendingApplications, err = s.applications.CountByStatus(ctx, storage.StatusPending)
		return err
	})
	g.Go(func() (err error) {
		counts.ApprovedApplications, err = s.applications.CountByStatus(ctx, storage.StatusApproved)
		return err
	})
	g.Go(func() (err error) {
		counts.RejectedApplications, err = s.applications.CountByStatus(ctx, storage.StatusRejected)
		return err
	})
	g.Go(func() (err error) {
		counts.TotalStudents, err = s.accounts.CountStudents(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Counts{}, err
	}
	return counts, nil
}
