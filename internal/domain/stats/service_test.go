package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/internlink/server/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccounts struct {
	storage.AccountRepository
	students int64
}

func (f *fakeAccounts) CountStudents(context.Context) (int64, error) {
	return f.students, nil
}

type fakeInternships struct {
	storage.InternshipRepository
	count int64
	err   error
}

func (f *fakeInternships) Count(context.Context) (int64, error) {
	return f.count, f.err
}

type fakeApplications struct {
	storage.ApplicationRepository
	total    int64
	byStatus map[storage.ApplicationStatus]int64
}

func (f *fakeApplications) Count(context.Context) (int64, error) {
	return f.total, nil
}

func (f *fakeApplications) CountByStatus(_ context.Context, status storage.ApplicationStatus) (int64, error) {
	return f.byStatus[status], nil
}

func TestCollect(t *testing.T) {
	svc := NewService(
		&fakeAccounts{students: 3},
		&fakeInternships{count: 2},
		&fakeApplications{
			total: 2,
			byStatus: map[storage.ApplicationStatus]int64{
				storage.StatusPending:  1,
				storage.StatusApproved: 1,
				storage.StatusRejected: 0,
			},
		},
	)

	counts, err := svc.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Counts{
		TotalInternships:     2,
		TotalApplications:    2,
		PendingApplications:  1,
		ApprovedApplications: 1,
		RejectedApplications: 0,
		TotalStudents:        3,
	}, counts)
}

func TestCollectPropagatesError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(
		&fakeAccounts{},
		&fakeInternships{err: boom},
		&fakeApplications{byStatus: map[storage.ApplicationStatus]int64{}},
	)

	_, err := svc.Collect(context.Background())
	assert.ErrorIs(t, err, boom)
}
