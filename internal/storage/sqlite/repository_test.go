package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/internlink/server/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, MigrateUp(path))

	db, err := Open(path)
	require.NoError(t, err)

	repo, err := NewRepository(db)
	require.NoError(t, err)
	t.Cleanup(repo.Close)
	return repo
}

func TestMigrateUpIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, MigrateUp(path))
	require.NoError(t, MigrateUp(path))
}

func TestPing(t *testing.T) {
	repo := newTestRepository(t)
	require.NoError(t, repo.Ping(context.Background()))
}

func TestCreateStudentDuplicateEmail(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	student := storage.NewStudent{Name: "Ada", Email: "ada@example.com", PasswordHash: "x", Course: "CS", Year: 3}
	id, err := repo.Accounts().CreateStudent(ctx, student)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	_, err = repo.Accounts().CreateStudent(ctx, student)
	assert.ErrorIs(t, err, storage.ErrDuplicateEmail)
}

func TestStudentByEmail(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Accounts().CreateStudent(ctx, storage.NewStudent{
		Name: "Ada", Email: "ada@example.com", PasswordHash: "hash", Course: "CS", Year: 3,
	})
	require.NoError(t, err)

	student, err := repo.Accounts().StudentByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", student.Name)
	assert.Equal(t, "hash", student.PasswordHash)
	assert.Equal(t, "CS", student.Course)
	assert.Equal(t, 3, student.Year)
	assert.False(t, student.CreatedAt.IsZero())

	_, err = repo.Accounts().StudentByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAdminRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	id, err := repo.Accounts().CreateAdmin(ctx, storage.NewAdmin{Name: "Admin", Email: "admin@example.com", PasswordHash: "hash"})
	require.NoError(t, err)

	admin, err := repo.Accounts().AdminByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, admin.ID)

	exists, err := repo.Accounts().AdminExists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Accounts().StudentExists(ctx, id)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInternshipsNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	adminID, err := repo.Accounts().CreateAdmin(ctx, storage.NewAdmin{Name: "Admin", Email: "admin@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	for _, title := range []string{"First", "Second", "Third"} {
		_, err := repo.Internships().Create(ctx, storage.NewInternship{
			Title: title, Company: "Initech", Description: "Go", Duration: "3 months", Slots: 2, AdminID: adminID,
		})
		require.NoError(t, err)
	}

	items, err := repo.Internships().List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	// Same-second timestamps fall back to id ordering.
	assert.Equal(t, "Third", items[0].Title)
	assert.Equal(t, "First", items[2].Title)

	count, err := repo.Internships().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func seedApplication(t *testing.T, repo *Repository) (studentID, internshipID int64) {
	t.Helper()
	ctx := context.Background()

	adminID, err := repo.Accounts().CreateAdmin(ctx, storage.NewAdmin{Name: "Admin", Email: "admin@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	studentID, err = repo.Accounts().CreateStudent(ctx, storage.NewStudent{Name: "Ada", Email: "ada@example.com", PasswordHash: "x", Course: "CS", Year: 3})
	require.NoError(t, err)
	internshipID, err = repo.Internships().Create(ctx, storage.NewInternship{Title: "Backend Intern", Company: "Initech", AdminID: adminID})
	require.NoError(t, err)
	return studentID, internshipID
}

func TestApplicationUniqueness(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	studentID, internshipID := seedApplication(t, repo)

	newApp := storage.NewApplication{StudentID: studentID, InternshipID: internshipID, CoverLetter: "hi"}
	_, err := repo.Applications().Create(ctx, newApp)
	require.NoError(t, err)

	_, err = repo.Applications().Create(ctx, newApp)
	assert.ErrorIs(t, err, storage.ErrAlreadyApplied)

	exists, err := repo.Applications().Exists(ctx, studentID, internshipID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestApplicationListsAndStatus(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	studentID, internshipID := seedApplication(t, repo)

	id, err := repo.Applications().Create(ctx, storage.NewApplication{
		StudentID: studentID, InternshipID: internshipID, CVFile: "1_1_resume.pdf", CoverLetter: "hi",
	})
	require.NoError(t, err)

	mine, err := repo.Applications().ListByStudent(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, storage.StatusPending, mine[0].Status)
	assert.Equal(t, "Backend Intern", mine[0].Title)
	assert.Equal(t, "Initech", mine[0].Company)
	assert.Equal(t, "1_1_resume.pdf", mine[0].CVFile)

	all, err := repo.Applications().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Ada", all[0].StudentName)
	assert.Equal(t, "ada@example.com", all[0].StudentEmail)
	assert.Equal(t, "CS", all[0].Course)
	assert.Equal(t, 3, all[0].Year)

	require.NoError(t, repo.Applications().SetStatus(ctx, id, storage.StatusApproved))
	require.NoError(t, repo.Applications().SetStatus(ctx, id, storage.StatusRejected))

	mine, err = repo.Applications().ListByStudent(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, storage.StatusRejected, mine[0].Status)

	assert.ErrorIs(t, repo.Applications().SetStatus(ctx, 9999, storage.StatusApproved), storage.ErrNotFound)
}

func TestApplicationCounts(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	studentID, internshipID := seedApplication(t, repo)

	otherStudent, err := repo.Accounts().CreateStudent(ctx, storage.NewStudent{Name: "Grace", Email: "grace@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	first, err := repo.Applications().Create(ctx, storage.NewApplication{StudentID: studentID, InternshipID: internshipID})
	require.NoError(t, err)
	_, err = repo.Applications().Create(ctx, storage.NewApplication{StudentID: otherStudent, InternshipID: internshipID})
	require.NoError(t, err)
	require.NoError(t, repo.Applications().SetStatus(ctx, first, storage.StatusApproved))

	total, err := repo.Applications().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	pending, err := repo.Applications().CountByStatus(ctx, storage.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)

	approved, err := repo.Applications().CountByStatus(ctx, storage.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, int64(1), approved)

	students, err := repo.Accounts().CountStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), students)
}
