package handlers

import (
	"context"
	"sort"

	"github.com/internlink/server/internal/storage"
)

// In-memory repository fakes with the same constraint semantics as the real
// tables. Methods a test never reaches are inherited from the embedded nil
// interface and panic loudly if hit.

type fakeAccounts struct {
	storage.AccountRepository
	students map[int64]*storage.Student
	admins   map[int64]*storage.Admin
	nextID   int64
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		students: make(map[int64]*storage.Student),
		admins:   make(map[int64]*storage.Admin),
		nextID:   1,
	}
}

func (f *fakeAccounts) emailTaken(email string) bool {
	for _, s := range f.students {
		if s.Email == email {
			return true
		}
	}
	for _, a := range f.admins {
		if a.Email == email {
			return true
		}
	}
	return false
}

func (f *fakeAccounts) CreateStudent(_ context.Context, s storage.NewStudent) (int64, error) {
	if f.emailTaken(s.Email) {
		return 0, storage.ErrDuplicateEmail
	}
	id := f.nextID
	f.nextID++
	f.students[id] = &storage.Student{
		ID:           id,
		Name:         s.Name,
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		Course:       s.Course,
		Year:         s.Year,
	}
	return id, nil
}

func (f *fakeAccounts) CreateAdmin(_ context.Context, a storage.NewAdmin) (int64, error) {
	if f.emailTaken(a.Email) {
		return 0, storage.ErrDuplicateEmail
	}
	id := f.nextID
	f.nextID++
	f.admins[id] = &storage.Admin{
		ID:           id,
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
	}
	return id, nil
}

func (f *fakeAccounts) StudentByEmail(_ context.Context, email string) (*storage.Student, error) {
	for _, s := range f.students {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeAccounts) AdminByEmail(_ context.Context, email string) (*storage.Admin, error) {
	for _, a := range f.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeAccounts) StudentExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.students[id]
	return ok, nil
}

func (f *fakeAccounts) AdminExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.admins[id]
	return ok, nil
}

func (f *fakeAccounts) CountStudents(_ context.Context) (int64, error) {
	return int64(len(f.students)), nil
}

type fakeInternships struct {
	storage.InternshipRepository
	items  []storage.Internship
	nextID int64
}

func newFakeInternships() *fakeInternships {
	return &fakeInternships{nextID: 1}
}

func (f *fakeInternships) Create(_ context.Context, n storage.NewInternship) (int64, error) {
	id := f.nextID
	f.nextID++
	f.items = append(f.items, storage.Internship{
		ID:          id,
		Title:       n.Title,
		Company:     n.Company,
		Description: n.Description,
		Duration:    n.Duration,
		Slots:       n.Slots,
		AdminID:     n.AdminID,
	})
	return id, nil
}

func (f *fakeInternships) List(_ context.Context) ([]storage.Internship, error) {
	items := make([]storage.Internship, len(f.items))
	copy(items, f.items)
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (f *fakeInternships) Count(_ context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

type appKey struct {
	student    int64
	internship int64
}

type fakeApplications struct {
	storage.ApplicationRepository
	byKey  map[appKey]*storage.Application
	byID   map[int64]*storage.Application
	nextID int64
}

func newFakeApplications() *fakeApplications {
	return &fakeApplications{
		byKey:  make(map[appKey]*storage.Application),
		byID:   make(map[int64]*storage.Application),
		nextID: 1,
	}
}

func (f *fakeApplications) Create(_ context.Context, a storage.NewApplication) (int64, error) {
	key := appKey{a.StudentID, a.InternshipID}
	if _, ok := f.byKey[key]; ok {
		return 0, storage.ErrAlreadyApplied
	}
	id := f.nextID
	f.nextID++
	app := &storage.Application{
		ID:           id,
		StudentID:    a.StudentID,
		InternshipID: a.InternshipID,
		CVFile:       a.CVFile,
		CoverLetter:  a.CoverLetter,
		Status:       storage.StatusPending,
	}
	f.byKey[key] = app
	f.byID[id] = app
	return id, nil
}

func (f *fakeApplications) Exists(_ context.Context, studentID, internshipID int64) (bool, error) {
	_, ok := f.byKey[appKey{studentID, internshipID}]
	return ok, nil
}

func (f *fakeApplications) ListByStudent(_ context.Context, studentID int64) ([]storage.StudentApplication, error) {
	items := make([]storage.StudentApplication, 0)
	for _, app := range f.byID {
		if app.StudentID == studentID {
			items = append(items, storage.StudentApplication{Application: *app})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (f *fakeApplications) ListAll(_ context.Context) ([]storage.AdminApplication, error) {
	items := make([]storage.AdminApplication, 0)
	for _, app := range f.byID {
		items = append(items, storage.AdminApplication{
			StudentApplication: storage.StudentApplication{Application: *app},
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (f *fakeApplications) SetStatus(_ context.Context, id int64, status storage.ApplicationStatus) error {
	app, ok := f.byID[id]
	if !ok {
		return storage.ErrNotFound
	}
	app.Status = status
	return nil
}

func (f *fakeApplications) Count(_ context.Context) (int64, error) {
	return int64(len(f.byID)), nil
}

func (f *fakeApplications) CountByStatus(_ context.Context, status storage.ApplicationStatus) (int64, error) {
	var n int64
	for _, app := range f.byID {
		if app.Status == status {
			n++
		}
	}
	return n, nil
}
