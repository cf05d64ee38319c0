package postgres

import (
	"context"
	"fmt"

	"github.com/internlink/server/internal/storage"
)

func (r *ApplicationRepository) Create(ctx context.Context, application storage.NewApplication) (int64, error) {
	var cvFile *string
	if application.CVFile != "" {
		cvFile = &application.CVFile
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO applications (student_id, internship_id, cv_file, cover_letter)
VALUES ($1, $2, $3, $4)
RETURNING id
`, application.StudentID, application.InternshipID, cvFile, application.CoverLetter)

	var id int64
	if err := row.Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, storage.ErrAlreadyApplied
		}
		return 0, fmt.Errorf("create application: %w", err)
	}
	return id, nil
}

func (r *ApplicationRepository) Exists(ctx context.Context, studentID, internshipID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM applications WHERE student_id = $1 AND internship_id = $2)
`, studentID, internshipID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("application exists: %w", err)
	}
	return exists, nil
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]storage.StudentApplication, error) {
	rows, err := r.pool.Query(ctx, `
SELECT a.id, a.student_id, a.internship_id, a.cv_file, a.cover_letter, a.status, a.applied_at,
       i.title, i.company
  FROM applications a
  JOIN internships i ON a.internship_id = i.id
 WHERE a.student_id = $1
 ORDER BY a.applied_at DESC, a.id DESC
`, studentID)
	if err != nil {
		return nil, fmt.Errorf("list student applications: %w", err)
	}
	defer rows.Close()

	applications := make([]storage.StudentApplication, 0)
	for rows.Next() {
		var (
			item        storage.StudentApplication
			cvFile      *string
			coverLetter *string
		)
		if err := rows.Scan(&item.ID, &item.StudentID, &item.InternshipID, &cvFile, &coverLetter, &item.Status, &item.AppliedAt, &item.Title, &item.Company); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		item.CVFile = derefString(cvFile)
		item.CoverLetter = derefString(coverLetter)
		applications = append(applications, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list student applications: %w", err)
	}
	return applications, nil
}

func (r *ApplicationRepository) ListAll(ctx context.Context) ([]storage.AdminApplication, error) {
	rows, err := r.pool.Query(ctx, `
SELECT a.id, a.student_id, a.internship_id, a.cv_file, a.cover_letter, a.status, a.applied_at,
       s.name, s.email, s.course, s.year,
       i.title, i.company
  FROM applications a
  JOIN students s ON a.student_id = s.id
  JOIN internships i ON a.internship_id = i.id
 ORDER BY a.applied_at DESC, a.id DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	applications := make([]storage.AdminApplication, 0)
	for rows.Next() {
		var (
			item        storage.AdminApplication
			cvFile      *string
			coverLetter *string
			course      *string
			year        *int
		)
		if err := rows.Scan(
			&item.ID, &item.StudentID, &item.InternshipID, &cvFile, &coverLetter, &item.Status, &item.AppliedAt,
			&item.StudentName, &item.StudentEmail, &course, &year,
			&item.Title, &item.Company,
		); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		item.CVFile = derefString(cvFile)
		item.CoverLetter = derefString(coverLetter)
		item.Course = derefString(course)
		item.Year = derefInt(year)
		applications = append(applications, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return applications, nil
}

func (r *ApplicationRepository) SetStatus(ctx context.Context, id int64, status storage.ApplicationStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE applications SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("set application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM applications`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return count, nil
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context, status storage.ApplicationStatus) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE status = $1`, string(status)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count applications by status: %w", err)
	}
	return count, nil
}
