package sqlite

import (
	"context"
	"fmt"

	"github.com/internlink/server/internal/storage"
)

func (r *InternshipRepository) Create(ctx context.Context, internship storage.NewInternship) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
INSERT INTO internships (title, company, description, duration, slots, admin_id)
VALUES (?, ?, ?, ?, ?, ?)
`, internship.Title, internship.Company, internship.Description, internship.Duration, internship.Slots, internship.AdminID)
	if err != nil {
		return 0, fmt.Errorf("create internship: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create internship: %w", err)
	}
	return id, nil
}

func (r *InternshipRepository) List(ctx context.Context) ([]storage.Internship, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, company, description, duration, slots, date_posted, admin_id
  FROM internships
 ORDER BY date_posted DESC, id DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list internships: %w", err)
	}
	defer rows.Close()

	internships := make([]storage.Internship, 0)
	for rows.Next() {
		var (
			item        storage.Internship
			description *string
			duration    *string
		)
		if err := rows.Scan(&item.ID, &item.Title, &item.Company, &description, &duration, &item.Slots, &item.DatePosted, &item.AdminID); err != nil {
			return nil, fmt.Errorf("scan internship: %w", err)
		}
		item.Description = derefString(description)
		item.Duration = derefString(duration)
		internships = append(internships, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list internships: %w", err)
	}
	return internships, nil
}

func (r *InternshipRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM internships`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count internships: %w", err)
	}
	return count, nil
}
