package storage

import "time"

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusApproved ApplicationStatus = "Approved"
	StatusRejected ApplicationStatus = "Rejected"
)

type Student struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Course       string    `json:"course"`
	Year         int       `json:"year"`
	CreatedAt    time.Time `json:"created_at"`
}

type NewStudent struct {
	Name         string
	Email        string
	PasswordHash string
	Course       string
	Year         int
}

type Admin struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type NewAdmin struct {
	Name         string
	Email        string
	PasswordHash string
}

type Internship struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description"`
	Duration    string    `json:"duration"`
	Slots       int       `json:"slots"`
	DatePosted  time.Time `json:"date_posted"`
	AdminID     int64     `json:"admin_id"`
}

type NewInternship struct {
	Title       string
	Company     string
	Description string
	Duration    string
	Slots       int
	AdminID     int64
}

type Application struct {
	ID           int64             `json:"id"`
	StudentID    int64             `json:"student_id"`
	InternshipID int64             `json:"internship_id"`
	CVFile       string            `json:"cv_file,omitempty"`
	CoverLetter  string            `json:"cover_letter"`
	Status       ApplicationStatus `json:"status"`
	AppliedAt    time.Time         `json:"applied_at"`
}

type NewApplication struct {
	StudentID    int64
	InternshipID int64
	CVFile       string
	CoverLetter  string
}

// StudentApplication is an application joined with the internship it targets,
// as returned to the applying student.
type StudentApplication struct {
	Application
	Title   string `json:"title"`
	Company string `json:"company"`
}

// AdminApplication adds the applicant detail for the admin review list.
type AdminApplication struct {
	StudentApplication
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
	Course       string `json:"course"`
	Year         int    `json:"year"`
}
