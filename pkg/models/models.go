package models

// Account roles. New accounts default to RoleJobseeker.
const (
	RoleAdmin     = "admin"
	RoleCompany   = "company"
	RoleJobseeker = "jobseeker"
)

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCompany, RoleJobseeker:
		return true
	}
	return false
}

type User struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	Role         string `json:"role" db:"role"`
	Created      int64  `json:"created" db:"created"`
	PasswordHash string `json:"-" db:"password_hash"`
}

// Job is a job posting. PostedBy is set once at creation from the
// authenticated caller, never from request input. Applicants holds user
// ids in application order with no duplicates.
type Job struct {
	ID          int64    `json:"id" db:"id"`
	Title       string   `json:"title" db:"title"`
	Company     string   `json:"company" db:"company"`
	Description string   `json:"description" db:"description"`
	Location    string   `json:"location" db:"location"`
	Salary      *float64 `json:"salary,omitempty" db:"salary"`
	PostedBy    int64    `json:"postedBy" db:"posted_by"`
	Applicants  []int64  `json:"applicants"`
	Created     int64    `json:"created" db:"created"`
	Updated     int64    `json:"updated" db:"updated"`
}

// Applicant is the projection of a user exposed to a job's poster.
// Nothing beyond name and email leaves the store through this type.
type Applicant struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
