package repository

import (
	"context"
	"errors"

	"github.com/hiredeck/hiredeck/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Lookup methods return (nil, nil) when the row does not exist.

// ErrDuplicateApplicant is returned by AddApplicant when the user has
// already applied to the job.
var ErrDuplicateApplicant = errors.New("user already applied to job")

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// JobFilter narrows ListJobs/CountJobs. Zero-valued fields are inactive.
// When either salary bound is set, rows without a salary are excluded.
type JobFilter struct {
	Search    string
	Location  string
	MinSalary *float64
	MaxSalary *float64
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) (int64, error)
	GetJobByID(ctx context.Context, id int64) (*models.Job, error)
	ListJobs(ctx context.Context, f JobFilter, limit, offset int) ([]models.Job, error)
	CountJobs(ctx context.Context, f JobFilter) (int64, error)
	ListJobsByPoster(ctx context.Context, posterID int64) ([]models.Job, error)
	UpdateJob(ctx context.Context, j *models.Job) error
	DeleteJob(ctx context.Context, id int64) error
	AddApplicant(ctx context.Context, jobID, userID int64) error
	ListApplicants(ctx context.Context, jobID int64) ([]models.Applicant, error)
}
