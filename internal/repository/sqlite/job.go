package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hiredeck/hiredeck/pkg/models"
	"github.com/hiredeck/hiredeck/pkg/repository"
)

const jobColumns = `id, title, company, description, location, salary, posted_by, created, updated`

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if j == nil {
		return 0, fmt.Errorf("job is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO jobs (title, company, description, location, salary, posted_by, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		j.Title, j.Company, j.Description, j.Location, salaryArg(j.Salary), j.PostedBy, ts, ts)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	j.ID = id
	j.Created = ts
	j.Updated = ts

	return id, nil
}

func (r *SQLiteRepo) GetJobByID(ctx context.Context, id int64) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row)
	if err != nil || j == nil {
		return j, err
	}

	if j.Applicants, err = r.applicantIDs(ctx, j.ID); err != nil {
		return nil, err
	}

	return j, nil
}

// filterClause builds the WHERE fragment shared by ListJobs and CountJobs.
// Rows without a salary are excluded whenever a salary bound is present.
func filterClause(f repository.JobFilter) (string, []any) {
	conds := []string{}
	args := []any{}

	if f.Search != "" {
		conds = append(conds, `instr(lower(title), lower(?)) > 0`)
		args = append(args, f.Search)
	}
	if f.Location != "" {
		conds = append(conds, `location = ?`)
		args = append(args, f.Location)
	}
	if f.MinSalary != nil {
		conds = append(conds, `salary IS NOT NULL AND salary >= ?`)
		args = append(args, *f.MinSalary)
	}
	if f.MaxSalary != nil {
		conds = append(conds, `salary IS NOT NULL AND salary <= ?`)
		args = append(args, *f.MaxSalary)
	}

	if len(conds) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *SQLiteRepo) ListJobs(ctx context.Context, f repository.JobFilter, limit, offset int) ([]models.Job, error) {
	where, args := filterClause(f)
	q := `SELECT ` + jobColumns + ` FROM jobs` + where + ` ORDER BY id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	return r.queryJobs(ctx, q, args...)
}

func (r *SQLiteRepo) CountJobs(ctx context.Context, f repository.JobFilter) (int64, error) {
	where, args := filterClause(f)
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM jobs`+where, args...)

	var total int64
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}

	return total, nil
}

func (r *SQLiteRepo) ListJobsByPoster(ctx context.Context, posterID int64) ([]models.Job, error) {
	return r.queryJobs(ctx, `SELECT `+jobColumns+` FROM jobs WHERE posted_by = ? ORDER BY id`, posterID)
}

// UpdateJob rewrites the editable columns of the job row. posted_by and
// the applicants table are untouched by this path.
func (r *SQLiteRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	ts := now()
	_, err := r.conn.Exec(ctx, `UPDATE jobs SET title = ?, company = ?, description = ?, location = ?, salary = ?, updated = ? WHERE id = ?`,
		j.Title, j.Company, j.Description, j.Location, salaryArg(j.Salary), ts, j.ID)
	if err != nil {
		return err
	}
	j.Updated = ts

	return nil
}

// DeleteJob removes the job and its applicant rows in one transaction.
func (r *SQLiteRepo) DeleteJob(ctx context.Context, id int64) error {
	tx, err := r.conn.GetConn().BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM job_applicants WHERE job_id = ?`, id); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// AddApplicant records the application. The composite primary key makes
// the insert atomic under concurrent applies; a second application from
// the same user affects no rows and maps to ErrDuplicateApplicant.
func (r *SQLiteRepo) AddApplicant(ctx context.Context, jobID, userID int64) error {
	res, err := r.conn.Exec(ctx, `INSERT OR IGNORE INTO job_applicants (job_id, user_id, applied) VALUES (?, ?, ?)`, jobID, userID, now())
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrDuplicateApplicant
	}

	return nil
}

func (r *SQLiteRepo) ListApplicants(ctx context.Context, jobID int64) ([]models.Applicant, error) {
	rows, err := r.conn.Query(ctx, `SELECT u.name, u.email FROM job_applicants ja JOIN users u ON u.id = ja.user_id WHERE ja.job_id = ? ORDER BY ja.applied, ja.rowid`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	defer rows.Close()

	applicants := []models.Applicant{}
	for rows.Next() {
		var a models.Applicant
		if err := rows.Scan(&a.Name, &a.Email); err != nil {
			return nil, err
		}
		applicants = append(applicants, a)
	}

	return applicants, rows.Err()
}

func (r *SQLiteRepo) applicantIDs(ctx context.Context, jobID int64) ([]int64, error) {
	rows, err := r.conn.Query(ctx, `SELECT user_id FROM job_applicants WHERE job_id = ? ORDER BY applied, rowid`, jobID)
	if err != nil {
		return nil, fmt.Errorf("load applicant ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *SQLiteRepo) queryJobs(ctx context.Context, q string, args ...any) ([]models.Job, error) {
	rows, err := r.conn.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		j, err := scanJobRows(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range jobs {
		if jobs[i].Applicants, err = r.applicantIDs(ctx, jobs[i].ID); err != nil {
			return nil, err
		}
	}

	return jobs, nil
}

func scanJob(row *sql.Row) (*models.Job, error) {
	var j models.Job
	var salary sql.NullFloat64
	if err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Description, &j.Location, &salary, &j.PostedBy, &j.Created, &j.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	if salary.Valid {
		j.Salary = &salary.Float64
	}

	return &j, nil
}

func scanJobRows(rows *sql.Rows) (*models.Job, error) {
	var j models.Job
	var salary sql.NullFloat64
	if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Description, &j.Location, &salary, &j.PostedBy, &j.Created, &j.Updated); err != nil {
		return nil, err
	}
	if salary.Valid {
		j.Salary = &salary.Float64
	}

	return &j, nil
}

func salaryArg(s *float64) any {
	if s == nil {
		return nil
	}
	return *s
}
