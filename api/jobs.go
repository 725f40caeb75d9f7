package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/hiredeck/hiredeck/pkg/models"
	"github.com/hiredeck/hiredeck/pkg/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type JobsHandler struct {
	jobRepo repository.JobRepo
}

func NewJobsHandler(jr repository.JobRepo) *JobsHandler {
	return &JobsHandler{jobRepo: jr}
}

// jobPayload is the set of caller-editable job fields. Anything else in
// the request body (postedBy, applicants, ...) is dropped on decode, so
// ownership and the applicant list are never attacker-controllable.
type jobPayload struct {
	Title       *string  `json:"title"`
	Company     *string  `json:"company"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
	Salary      *float64 `json:"salary"`
}

// applyTo copies the fields present in the payload onto the job.
func (p *jobPayload) applyTo(j *models.Job) {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Company != nil {
		j.Company = *p.Company
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Salary != nil {
		j.Salary = p.Salary
	}
}

func (h *JobsHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}
	if err := validateJobPayload(r.Context(), body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid job payload", err)
		return
	}

	var p jobPayload
	if err := json.Unmarshal(body, &p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}

	job := models.Job{PostedBy: uid, Applicants: []int64{}}
	p.applyTo(&job)

	if _, err := h.jobRepo.CreateJob(r.Context(), &job); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create job", err)
		return
	}

	writeJSON(w, job, http.StatusCreated)
}

type listJobsResponse struct {
	TotalJobs   int64        `json:"totalJobs"`
	CurrentPage int          `json:"currentPage"`
	TotalPages  int64        `json:"totalPages"`
	Jobs        []models.Job `json:"jobs"`
}

func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := defaultPage
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page = v
	}
	limit := defaultLimit
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 && v <= maxLimit {
		limit = v
	}

	filter := repository.JobFilter{
		Search:   q.Get("search"),
		Location: q.Get("location"),
	}
	var err error
	if filter.MinSalary, err = salaryBound(q.Get("minSalary")); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid minSalary", err)
		return
	}
	if filter.MaxSalary, err = salaryBound(q.Get("maxSalary")); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid maxSalary", err)
		return
	}

	ctx := r.Context()
	total, err := h.jobRepo.CountJobs(ctx, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch jobs", err)
		return
	}

	jobs, err := h.jobRepo.ListJobs(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch jobs", err)
		return
	}

	writeJSON(w, listJobsResponse{
		TotalJobs:   total,
		CurrentPage: page,
		TotalPages:  (total + int64(limit) - 1) / int64(limit),
		Jobs:        jobs,
	}, http.StatusOK)
}

func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	job, err := h.jobRepo.GetJobByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch job", err)
		return
	}
	if job == nil {
		writeError(w, http.StatusNotFound, "Job not found", nil)
		return
	}

	writeJSON(w, job, http.StatusOK)
}

func (h *JobsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	job, err := h.jobRepo.GetJobByID(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to apply for job", err)
		return
	}
	if job == nil {
		writeError(w, http.StatusNotFound, "Job not found", nil)
		return
	}

	if err := h.jobRepo.AddApplicant(ctx, id, uid); err != nil {
		if errors.Is(err, repository.ErrDuplicateApplicant) {
			writeError(w, http.StatusBadRequest, "You have already applied for this job", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to apply for job", err)
		return
	}

	writeJSON(w, map[string]string{"message": "Job application submitted successfully"}, http.StatusOK)
}

func (h *JobsHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	job, err := h.jobRepo.GetJobByID(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update job", err)
		return
	}
	if job == nil {
		writeError(w, http.StatusNotFound, "Job not found", nil)
		return
	}
	if job.PostedBy != uid {
		writeError(w, http.StatusForbidden, "You are not authorized to update this job", nil)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}
	if err := validateJobPayload(ctx, body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid job payload", err)
		return
	}

	var p jobPayload
	if err := json.Unmarshal(body, &p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}
	p.applyTo(job)

	if err := h.jobRepo.UpdateJob(ctx, job); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update job", err)
		return
	}

	writeJSON(w, job, http.StatusOK)
}

func (h *JobsHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	job, err := h.jobRepo.GetJobByID(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete job", err)
		return
	}
	if job == nil {
		writeError(w, http.StatusNotFound, "Job not found", nil)
		return
	}
	if job.PostedBy != uid {
		writeError(w, http.StatusForbidden, "You are not authorized to delete this job", nil)
		return
	}

	if err := h.jobRepo.DeleteJob(ctx, id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete job", err)
		return
	}

	writeJSON(w, map[string]string{"message": "Job deleted successfully"}, http.StatusOK)
}

func (h *JobsHandler) MyJobs(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	jobs, err := h.jobRepo.ListJobsByPoster(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch user jobs", err)
		return
	}

	writeJSON(w, jobs, http.StatusOK)
}

func (h *JobsHandler) Applicants(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	job, err := h.jobRepo.GetJobByID(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch applicants", err)
		return
	}
	if job == nil {
		writeError(w, http.StatusNotFound, "Job not found", nil)
		return
	}
	if job.PostedBy != uid {
		writeError(w, http.StatusForbidden, "You are not authorized to view applicants for this job", nil)
		return
	}

	applicants, err := h.jobRepo.ListApplicants(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch applicants", err)
		return
	}

	writeJSON(w, map[string]any{"applicants": applicants}, http.StatusOK)
}

// jobID parses the {id} path variable, writing a 400 on failure.
func jobID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid job id", err)
		return 0, false
	}

	return id, true
}

func salaryBound(v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}

	return &f, nil
}
