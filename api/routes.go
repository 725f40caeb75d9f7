package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hiredeck/hiredeck/internal/config"
	"github.com/hiredeck/hiredeck/internal/db"
	"github.com/hiredeck/hiredeck/internal/repository/sqlite"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)
	if cfg.RateLimit.RPS > 0 {
		r.Use(RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	// Repository
	repo := sqlite.New(db, nil)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	jobsHandler := NewJobsHandler(repo)

	auth := JWTAuthMiddlewareWithSecret(cfg.JWTSecret)
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/signin", authHandler.Signin).Methods("POST")
	r.Handle("/api/auth/signout", protected(authHandler.Signout)).Methods("POST")

	// Job endpoints. The literal /my-jobs route is registered before the
	// {id} routes, and {id} only matches digits, so a parameterized route
	// can never shadow it.
	r.Handle("/api/jobs", protected(jobsHandler.CreateJob)).Methods("POST")
	r.HandleFunc("/api/jobs", jobsHandler.ListJobs).Methods("GET")
	r.Handle("/api/jobs/my-jobs", protected(jobsHandler.MyJobs)).Methods("GET")
	r.HandleFunc("/api/jobs/{id:[0-9]+}", jobsHandler.GetJob).Methods("GET")
	r.Handle("/api/jobs/{id:[0-9]+}", protected(jobsHandler.UpdateJob)).Methods("PATCH")
	r.Handle("/api/jobs/{id:[0-9]+}", protected(jobsHandler.DeleteJob)).Methods("DELETE")
	r.Handle("/api/jobs/{id:[0-9]+}/apply", protected(jobsHandler.Apply)).Methods("POST")
	r.Handle("/api/jobs/{id:[0-9]+}/applicants", protected(jobsHandler.Applicants)).Methods("GET")

	return r
}
