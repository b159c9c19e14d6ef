package main

import (
	"github.com/careerforge/judge/middleware"
	"github.com/go-chi/chi/v5"
)

func NewV1Router() *chi.Mux {
	v1 := chi.NewRouter()

	// configure all endpoints
	v1.Get("/healthz", apiConfig.HandlerReadiness)

	// code layer
	// interactive run, open to anonymous callers but rate limited
	v1.Post("/code/execute", middleware.RateLimited(rateLimiter, apiConfig.HandlerExecuteCode))
	// graded submission, authenticated and rate limited
	v1.Post("/code/submit", middleware.RateLimited(rateLimiter, middleware.JWTMiddleware(apiConfig.HandlerSubmit)))
	// submission history
	v1.Get("/code/submissions", middleware.JWTMiddleware(apiConfig.HandlerGetSubmissions))
	// aggregate coding progress
	v1.Get("/code/progress", middleware.JWTMiddleware(apiConfig.HandlerGetProgress))

	return v1
}
