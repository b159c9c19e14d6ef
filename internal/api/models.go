package api

import (
	"github.com/careerforge/judge/internal/service/progress_service"
	"github.com/careerforge/judge/internal/service/submission_service"
)

type Api struct {
	SubmissionServiceConfig *submission_service.SubmissionService
	ProgressServiceConfig   *progress_service.ProgressService
}
