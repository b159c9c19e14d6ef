package submission_service

import (
	"context"

	"github.com/careerforge/judge/internal/service"
	"github.com/careerforge/judge/internal/service/execution_service"
)

// RunCode is the interactive try-it path: one execution against caller
// provided stdin, no authentication, no persistence and no verdict.
func (s *SubmissionService) RunCode(
	ctx context.Context,
	req execution_service.ExecutionRequest,
) (execution_service.ExecutionResult, error) {
	// validate
	if err := service.ValidateInput(req); err != nil {
		return execution_service.ExecutionResult{}, err
	}

	// an unknown language is a caller error, not an execution outcome
	if _, err := execution_service.ResolveLanguage(req.Language); err != nil {
		return execution_service.ExecutionResult{}, err
	}

	return s.Executor.Execute(ctx, req), nil
}
