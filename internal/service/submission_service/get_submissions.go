package submission_service

import (
	"context"
	"fmt"

	"github.com/careerforge/judge/internal/database"
	"github.com/careerforge/judge/internal/judge_errors"
	"github.com/careerforge/judge/internal/service"
	"github.com/google/uuid"
)

// GetSubmissions returns the caller's grading history, newest first,
// optionally narrowed to one problem.
func (s *SubmissionService) GetSubmissions(
	ctx context.Context,
	problemID *uuid.UUID,
) ([]Submission, error) {
	// get user from claims
	claims, err := service.GetClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.GetSubmissionsByUser(ctx, database.GetSubmissionsByUserParams{
		UserID:    claims.UserID,
		ProblemID: problemID,
		Limit:     maxHistoryRows,
	})
	if err != nil {
		err = judge_errors.HandleDBErrors(
			err,
			nil,
			fmt.Sprintf("cannot fetch submissions of user %s", claims.UserName),
		)
		return nil, err
	}

	submissions := make([]Submission, 0, len(rows))
	for _, row := range rows {
		submissions = append(submissions, dbSubmissionToServiceSubmission(row))
	}
	return submissions, nil
}
