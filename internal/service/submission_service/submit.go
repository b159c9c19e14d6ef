package submission_service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/careerforge/judge/internal/database"
	"github.com/careerforge/judge/internal/judge_errors"
	"github.com/careerforge/judge/internal/service"
	"github.com/careerforge/judge/internal/service/execution_service"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Submit grades one submission end to end: load the problem and its
// test cases, run the candidate against each case through the execution
// backend, classify the verdict and persist an append-only record.
// Resubmitting never mutates an earlier attempt.
func (s *SubmissionService) Submit(
	ctx context.Context,
	req SubmissionRequest,
) (SubmitResult, error) {
	// get user from claims
	claims, err := service.GetClaimsFromContext(ctx)
	if err != nil {
		return SubmitResult{}, err
	}

	// validate
	if err := service.ValidateInput(req); err != nil {
		return SubmitResult{}, err
	}

	// reject an unsupported language before any backend cost
	if _, err := execution_service.ResolveLanguage(req.Language); err != nil {
		return SubmitResult{}, err
	}

	// get the problem
	problem, err := s.ProblemStore.GetProblemByID(ctx, req.ProblemID)
	if err != nil {
		err = judge_errors.HandleDBErrors(
			err,
			nil,
			fmt.Sprintf("cannot fetch problem with id %v", req.ProblemID),
		)
		return SubmitResult{}, err
	}

	// load every test case, hidden ones included
	testCases, err := s.ProblemStore.GetTestCasesByProblemID(ctx, problem.ID)
	if err != nil {
		err = judge_errors.HandleDBErrors(
			err,
			nil,
			fmt.Sprintf("cannot fetch test cases of problem %v", problem.ID),
		)
		return SubmitResult{}, err
	}
	if len(testCases) == 0 {
		err = fmt.Errorf(
			"%w, problem %v has no test cases and cannot be graded",
			judge_errors.ErrInternal,
			problem.ID,
		)
		log.Error(err)
		return SubmitResult{}, err
	}

	verdict, lastResult := s.gradeTestCases(ctx, req, testCases)

	// persist the attempt with the worst observed cost
	row, err := s.DB.InsertSubmission(ctx, database.InsertSubmissionParams{
		ID:          uuid.New(),
		UserID:      claims.UserID,
		ProblemID:   problem.ID,
		Language:    req.Language,
		SourceCode:  req.SourceCode,
		Verdict:     string(verdict),
		RuntimeMs:   lastResult.TimeMs,
		MemoryKb:    lastResult.MemoryKB,
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		err = judge_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf(
				"cannot insert submission of user %s to problem %v",
				claims.UserName,
				problem.ID,
			),
		)
		return SubmitResult{}, err
	}

	if verdict == VerdictAccepted {
		// the submission row is already durable, a progress hiccup is
		// logged and repaired out of band rather than failing the call
		if _, err := s.ProgressService.RecordAccepted(ctx, claims.UserID, problem.Difficulty); err != nil {
			log.Errorf(
				"failed to credit accepted submission %v of user %s, %v",
				row.ID,
				claims.UserName,
				err,
			)
		}
	}

	log.Infof(
		"submission %v of user %s to problem %v graded as %s",
		row.ID,
		claims.UserName,
		problem.ID,
		verdict,
	)
	return SubmitResult{
		Submission: dbSubmissionToServiceSubmission(row),
		Result:     lastResult,
	}, nil
}

// gradeTestCases runs the candidate against the cases in authoring
// order and stops at the first case that fails. The returned result is
// the one that decided the verdict.
func (s *SubmissionService) gradeTestCases(
	ctx context.Context,
	req SubmissionRequest,
	testCases []database.TestCase,
) (Verdict, execution_service.ExecutionResult) {
	var lastResult execution_service.ExecutionResult

	for _, tc := range testCases {
		result := s.Executor.Execute(ctx, execution_service.ExecutionRequest{
			SourceCode: req.SourceCode,
			Language:   req.Language,
			Stdin:      tc.Input,
		})

		// keep the worst observed cost across cases
		lastResult = mergeWorstCost(lastResult, result)

		if result.Kind != execution_service.ResultOK {
			return verdictFromKind(result.Kind), lastResult
		}

		// exact comparison after trimming, test outputs are authored
		// as canonical strings
		if strings.TrimSpace(result.Output) != strings.TrimSpace(tc.ExpectedOutput) {
			return VerdictWrongAnswer, lastResult
		}
	}

	return VerdictAccepted, lastResult
}

func verdictFromKind(kind execution_service.ResultKind) Verdict {
	switch kind {
	case execution_service.ResultCompileError:
		return VerdictCompileError
	case execution_service.ResultTimeLimit:
		return VerdictTimeLimitExceeded
	case execution_service.ResultRuntimeError:
		return VerdictRuntimeError
	default:
		return VerdictSystemError
	}
}

// mergeWorstCost carries the latest result forward, keeping the highest
// runtime and memory seen so far. Unknown measurements stay unknown.
func mergeWorstCost(
	prev execution_service.ExecutionResult,
	next execution_service.ExecutionResult,
) execution_service.ExecutionResult {
	if prev.TimeMs != nil && (next.TimeMs == nil || *prev.TimeMs > *next.TimeMs) {
		next.TimeMs = prev.TimeMs
	}
	if prev.MemoryKB != nil && (next.MemoryKB == nil || *prev.MemoryKB > *next.MemoryKB) {
		next.MemoryKB = prev.MemoryKB
	}
	return next
}
