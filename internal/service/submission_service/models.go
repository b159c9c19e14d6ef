package submission_service

import (
	"context"
	"time"

	"github.com/careerforge/judge/internal/database"
	"github.com/careerforge/judge/internal/judge_errors"
	"github.com/careerforge/judge/internal/service/execution_service"
	"github.com/careerforge/judge/internal/service/progress_service"
	"github.com/google/uuid"
)

// Verdict is the terminal classification of one graded submission.
type Verdict string

const (
	VerdictAccepted          Verdict = "Accepted"
	VerdictWrongAnswer       Verdict = "WrongAnswer"
	VerdictCompileError      Verdict = "CompileError"
	VerdictRuntimeError      Verdict = "RuntimeError"
	VerdictTimeLimitExceeded Verdict = "TimeLimitExceeded"
	// SystemError marks a failure of the judge or its backend, not of
	// the user's code
	VerdictSystemError Verdict = "SystemError"
)

// history responses cap at this many rows per request
const maxHistoryRows = 50

var (
	msgForeignKey = map[string]string{
		"fk_submissions_user":    "no user exists with the given id",
		"fk_submissions_problem": "no problem exists with the given id",
	}

	errMsgs = map[string]map[string]string{
		judge_errors.CodeForeignKeyConstraint: msgForeignKey,
	}
)

// Executor runs untrusted code and always comes back with a normalized
// result. Satisfied by *execution_service.ExecutionService.
type Executor interface {
	Execute(ctx context.Context, req execution_service.ExecutionRequest) execution_service.ExecutionResult
}

// ProblemStore and SubmissionStore are the slices of the query layer
// this service touches. *database.Queries satisfies both.
type ProblemStore interface {
	GetProblemByID(ctx context.Context, id uuid.UUID) (database.Problem, error)
	GetTestCasesByProblemID(ctx context.Context, problemID uuid.UUID) ([]database.TestCase, error)
}

type SubmissionStore interface {
	InsertSubmission(ctx context.Context, params database.InsertSubmissionParams) (database.Submission, error)
	GetSubmissionsByUser(ctx context.Context, params database.GetSubmissionsByUserParams) ([]database.Submission, error)
}

// ProgressRecorder credits accepted submissions. Satisfied by
// *progress_service.ProgressService.
type ProgressRecorder interface {
	RecordAccepted(ctx context.Context, userID uuid.UUID, difficulty string) (progress_service.UserCodingProgress, error)
}

type SubmissionService struct {
	DB              SubmissionStore
	ProblemStore    ProblemStore
	Executor        Executor
	ProgressService ProgressRecorder
}

type SubmissionRequest struct {
	ProblemID  uuid.UUID `json:"problem_id" validate:"required"`
	Language   string    `json:"language" validate:"required"`
	SourceCode string    `json:"source_code" validate:"required"`
}

type Submission struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	ProblemID   uuid.UUID `json:"problem_id"`
	Language    string    `json:"language"`
	SourceCode  string    `json:"source_code"`
	Verdict     Verdict   `json:"verdict"`
	RuntimeMs   *int      `json:"runtime_ms,omitempty"`
	MemoryKb    *int      `json:"memory_kb,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SubmitResult pairs the persisted record with the raw execution result
// so the caller can show detailed output next to the verdict.
type SubmitResult struct {
	Submission Submission                        `json:"submission"`
	Result     execution_service.ExecutionResult `json:"result"`
}

func dbSubmissionToServiceSubmission(row database.Submission) Submission {
	return Submission{
		ID:          row.ID,
		UserID:      row.UserID,
		ProblemID:   row.ProblemID,
		Language:    row.Language,
		SourceCode:  row.SourceCode,
		Verdict:     Verdict(row.Verdict),
		RuntimeMs:   row.RuntimeMs,
		MemoryKb:    row.MemoryKb,
		SubmittedAt: row.SubmittedAt,
	}
}
