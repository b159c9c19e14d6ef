package database

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type InsertSubmissionParams struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ProblemID   uuid.UUID
	Language    string
	SourceCode  string
	Verdict     string
	RuntimeMs   *int
	MemoryKb    *int
	SubmittedAt time.Time
}

const insertSubmission = `
INSERT INTO submissions (id, user_id, problem_id, language, source_code, verdict, runtime_ms, memory_kb, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, user_id, problem_id, language, source_code, verdict, runtime_ms, memory_kb, submitted_at
`

// InsertSubmission appends one grading attempt. Submissions are never
// updated, a resubmission inserts a new row.
func (q *Queries) InsertSubmission(ctx context.Context, params InsertSubmissionParams) (Submission, error) {
	var s Submission
	err := q.pool.QueryRow(
		ctx,
		insertSubmission,
		params.ID,
		params.UserID,
		params.ProblemID,
		params.Language,
		params.SourceCode,
		params.Verdict,
		params.RuntimeMs,
		params.MemoryKb,
		params.SubmittedAt,
	).Scan(
		&s.ID,
		&s.UserID,
		&s.ProblemID,
		&s.Language,
		&s.SourceCode,
		&s.Verdict,
		&s.RuntimeMs,
		&s.MemoryKb,
		&s.SubmittedAt,
	)
	return s, err
}

const getSubmissionsByUser = `
SELECT id, user_id, problem_id, language, source_code, verdict, runtime_ms, memory_kb, submitted_at
FROM submissions
WHERE user_id = $1 AND ($2::uuid IS NULL OR problem_id = $2)
ORDER BY submitted_at DESC
LIMIT $3
`

type GetSubmissionsByUserParams struct {
	UserID    uuid.UUID
	ProblemID *uuid.UUID
	Limit     int
}

func (q *Queries) GetSubmissionsByUser(ctx context.Context, params GetSubmissionsByUserParams) ([]Submission, error) {
	rows, err := q.pool.Query(
		ctx,
		getSubmissionsByUser,
		params.UserID,
		params.ProblemID,
		params.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []Submission
	for rows.Next() {
		var s Submission
		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.ProblemID,
			&s.Language,
			&s.SourceCode,
			&s.Verdict,
			&s.RuntimeMs,
			&s.MemoryKb,
			&s.SubmittedAt,
		); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}
