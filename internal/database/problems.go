package database

import (
	"context"

	"github.com/google/uuid"
)

const getProblemByID = `
SELECT id, title, slug, description, difficulty, runtime_limit_ms, memory_limit_kb, created_at
FROM problems
WHERE id = $1
`

func (q *Queries) GetProblemByID(ctx context.Context, id uuid.UUID) (Problem, error) {
	var p Problem
	err := q.pool.QueryRow(ctx, getProblemByID, id).Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Description,
		&p.Difficulty,
		&p.RuntimeLimitMs,
		&p.MemoryLimitKb,
		&p.CreatedAt,
	)
	return p, err
}

const getTestCasesByProblemID = `
SELECT id, problem_id, input, expected_output, is_hidden, sort_order
FROM test_cases
WHERE problem_id = $1
ORDER BY sort_order
`

// GetTestCasesByProblemID returns every case of the problem, hidden ones
// included, in authoring order. Hidden cases are eligible for grading,
// they are only withheld from user facing views.
func (q *Queries) GetTestCasesByProblemID(ctx context.Context, problemID uuid.UUID) ([]TestCase, error) {
	rows, err := q.pool.Query(ctx, getTestCasesByProblemID, problemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []TestCase
	for rows.Next() {
		var tc TestCase
		if err := rows.Scan(
			&tc.ID,
			&tc.ProblemID,
			&tc.Input,
			&tc.ExpectedOutput,
			&tc.IsHidden,
			&tc.SortOrder,
		); err != nil {
			return nil, err
		}
		cases = append(cases, tc)
	}
	return cases, rows.Err()
}
