package database

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const getUserCodingProgress = `
SELECT user_id, solved_count, easy_solved, medium_solved, hard_solved, xp, streak, last_solved_at, updated_at
FROM user_coding_progress
WHERE user_id = $1
`

func (q *Queries) GetUserCodingProgress(ctx context.Context, userID uuid.UUID) (UserCodingProgress, error) {
	var p UserCodingProgress
	err := q.pool.QueryRow(ctx, getUserCodingProgress, userID).Scan(
		&p.UserID,
		&p.SolvedCount,
		&p.EasySolved,
		&p.MediumSolved,
		&p.HardSolved,
		&p.XP,
		&p.Streak,
		&p.LastSolvedAt,
		&p.UpdatedAt,
	)
	return p, err
}

type UpsertUserCodingProgressParams struct {
	UserID       uuid.UUID
	SolvedCount  int
	EasySolved   int
	MediumSolved int
	HardSolved   int
	XP           int
	Streak       int
	LastSolvedAt *time.Time
}

const upsertUserCodingProgress = `
INSERT INTO user_coding_progress (user_id, solved_count, easy_solved, medium_solved, hard_solved, xp, streak, last_solved_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
ON CONFLICT (user_id) DO UPDATE SET
	solved_count = EXCLUDED.solved_count,
	easy_solved = EXCLUDED.easy_solved,
	medium_solved = EXCLUDED.medium_solved,
	hard_solved = EXCLUDED.hard_solved,
	xp = EXCLUDED.xp,
	streak = EXCLUDED.streak,
	last_solved_at = EXCLUDED.last_solved_at,
	updated_at = now()
RETURNING user_id, solved_count, easy_solved, medium_solved, hard_solved, xp, streak, last_solved_at, updated_at
`

// UpsertUserCodingProgress writes the whole aggregate row, creating it
// lazily on the user's first accepted submission. The progress service
// serializes same-user calls, so the read-modify-write stays safe.
func (q *Queries) UpsertUserCodingProgress(ctx context.Context, params UpsertUserCodingProgressParams) (UserCodingProgress, error) {
	var p UserCodingProgress
	err := q.pool.QueryRow(
		ctx,
		upsertUserCodingProgress,
		params.UserID,
		params.SolvedCount,
		params.EasySolved,
		params.MediumSolved,
		params.HardSolved,
		params.XP,
		params.Streak,
		params.LastSolvedAt,
	).Scan(
		&p.UserID,
		&p.SolvedCount,
		&p.EasySolved,
		&p.MediumSolved,
		&p.HardSolved,
		&p.XP,
		&p.Streak,
		&p.LastSolvedAt,
		&p.UpdatedAt,
	)
	return p, err
}
