package progress_service

import (
	"context"
	"sync"
	"time"

	"github.com/careerforge/judge/internal/database"
	"github.com/careerforge/judge/internal/judge_errors"
	"github.com/google/uuid"
)

const (
	// fixed rewards per accepted submission
	SolvedIncrement = 1
	XPIncrement     = 10
)

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

var (
	msgForeignKey = map[string]string{
		"fk_user_coding_progress_user": "no user exists with the given id",
	}

	errMsgs = map[string]map[string]string{
		judge_errors.CodeForeignKeyConstraint: msgForeignKey,
	}
)

// ProgressStore is the slice of the query layer the progress service
// needs. *database.Queries satisfies it.
type ProgressStore interface {
	GetUserCodingProgress(ctx context.Context, userID uuid.UUID) (database.UserCodingProgress, error)
	UpsertUserCodingProgress(ctx context.Context, params database.UpsertUserCodingProgressParams) (database.UserCodingProgress, error)
}

// ProgressService owns the per-user coding aggregate. It is the only
// writer of that record and only ever runs on accepted verdicts.
type ProgressService struct {
	DB ProgressStore

	// Now is swappable so streak transitions can be tested
	Now func() time.Time

	mu        sync.Mutex
	userLocks map[uuid.UUID]*sync.Mutex
}

func New(db ProgressStore) *ProgressService {
	return &ProgressService{
		DB:        db,
		Now:       time.Now,
		userLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

type UserCodingProgress struct {
	UserID       uuid.UUID  `json:"user_id"`
	SolvedCount  int        `json:"solved_count"`
	EasySolved   int        `json:"easy_solved"`
	MediumSolved int        `json:"medium_solved"`
	HardSolved   int        `json:"hard_solved"`
	XP           int        `json:"xp"`
	Streak       int        `json:"streak"`
	LastSolvedAt *time.Time `json:"last_solved_at,omitempty"`
}

// userLock serializes the read-modify-write per user so concurrent
// accepts never lose an update. contention is per user, not global.
func (p *ProgressService) userLock(userID uuid.UUID) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()

	lock, ok := p.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		p.userLocks[userID] = lock
	}
	return lock
}

func dbProgressToServiceProgress(row database.UserCodingProgress) UserCodingProgress {
	return UserCodingProgress{
		UserID:       row.UserID,
		SolvedCount:  row.SolvedCount,
		EasySolved:   row.EasySolved,
		MediumSolved: row.MediumSolved,
		HardSolved:   row.HardSolved,
		XP:           row.XP,
		Streak:       row.Streak,
		LastSolvedAt: row.LastSolvedAt,
	}
}
