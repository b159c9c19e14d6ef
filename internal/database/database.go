package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Queries is the hand written query layer over the connection pool. The
// services consume it through narrow interfaces so tests can swap fakes
// in without a database.
type Queries struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

// row types

type Problem struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description"`
	Difficulty     string    `json:"difficulty"`
	RuntimeLimitMs int       `json:"runtime_limit_ms"`
	MemoryLimitKb  int       `json:"memory_limit_kb"`
	CreatedAt      time.Time `json:"created_at"`
}

type TestCase struct {
	ID             uuid.UUID `json:"id"`
	ProblemID      uuid.UUID `json:"problem_id"`
	Input          string    `json:"input"`
	ExpectedOutput string    `json:"expected_output"`
	IsHidden       bool      `json:"is_hidden"`
	SortOrder      int       `json:"sort_order"`
}

type Submission struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	ProblemID   uuid.UUID `json:"problem_id"`
	Language    string    `json:"language"`
	SourceCode  string    `json:"source_code"`
	Verdict     string    `json:"verdict"`
	RuntimeMs   *int      `json:"runtime_ms,omitempty"`
	MemoryKb    *int      `json:"memory_kb,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
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
	UpdatedAt    time.Time  `json:"updated_at"`
}
