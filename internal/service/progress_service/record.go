package progress_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/careerforge/judge/internal/database"
	"github.com/careerforge/judge/internal/judge_errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// RecordAccepted credits one accepted submission to the user's aggregate
// record, creating it lazily on first accept. Re-accepting the same
// problem credits again, deduplication is deliberately not done here.
func (p *ProgressService) RecordAccepted(
	ctx context.Context,
	userID uuid.UUID,
	difficulty string,
) (UserCodingProgress, error) {
	lock := p.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	now := p.Now().UTC()

	// load the current aggregate, an absent row is the zero baseline
	current, err := p.DB.GetUserCodingProgress(ctx, userID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		err = judge_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot fetch coding progress of user %s", userID),
		)
		return UserCodingProgress{}, err
	}

	current.SolvedCount += SolvedIncrement
	current.XP += XPIncrement
	switch difficulty {
	case DifficultyEasy:
		current.EasySolved++
	case DifficultyMedium:
		current.MediumSolved++
	case DifficultyHard:
		current.HardSolved++
	default:
		log.Warnf(
			"unknown difficulty %q while crediting user %s, per-difficulty counts unchanged",
			difficulty,
			userID,
		)
	}
	current.Streak = nextStreak(current.Streak, current.LastSolvedAt, now)
	current.LastSolvedAt = &now

	updated, err := p.DB.UpsertUserCodingProgress(ctx, database.UpsertUserCodingProgressParams{
		UserID:       userID,
		SolvedCount:  current.SolvedCount,
		EasySolved:   current.EasySolved,
		MediumSolved: current.MediumSolved,
		HardSolved:   current.HardSolved,
		XP:           current.XP,
		Streak:       current.Streak,
		LastSolvedAt: current.LastSolvedAt,
	})
	if err != nil {
		err = judge_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot upsert coding progress of user %s", userID),
		)
		return UserCodingProgress{}, err
	}

	log.Infof(
		"credited accepted submission to user %s, solved=%d xp=%d streak=%d",
		userID,
		updated.SolvedCount,
		updated.XP,
		updated.Streak,
	)
	return dbProgressToServiceProgress(updated), nil
}

// GetProgress returns the user's aggregate. A user who has never solved
// anything gets a zeroed record instead of a not-found error.
func (p *ProgressService) GetProgress(
	ctx context.Context,
	userID uuid.UUID,
) (UserCodingProgress, error) {
	row, err := p.DB.GetUserCodingProgress(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserCodingProgress{UserID: userID}, nil
		}
		err = judge_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot fetch coding progress of user %s", userID),
		)
		return UserCodingProgress{}, err
	}
	return dbProgressToServiceProgress(row), nil
}

// nextStreak applies the daily streak rule: a second solve on the same
// utc day keeps the streak, a solve on the next day extends it, any gap
// resets it to one.
func nextStreak(streak int, lastSolvedAt *time.Time, now time.Time) int {
	if lastSolvedAt == nil {
		return 1
	}

	last := lastSolvedAt.UTC()
	lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch today.Sub(lastDay) {
	case 0:
		if streak < 1 {
			return 1
		}
		return streak
	case 24 * time.Hour:
		return streak + 1
	default:
		return 1
	}
}
