package progress_service_test

import (
	"context"
	"testing"
	"time"

	"github.com/careerforge/judge/internal/database"
	"github.com/careerforge/judge/internal/service/progress_service"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// fakeProgressStore keeps aggregates in a map, mirroring the upsert
// semantics of the real query layer.
type fakeProgressStore struct {
	rows    map[uuid.UUID]database.UserCodingProgress
	upserts int
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{rows: make(map[uuid.UUID]database.UserCodingProgress)}
}

func (f *fakeProgressStore) GetUserCodingProgress(_ context.Context, userID uuid.UUID) (database.UserCodingProgress, error) {
	row, ok := f.rows[userID]
	if !ok {
		return database.UserCodingProgress{}, pgx.ErrNoRows
	}
	return row, nil
}

func (f *fakeProgressStore) UpsertUserCodingProgress(_ context.Context, params database.UpsertUserCodingProgressParams) (database.UserCodingProgress, error) {
	f.upserts++
	row := database.UserCodingProgress{
		UserID:       params.UserID,
		SolvedCount:  params.SolvedCount,
		EasySolved:   params.EasySolved,
		MediumSolved: params.MediumSolved,
		HardSolved:   params.HardSolved,
		XP:           params.XP,
		Streak:       params.Streak,
		LastSolvedAt: params.LastSolvedAt,
		UpdatedAt:    time.Now().UTC(),
	}
	f.rows[params.UserID] = row
	return row, nil
}

func newTestService(store *fakeProgressStore, now *time.Time) *progress_service.ProgressService {
	svc := progress_service.New(store)
	svc.Now = func() time.Time { return *now }
	return svc
}

func TestRecordAcceptedCreatesLazily(t *testing.T) {
	store := newFakeProgressStore()
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestService(store, &now)
	userID := uuid.New()

	got, err := svc.RecordAccepted(context.Background(), userID, progress_service.DifficultyEasy)
	if err != nil {
		t.Fatalf("RecordAccepted failed: %v", err)
	}

	if got.SolvedCount != 1 {
		t.Errorf("solved = %d, want 1", got.SolvedCount)
	}
	if got.XP != progress_service.XPIncrement {
		t.Errorf("xp = %d, want %d", got.XP, progress_service.XPIncrement)
	}
	if got.Streak != 1 {
		t.Errorf("streak = %d, want 1", got.Streak)
	}
	if got.EasySolved != 1 {
		t.Errorf("easy solved = %d, want 1", got.EasySolved)
	}
	if got.LastSolvedAt == nil || !got.LastSolvedAt.Equal(now) {
		t.Errorf("last solved at = %v, want %v", got.LastSolvedAt, now)
	}
}

func TestRecordAcceptedIsAdditive(t *testing.T) {
	store := newFakeProgressStore()
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestService(store, &now)
	userID := uuid.New()

	var got progress_service.UserCodingProgress
	var err error
	for i := 0; i < 5; i++ {
		got, err = svc.RecordAccepted(context.Background(), userID, progress_service.DifficultyMedium)
		if err != nil {
			t.Fatalf("RecordAccepted %d failed: %v", i, err)
		}
	}

	if got.SolvedCount != 5 {
		t.Errorf("solved = %d, want 5, re-accepts are not deduplicated", got.SolvedCount)
	}
	if got.XP != 50 {
		t.Errorf("xp = %d, want 50", got.XP)
	}
	if got.MediumSolved != 5 {
		t.Errorf("medium solved = %d, want 5", got.MediumSolved)
	}
}

func TestRecordAcceptedStreaks(t *testing.T) {
	store := newFakeProgressStore()
	now := time.Date(2025, time.March, 10, 23, 50, 0, 0, time.UTC)
	svc := newTestService(store, &now)
	userID := uuid.New()

	mustRecord := func() progress_service.UserCodingProgress {
		t.Helper()
		got, err := svc.RecordAccepted(context.Background(), userID, progress_service.DifficultyHard)
		if err != nil {
			t.Fatalf("RecordAccepted failed: %v", err)
		}
		return got
	}

	if got := mustRecord(); got.Streak != 1 {
		t.Fatalf("first accept streak = %d, want 1", got.Streak)
	}

	// same utc day, streak holds
	now = now.Add(5 * time.Minute)
	if got := mustRecord(); got.Streak != 1 {
		t.Errorf("same day streak = %d, want 1", got.Streak)
	}

	// just past midnight, next utc day extends
	now = now.Add(10 * time.Minute)
	if got := mustRecord(); got.Streak != 2 {
		t.Errorf("next day streak = %d, want 2", got.Streak)
	}

	// another consecutive day
	now = now.Add(24 * time.Hour)
	if got := mustRecord(); got.Streak != 3 {
		t.Errorf("consecutive day streak = %d, want 3", got.Streak)
	}

	// a skipped day resets
	now = now.Add(48 * time.Hour)
	if got := mustRecord(); got.Streak != 1 {
		t.Errorf("streak after a gap = %d, want 1", got.Streak)
	}
}

func TestRecordAcceptedUnknownDifficulty(t *testing.T) {
	store := newFakeProgressStore()
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestService(store, &now)
	userID := uuid.New()

	got, err := svc.RecordAccepted(context.Background(), userID, "Legendary")
	if err != nil {
		t.Fatalf("RecordAccepted failed: %v", err)
	}

	if got.SolvedCount != 1 || got.XP != progress_service.XPIncrement {
		t.Error("base rewards missing for an unknown difficulty")
	}
	if got.EasySolved+got.MediumSolved+got.HardSolved != 0 {
		t.Error("an unknown difficulty moved a per-difficulty counter")
	}
}

func TestRecordAcceptedUsersAreIndependent(t *testing.T) {
	store := newFakeProgressStore()
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestService(store, &now)
	alice := uuid.New()
	bob := uuid.New()

	if _, err := svc.RecordAccepted(context.Background(), alice, progress_service.DifficultyEasy); err != nil {
		t.Fatalf("RecordAccepted failed: %v", err)
	}
	if _, err := svc.RecordAccepted(context.Background(), alice, progress_service.DifficultyEasy); err != nil {
		t.Fatalf("RecordAccepted failed: %v", err)
	}

	got, err := svc.RecordAccepted(context.Background(), bob, progress_service.DifficultyHard)
	if err != nil {
		t.Fatalf("RecordAccepted failed: %v", err)
	}
	if got.SolvedCount != 1 {
		t.Errorf("bob's solved = %d, want 1", got.SolvedCount)
	}
	if store.rows[alice].SolvedCount != 2 {
		t.Errorf("alice's solved = %d, want 2", store.rows[alice].SolvedCount)
	}
}

func TestGetProgressZeroRecordForNewUser(t *testing.T) {
	store := newFakeProgressStore()
	now := time.Now().UTC()
	svc := newTestService(store, &now)
	userID := uuid.New()

	got, err := svc.GetProgress(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}

	if got.UserID != userID {
		t.Errorf("user id = %v, want %v", got.UserID, userID)
	}
	if got.SolvedCount != 0 || got.XP != 0 || got.Streak != 0 {
		t.Error("a user with no solves should get a zeroed record")
	}
	if store.upserts != 0 {
		t.Error("a plain read created a row")
	}
}

func TestGetProgressReturnsStoredAggregate(t *testing.T) {
	store := newFakeProgressStore()
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestService(store, &now)
	userID := uuid.New()

	if _, err := svc.RecordAccepted(context.Background(), userID, progress_service.DifficultyEasy); err != nil {
		t.Fatalf("RecordAccepted failed: %v", err)
	}

	got, err := svc.GetProgress(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if got.SolvedCount != 1 || got.XP != progress_service.XPIncrement {
		t.Errorf("stored aggregate not returned, got %+v", got)
	}
}
