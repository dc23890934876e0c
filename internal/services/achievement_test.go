package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/repos"
	"github.com/repotutor/repotutor-backend/internal/types"
)

func newAchievementFixture(t *testing.T) (AchievementService, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	svc := NewAchievementService(
		db,
		log,
		repos.NewAchievementRepo(db, log),
		repos.NewProgressRepo(db, log),
		repos.NewCourseRepo(db, log),
	)
	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return svc, db
}

func insertProgress(t *testing.T, db *gorm.DB, userID uuid.UUID, completedSteps string) {
	t.Helper()
	progress := &types.UserProgress{
		ID:             uuid.New(),
		UserID:         userID,
		CourseID:       uuid.New(),
		CompletedSteps: datatypes.JSON([]byte(completedSteps)),
	}
	if err := db.Create(progress).Error; err != nil {
		t.Fatalf("insert progress: %v", err)
	}
}

func awardedCodes(awarded []*types.Achievement) map[string]bool {
	codes := make(map[string]bool, len(awarded))
	for _, a := range awarded {
		codes[a.Code] = true
	}
	return codes
}

func TestCheckAndAwardFirstSteps(t *testing.T) {
	svc, db := newAchievementFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	insertProgress(t, db, userID, `[1]`)
	awarded, err := svc.CheckAndAward(ctx, userID)
	if err != nil {
		t.Fatalf("CheckAndAward: %v", err)
	}
	if !awardedCodes(awarded)[achievementFirstSteps] {
		t.Fatalf("first_steps not awarded: %v", awarded)
	}

	// Awarding is idempotent.
	again, err := svc.CheckAndAward(ctx, userID)
	if err != nil {
		t.Fatalf("CheckAndAward again: %v", err)
	}
	if awardedCodes(again)[achievementFirstSteps] {
		t.Fatal("first_steps awarded twice")
	}
}

func TestCheckAndAwardIgnoresEmptyProgressPayloads(t *testing.T) {
	svc, db := newAchievementFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	// Byte length alone must not count as a completed step: padded
	// empty arrays and null are all "nothing completed".
	insertProgress(t, db, userID, ` [ ] `)
	insertProgress(t, db, userID, `null`)
	insertProgress(t, db, userID, `[]`)

	awarded, err := svc.CheckAndAward(ctx, userID)
	if err != nil {
		t.Fatalf("CheckAndAward: %v", err)
	}
	if awardedCodes(awarded)[achievementFirstSteps] {
		t.Fatal("first_steps awarded with no completed steps")
	}
}

func TestCheckAndAwardWhitespacePaddedStepCounts(t *testing.T) {
	svc, db := newAchievementFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	insertProgress(t, db, userID, " [1, 2] ")
	awarded, err := svc.CheckAndAward(ctx, userID)
	if err != nil {
		t.Fatalf("CheckAndAward: %v", err)
	}
	if !awardedCodes(awarded)[achievementFirstSteps] {
		t.Fatalf("padded step array should award first_steps: %v", awarded)
	}
}
