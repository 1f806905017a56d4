package repository

import (
	"context"
	"testing"
	"time"

	"bookhub/internal/database"
	"bookhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{},
	)
	require.NoError(t, err)

	// One connection keeps the in-memory database alive across queries.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func activeEntry(priority int, createdAt time.Time) *domain.WaitingListEntry {
	return &domain.WaitingListEntry{
		TenantID:   1,
		ResourceID: 2,
		UserID:     10,
		Date:       time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		EndTime:    "12:00",
		Priority:   priority,
		Status:     domain.WaitingActive,
		CreatedAt:  createdAt,
	}
}

func TestFindActiveForSlot_HighestPriorityWins(t *testing.T) {
	repo := NewWaitingListRepository(newTestDB(t))
	ctx := context.Background()

	// The low-priority entry joined first; priority still beats age.
	low := activeEntry(5, time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC))
	high := activeEntry(10, time.Date(2025, 11, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, low))
	require.NoError(t, repo.Create(ctx, high))

	got, err := repo.FindActiveForSlot(ctx, 2, low.Date, "10:00", "12:00")

	assert.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, high.ID, got.ID)
}

func TestFindActiveForSlot_TieBrokenByEarliestJoin(t *testing.T) {
	repo := NewWaitingListRepository(newTestDB(t))
	ctx := context.Background()

	earlier := activeEntry(5, time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC))
	later := activeEntry(5, time.Date(2025, 11, 1, 9, 5, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, earlier))

	got, err := repo.FindActiveForSlot(ctx, 2, earlier.Date, "10:00", "12:00")

	assert.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, earlier.ID, got.ID)
}

func TestFindActiveForSlot_ExactSlotOnly(t *testing.T) {
	repo := NewWaitingListRepository(newTestDB(t))
	ctx := context.Background()

	e := activeEntry(5, time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, e))

	// A contained interval is not the same slot.
	got, err := repo.FindActiveForSlot(ctx, 2, e.Date, "10:00", "11:00")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindActiveForSlot_SkipsPromotedEntries(t *testing.T) {
	repo := NewWaitingListRepository(newTestDB(t))
	ctx := context.Background()

	promoted := activeEntry(10, time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC))
	promoted.Status = domain.WaitingPromoted
	active := activeEntry(5, time.Date(2025, 11, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, promoted))
	require.NoError(t, repo.Create(ctx, active))

	got, err := repo.FindActiveForSlot(ctx, 2, active.Date, "10:00", "12:00")

	assert.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, active.ID, got.ID)
}
