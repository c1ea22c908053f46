package repositories

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"equipment-access/internal/entities"
	"equipment-access/pkg/database/postgresql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPool *pgxpool.Pool

// TestMain connects to the database named by TEST_DATABASE_URL and
// applies the migrations. Without the variable the integration tests
// are skipped.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn != "" {
		if err := postgresql.Migrate(context.Background(), dsn); err != nil {
			log.Fatalf("failed to migrate test database: %v", err)
		}

		var err error
		testPool, err = pgxpool.New(context.Background(), dsn)
		if err != nil {
			log.Fatalf("failed to connect to test database: %v", err)
		}
		defer testPool.Close()
	}

	os.Exit(m.Run())
}

func requireTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}
	return testPool
}

func cleanupTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`TRUNCATE TABLE access_records, audit_logs, equipments, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

func seedAccessFixtures(t *testing.T, pool *pgxpool.Pool) (equipmentID, userID uint64) {
	t.Helper()
	ctx := context.Background()

	err := pool.QueryRow(ctx, `
		INSERT INTO users (username, email, full_name, role, hashed_password)
		VALUES ('guard', 'guard@example.com', 'Test Guard', 'security', 'x')
		RETURNING id`).Scan(&userID)
	require.NoError(t, err)

	err = pool.QueryRow(ctx, `
		INSERT INTO equipments (name, equipment_type, category, serial_number, qr_code)
		VALUES ('Test Laptop', 'frequent', 'technological', 'SN-TEST', 'QR-TEST')
		RETURNING id`).Scan(&equipmentID)
	require.NoError(t, err)

	return equipmentID, userID
}

func inTx(t *testing.T, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) {
	t.Helper()
	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, fn(tx))
	require.NoError(t, tx.Commit(ctx))
}

func TestAccessRecordRepository_Integration_CreateAndGet(t *testing.T) {
	pool := requireTestPool(t)
	cleanupTables(t, pool)
	equipmentID, userID := seedAccessFixtures(t, pool)

	repo := NewAccessRecordRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	record := &entities.AccessRecord{
		EquipmentID:      equipmentID,
		UserID:           userID,
		AccessType:       entities.AccessTypeEntry,
		Status:           entities.AccessStatusActive,
		EntryTime:        now,
		ExpectedExitTime: now.Add(72 * time.Hour),
	}
	inTx(t, pool, func(tx pgx.Tx) error {
		return repo.CreateInTx(ctx, tx, record)
	})
	require.NotZero(t, record.ID)

	got, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entities.AccessStatusActive, got.Status)
	assert.True(t, got.EntryTime.Equal(now))
	assert.Nil(t, got.ExitTime)

	active, err := repo.GetActiveByEquipment(ctx, equipmentID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, record.ID, active.ID)

	missing, err := repo.GetByID(ctx, record.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAccessRecordRepository_Integration_SingleActiveIndex(t *testing.T) {
	pool := requireTestPool(t)
	cleanupTables(t, pool)
	equipmentID, userID := seedAccessFixtures(t, pool)

	repo := NewAccessRecordRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC()

	mk := func() *entities.AccessRecord {
		return &entities.AccessRecord{
			EquipmentID:      equipmentID,
			UserID:           userID,
			AccessType:       entities.AccessTypeEntry,
			Status:           entities.AccessStatusActive,
			EntryTime:        now,
			ExpectedExitTime: now.Add(72 * time.Hour),
		}
	}

	inTx(t, pool, func(tx pgx.Tx) error {
		return repo.CreateInTx(ctx, tx, mk())
	})

	// The partial unique index must refuse a second active row for the
	// same equipment even when the application check is bypassed.
	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	err = repo.CreateInTx(ctx, tx, mk())
	require.Error(t, err)
	_ = tx.Rollback(ctx)
}

func TestAccessRecordRepository_Integration_Update(t *testing.T) {
	pool := requireTestPool(t)
	cleanupTables(t, pool)
	equipmentID, userID := seedAccessFixtures(t, pool)

	repo := NewAccessRecordRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	record := &entities.AccessRecord{
		EquipmentID:      equipmentID,
		UserID:           userID,
		AccessType:       entities.AccessTypeEntry,
		Status:           entities.AccessStatusActive,
		EntryTime:        now,
		ExpectedExitTime: now.Add(72 * time.Hour),
	}
	inTx(t, pool, func(tx pgx.Tx) error {
		return repo.CreateInTx(ctx, tx, record)
	})

	exit := now.Add(2 * time.Hour)
	record.Status = entities.AccessStatusCompleted
	record.ExitTime = &exit
	record.AppendNote("Exit: done")
	inTx(t, pool, func(tx pgx.Tx) error {
		return repo.UpdateInTx(ctx, tx, record)
	})

	got, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.AccessStatusCompleted, got.Status)
	require.NotNil(t, got.ExitTime)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "Exit: done", *got.Notes)

	// Updating a missing row reports pgx.ErrNoRows.
	ghost := *record
	ghost.ID = record.ID + 100
	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	err = repo.UpdateInTx(ctx, tx, &ghost)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	_ = tx.Rollback(ctx)
}

func TestAccessRecordRepository_Integration_ExpiredCandidates(t *testing.T) {
	pool := requireTestPool(t)
	cleanupTables(t, pool)
	equipmentID, userID := seedAccessFixtures(t, pool)

	repo := NewAccessRecordRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC()

	overdue := &entities.AccessRecord{
		EquipmentID:      equipmentID,
		UserID:           userID,
		AccessType:       entities.AccessTypeEntry,
		Status:           entities.AccessStatusActive,
		EntryTime:        now.Add(-100 * time.Hour),
		ExpectedExitTime: now.Add(-28 * time.Hour),
	}
	inTx(t, pool, func(tx pgx.Tx) error {
		return repo.CreateInTx(ctx, tx, overdue)
	})

	inTx(t, pool, func(tx pgx.Tx) error {
		candidates, err := repo.GetExpiredCandidatesForUpdate(ctx, tx, now)
		if err != nil {
			return err
		}
		require.Len(t, candidates, 1)
		assert.Equal(t, overdue.ID, candidates[0].ID)
		return nil
	})

	// Closed records are never candidates.
	exit := now
	overdue.Status = entities.AccessStatusCompleted
	overdue.ExitTime = &exit
	inTx(t, pool, func(tx pgx.Tx) error {
		return repo.UpdateInTx(ctx, tx, overdue)
	})
	inTx(t, pool, func(tx pgx.Tx) error {
		candidates, err := repo.GetExpiredCandidatesForUpdate(ctx, tx, now)
		if err != nil {
			return err
		}
		assert.Empty(t, candidates)
		return nil
	})
}

func TestAccessRecordRepository_Integration_Listing(t *testing.T) {
	pool := requireTestPool(t)
	cleanupTables(t, pool)
	equipmentID, userID := seedAccessFixtures(t, pool)

	repo := NewAccessRecordRepository(pool)
	ctx := context.Background()
	base := time.Now().UTC().Add(-10 * time.Hour)

	for i := 0; i < 3; i++ {
		entry := base.Add(time.Duration(i) * time.Hour)
		exit := entry.Add(30 * time.Minute)
		record := &entities.AccessRecord{
			EquipmentID:      equipmentID,
			UserID:           userID,
			AccessType:       entities.AccessTypeEntry,
			Status:           entities.AccessStatusCompleted,
			EntryTime:        entry,
			ExitTime:         &exit,
			ExpectedExitTime: entry.Add(72 * time.Hour),
		}
		inTx(t, pool, func(tx pgx.Tx) error {
			return repo.CreateInTx(ctx, tx, record)
		})
	}

	records, total, err := repo.ListByEquipment(ctx, equipmentID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	assert.Len(t, records, 2)

	records, total, err = repo.ListByUser(ctx, userID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	assert.Len(t, records, 3)

	records, total, err = repo.ListByDateRange(ctx, base.Add(30*time.Minute), base.Add(90*time.Minute), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, records, 1)
}
