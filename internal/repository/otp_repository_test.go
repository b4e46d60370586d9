package repository

import (
	"adhyeta_backend/internal/model"
	"adhyeta_backend/pkg/database"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func TestOTP_LatestUnusedMatchesCode(t *testing.T) {
	db := newTestDB(t)
	repo := NewOTPRepository(db)

	require.NoError(t, repo.Create(&model.OTPCode{UserID: 1, Code: "123456"}))

	otp, err := repo.LatestUnused(1, "123456", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "123456", otp.Code)

	_, err = repo.LatestUnused(1, "000000", time.Time{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.LatestUnused(2, "123456", time.Time{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOTP_SingleUse(t *testing.T) {
	db := newTestDB(t)
	repo := NewOTPRepository(db)

	require.NoError(t, repo.Create(&model.OTPCode{UserID: 1, Code: "654321"}))

	otp, err := repo.LatestUnused(1, "654321", time.Time{})
	require.NoError(t, err)

	require.NoError(t, repo.MarkUsed(otp.ID))

	_, err = repo.LatestUnused(1, "654321", time.Time{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "a consumed code cannot be reused")
}

func TestOTP_ExpiryCutoff(t *testing.T) {
	db := newTestDB(t)
	repo := NewOTPRepository(db)

	require.NoError(t, repo.Create(&model.OTPCode{UserID: 1, Code: "111222"}))

	// A cutoff in the future excludes the freshly created code.
	_, err := repo.LatestUnused(1, "111222", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	otp, err := repo.LatestUnused(1, "111222", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.False(t, otp.IsUsed)
}
