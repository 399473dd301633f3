package repository

import (
	"Inkwell/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLatestValidOtp(t *testing.T) {
	db := newTestDB(t)
	repo := NewOtpRepository(db)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, db.Create(&model.Otp{
		Email:     "a@test.com",
		Code:      "111111",
		ExpiresAt: now.Add(10 * time.Minute),
		CreatedAt: now.Add(-time.Minute),
	}).Error)
	require.NoError(t, db.Create(&model.Otp{
		Email:     "a@test.com",
		Code:      "222222",
		ExpiresAt: now.Add(10 * time.Minute),
		CreatedAt: now,
	}).Error)

	otp, err := repo.GetLatestValidOtp(ctx, "a@test.com")
	require.NoError(t, err)
	require.NotNil(t, otp)
	assert.Equal(t, "222222", otp.Code)
}

func TestGetLatestValidOtpSkipsUsedAndExpired(t *testing.T) {
	db := newTestDB(t)
	repo := NewOtpRepository(db)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, db.Create(&model.Otp{
		Email:     "a@test.com",
		Code:      "111111",
		Used:      true,
		ExpiresAt: now.Add(10 * time.Minute),
		CreatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&model.Otp{
		Email:     "a@test.com",
		Code:      "222222",
		ExpiresAt: now.Add(-time.Minute),
		CreatedAt: now,
	}).Error)

	otp, err := repo.GetLatestValidOtp(ctx, "a@test.com")
	require.NoError(t, err)
	assert.Nil(t, otp)
}

func TestMarkUsedAndInvalidate(t *testing.T) {
	db := newTestDB(t)
	repo := NewOtpRepository(db)
	ctx := context.Background()

	now := time.Now()
	otp := &model.Otp{
		Email:     "a@test.com",
		Code:      "111111",
		ExpiresAt: now.Add(10 * time.Minute),
		CreatedAt: now,
	}
	require.NoError(t, repo.CreateOtp(ctx, otp))

	require.NoError(t, repo.MarkUsed(ctx, otp.ID))
	got, err := repo.GetLatestValidOtp(ctx, "a@test.com")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.CreateOtp(ctx, &model.Otp{
		Email:     "a@test.com",
		Code:      "222222",
		ExpiresAt: now.Add(10 * time.Minute),
		CreatedAt: now,
	}))
	require.NoError(t, repo.InvalidateByEmail(ctx, "a@test.com"))
	got, err = repo.GetLatestValidOtp(ctx, "a@test.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteExpiredOtp(t *testing.T) {
	db := newTestDB(t)
	repo := NewOtpRepository(db)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, db.Create(&model.Otp{
		Email:     "a@test.com",
		Code:      "111111",
		ExpiresAt: now.Add(-time.Minute),
		CreatedAt: now.Add(-time.Hour),
	}).Error)
	require.NoError(t, db.Create(&model.Otp{
		Email:     "a@test.com",
		Code:      "222222",
		ExpiresAt: now.Add(10 * time.Minute),
		CreatedAt: now,
	}).Error)

	deleted, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	var total int64
	require.NoError(t, db.Model(&model.Otp{}).Count(&total).Error)
	assert.EqualValues(t, 1, total)
}
