package repository

import (
	"Inkwell/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTokenLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewRefreshTokenRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateToken(ctx, &model.RefreshToken{
		MemberID:  1,
		Token:     "token-a",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}))

	stored, err := repo.GetByToken(ctx, "token-a")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.EqualValues(t, 1, stored.MemberID)

	require.NoError(t, repo.DeleteByToken(ctx, "token-a"))
	stored, err = repo.GetByToken(ctx, "token-a")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestGetByTokenExpired(t *testing.T) {
	db := newTestDB(t)
	repo := NewRefreshTokenRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateToken(ctx, &model.RefreshToken{
		MemberID:  1,
		Token:     "token-old",
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-time.Hour),
	}))

	stored, err := repo.GetByToken(ctx, "token-old")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestDeleteByMemberID(t *testing.T) {
	db := newTestDB(t)
	repo := NewRefreshTokenRepo(db)
	ctx := context.Background()

	for _, token := range []string{"token-a", "token-b"} {
		require.NoError(t, repo.CreateToken(ctx, &model.RefreshToken{
			MemberID:  1,
			Token:     token,
			ExpiresAt: time.Now().Add(time.Hour),
			CreatedAt: time.Now(),
		}))
	}
	require.NoError(t, repo.CreateToken(ctx, &model.RefreshToken{
		MemberID:  2,
		Token:     "token-c",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}))

	require.NoError(t, repo.DeleteByMemberID(ctx, 1))

	var total int64
	require.NoError(t, db.Model(&model.RefreshToken{}).Count(&total).Error)
	assert.EqualValues(t, 1, total)
}

func TestDeleteExpiredTokens(t *testing.T) {
	db := newTestDB(t)
	repo := NewRefreshTokenRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateToken(ctx, &model.RefreshToken{
		MemberID:  1,
		Token:     "token-old",
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, repo.CreateToken(ctx, &model.RefreshToken{
		MemberID:  1,
		Token:     "token-new",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}))

	deleted, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
}
