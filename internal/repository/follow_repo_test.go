package repository

import (
	"Inkwell/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func followerCounts(t *testing.T, db *gorm.DB, id uint64) (follower, following int) {
	t.Helper()
	var m model.Member
	require.NoError(t, db.First(&m, id).Error)
	return m.FollowerCount, m.FollowingCount
}

func TestCreateFollowMaintainsCounters(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepo(db)
	ctx := context.Background()

	alice := seedMember(t, db, "alice@test.com", "alice")
	bob := seedMember(t, db, "bob@test.com", "bob")

	require.NoError(t, repo.CreateFollow(ctx, alice.ID, bob.ID))

	exists, err := repo.CheckFollowExists(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	bobFollower, _ := followerCounts(t, db, bob.ID)
	_, aliceFollowing := followerCounts(t, db, alice.ID)
	assert.Equal(t, 1, bobFollower)
	assert.Equal(t, 1, aliceFollowing)
}

func TestCreateFollowIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepo(db)
	ctx := context.Background()

	alice := seedMember(t, db, "alice@test.com", "alice")
	bob := seedMember(t, db, "bob@test.com", "bob")

	require.NoError(t, repo.CreateFollow(ctx, alice.ID, bob.ID))
	require.NoError(t, repo.CreateFollow(ctx, alice.ID, bob.ID))

	bobFollower, _ := followerCounts(t, db, bob.ID)
	assert.Equal(t, 1, bobFollower)

	count, err := repo.GetFollowerCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestDeleteFollow(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepo(db)
	ctx := context.Background()

	alice := seedMember(t, db, "alice@test.com", "alice")
	bob := seedMember(t, db, "bob@test.com", "bob")

	require.NoError(t, repo.CreateFollow(ctx, alice.ID, bob.ID))
	require.NoError(t, repo.DeleteFollow(ctx, alice.ID, bob.ID))

	exists, err := repo.CheckFollowExists(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	bobFollower, _ := followerCounts(t, db, bob.ID)
	_, aliceFollowing := followerCounts(t, db, alice.ID)
	assert.Equal(t, 0, bobFollower)
	assert.Equal(t, 0, aliceFollowing)

	// 未关注时取消为幂等，计数不再变化
	require.NoError(t, repo.DeleteFollow(ctx, alice.ID, bob.ID))
	bobFollower, _ = followerCounts(t, db, bob.ID)
	assert.Equal(t, 0, bobFollower)
}

func TestGetFollowersAndFollowing(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepo(db)
	ctx := context.Background()

	alice := seedMember(t, db, "alice@test.com", "alice")
	bob := seedMember(t, db, "bob@test.com", "bob")
	carol := seedMember(t, db, "carol@test.com", "carol")

	require.NoError(t, repo.CreateFollow(ctx, alice.ID, carol.ID))
	require.NoError(t, repo.CreateFollow(ctx, bob.ID, carol.ID))

	followers, err := repo.GetFollowers(ctx, carol.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	following, err := repo.GetFollowing(ctx, alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, carol.ID, following[0].FollowingID)

	count, err := repo.GetFollowingCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
