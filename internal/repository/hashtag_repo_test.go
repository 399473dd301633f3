package repository

import (
	"Inkwell/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetOrCreateHashtags(t *testing.T) {
	db := newTestDB(t)
	repo := NewHashtagRepository(db)
	ctx := context.Background()

	tags, err := repo.GetOrCreateHashtags(ctx, []string{"go", "redis"})
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	// 重复创建不应新增记录
	tags, err = repo.GetOrCreateHashtags(ctx, []string{"go", "kafka"})
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	var total int64
	require.NoError(t, db.Model(&model.Hashtag{}).Count(&total).Error)
	assert.EqualValues(t, 3, total)
}

func TestGetHashtagByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewHashtagRepository(db)
	ctx := context.Background()

	_, err := repo.GetOrCreateHashtags(ctx, []string{"go"})
	require.NoError(t, err)

	tag, err := repo.GetHashtagByName(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, "go", tag.Name)

	_, err = repo.GetHashtagByName(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
