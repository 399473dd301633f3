package repository

import (
	"Inkwell/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricDate(daysAgo int) time.Time {
	now := time.Now().AddDate(0, 0, -daysAgo)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func TestIncrDailyMetricUpsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostMetricRepository(db)
	ctx := context.Background()

	today := metricDate(0)
	require.NoError(t, repo.IncrDailyMetric(ctx, 1, today, 1, 0))
	require.NoError(t, repo.IncrDailyMetric(ctx, 1, today, 0, 3))
	require.NoError(t, repo.IncrDailyMetric(ctx, 1, today, -1, 0))

	var metrics []*model.PostDailyMetric
	require.NoError(t, db.Where("post_id = ?", 1).Find(&metrics).Error)
	require.Len(t, metrics, 1)
	assert.Equal(t, 0, metrics[0].NewLikes)
	assert.Equal(t, 3, metrics[0].NewViews)
}

func TestGetPostMetricsByDays(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostMetricRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.IncrDailyMetric(ctx, 1, metricDate(10), 2, 5))
	require.NoError(t, repo.IncrDailyMetric(ctx, 1, metricDate(1), 1, 2))
	require.NoError(t, repo.IncrDailyMetric(ctx, 1, metricDate(0), 4, 8))
	require.NoError(t, repo.IncrDailyMetric(ctx, 2, metricDate(0), 9, 9))

	metrics, err := repo.GetPostMetricsByDays(ctx, 1, 7)
	require.NoError(t, err)
	require.Len(t, metrics, 2)
	// 按日期升序
	assert.Equal(t, 1, metrics[0].NewLikes)
	assert.Equal(t, 4, metrics[1].NewLikes)
}
