package repository

import (
	"Inkwell/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostMetricRepo interface {
	IncrDailyMetric(ctx context.Context, postID uint64, date time.Time, likesDelta, viewsDelta int) error
	GetPostMetricsByDays(ctx context.Context, postID uint64, days int) ([]*model.PostDailyMetric, error)
}

type postMetricRepoImpl struct {
	db *gorm.DB
}

func NewPostMetricRepository(db *gorm.DB) PostMetricRepo {
	return &postMetricRepoImpl{db: db}
}

// IncrDailyMetric 采用 Upsert 逻辑。post_id + metric_date 已存在时累加增量
func (r *postMetricRepoImpl) IncrDailyMetric(ctx context.Context, postID uint64, date time.Time, likesDelta, viewsDelta int) error {
	metric := &model.PostDailyMetric{
		PostID:     postID,
		MetricDate: date,
		NewLikes:   likesDelta,
		NewViews:   viewsDelta,
		CreatedAt:  time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_id"}, {Name: "metric_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"new_likes": gorm.Expr("new_likes + ?", likesDelta),
			"new_views": gorm.Expr("new_views + ?", viewsDelta),
		}),
	}).Create(metric).Error
}

// GetPostMetricsByDays 获取帖子最近 N 天的趋势数据
func (r *postMetricRepoImpl) GetPostMetricsByDays(ctx context.Context, postID uint64, days int) ([]*model.PostDailyMetric, error) {
	metrics := make([]*model.PostDailyMetric, 0)
	result := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Where("metric_date >= ?", time.Now().AddDate(0, 0, -days)).
		Order("metric_date ASC").
		Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}
