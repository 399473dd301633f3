package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"
)

type PostMetricService interface {
	// RecordEngagement 累加帖子当日互动增量，并标记该帖待对账
	RecordEngagement(ctx context.Context, postID uint64, viewsDelta, likesDelta int) error
	GetPostTrend(ctx context.Context, postID uint64, days int) (*dto.PostTrendDTO, error)
	// ReconcileDirtyPosts 以流水表为准回写被标记帖子的计数
	ReconcileDirtyPosts(ctx context.Context) error
}

type postMetricServiceImpl struct {
	metricRepo repository.PostMetricRepo
	postRepo   repository.PostRepo
	actionRepo repository.PostActionRepo
	locker     PairLocker
	dirty      DirtySet
}

func NewPostMetricService(
	metricRepo repository.PostMetricRepo,
	postRepo repository.PostRepo,
	actionRepo repository.PostActionRepo,
	locker PairLocker,
	dirty DirtySet,
) PostMetricService {
	return &postMetricServiceImpl{
		metricRepo: metricRepo,
		postRepo:   postRepo,
		actionRepo: actionRepo,
		locker:     locker,
		dirty:      dirty,
	}
}

func (s *postMetricServiceImpl) RecordEngagement(ctx context.Context, postID uint64, viewsDelta, likesDelta int) error {
	today := time.Now().Truncate(24 * time.Hour)
	if err := s.metricRepo.IncrDailyMetric(ctx, postID, today, likesDelta, viewsDelta); err != nil {
		return err
	}
	return s.dirty.Add(ctx, strconv.FormatUint(postID, 10))
}

func (s *postMetricServiceImpl) GetPostTrend(ctx context.Context, postID uint64, days int) (*dto.PostTrendDTO, error) {
	if days != 7 && days != 30 {
		days = 7
	}

	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	metrics, err := s.metricRepo.GetPostMetricsByDays(ctx, postID, days)
	if err != nil {
		return nil, err
	}

	trend := &dto.PostTrendDTO{
		PostID: postID,
		Days:   days,
		Likes:  make([]*dto.PostMetricDTO, 0, len(metrics)),
		Views:  make([]*dto.PostMetricDTO, 0, len(metrics)),
	}
	for _, m := range metrics {
		date := m.MetricDate.Format("2006-01-02")
		trend.Likes = append(trend.Likes, &dto.PostMetricDTO{Date: date, Value: m.NewLikes})
		trend.Views = append(trend.Views, &dto.PostMetricDTO{Date: date, Value: m.NewViews})
	}
	return trend, nil
}

func (s *postMetricServiceImpl) ReconcileDirtyPosts(ctx context.Context) error {
	// 单次尝试加锁，拿不到说明其他实例正在对账
	unlock, ok, err := s.locker.Acquire(ctx, consts.PostReconcileLock, 5*time.Minute, 1)
	if err != nil {
		return err
	}
	if !ok {
		log.InfoContext(ctx, "对账任务已在其他实例运行，跳过")
		return nil
	}
	defer unlock()

	dirty, err := s.dirty.Members(ctx)
	if err != nil {
		return err
	}
	if len(dirty) == 0 {
		return nil
	}

	reconciled := 0
	for _, raw := range dirty {
		postID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			_ = s.dirty.Remove(ctx, raw)
			continue
		}

		viewCount, err := s.actionRepo.GetViewCountByPostID(ctx, postID)
		if err != nil {
			log.WarnContext(ctx, "浏览流水统计失败", "postID", postID, "err", err)
			continue
		}
		likeCount, err := s.actionRepo.GetLikeCountByPostID(ctx, postID)
		if err != nil {
			log.WarnContext(ctx, "点赞流水统计失败", "postID", postID, "err", err)
			continue
		}

		if err = s.postRepo.SetCounters(ctx, postID, viewCount, likeCount); err != nil {
			log.WarnContext(ctx, "计数回写失败", "postID", postID, "err", err)
			continue
		}

		_ = s.dirty.Remove(ctx, raw)
		reconciled++
	}

	log.InfoContext(ctx, "帖子计数对账完成", "total", len(dirty), "reconciled", reconciled)
	return nil
}
