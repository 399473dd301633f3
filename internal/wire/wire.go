package wire

import (
	"Inkwell/internal/api"
	"Inkwell/internal/api/config"
	"Inkwell/internal/api/handler"
	"Inkwell/internal/job"
	"Inkwell/internal/pkg/cron"
	"Inkwell/internal/pkg/kafka"
	"Inkwell/internal/repository"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	memberRepo := repository.NewMemberRepository(db)
	postRepo := repository.NewPostRepository(db)
	actionRepo := repository.NewPostActionRepo(db)
	hashtagRepo := repository.NewHashtagRepository(db)
	followRepo := repository.NewFollowRepo(db)
	otpRepo := repository.NewOtpRepository(db)
	tokenRepo := repository.NewRefreshTokenRepo(db)
	metricRepo := repository.NewPostMetricRepository(db)

	dedup := service.NewRedisViewDedupCache()
	locker := service.NewRedisPairLocker()
	dirty := service.NewRedisDirtySet()

	producer, err := kafka.NewEngagementProducer(cfg)
	if err != nil {
		return nil, err
	}

	postService := service.NewPostService(postRepo, actionRepo, memberRepo, hashtagRepo, dedup, locker, producer)
	authService := service.NewAuthService(memberRepo, tokenRepo, otpRepo)
	memberService := service.NewMemberService(memberRepo, followRepo, postRepo, tokenRepo)
	followService := service.NewFollowService(followRepo, memberRepo)
	metricService := service.NewPostMetricService(metricRepo, postRepo, actionRepo, locker, dirty)

	handlers := &api.HandlersGroup{
		AuthHandler:       handler.NewAuthHandler(authService),
		MemberHandler:     handler.NewMemberHandler(memberService),
		PostHandler:       handler.NewPostHandler(postService),
		FollowHandler:     handler.NewFollowHandler(followService),
		ImageHandler:      handler.NewImageHandler(),
		PostMetricHandler: handler.NewPostMetricHandler(metricService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, metricService)
	if err != nil {
		return nil, err
	}

	reconcileJob := job.NewReconcileJob(metricService)
	otpCleanJob := job.NewOtpCleanJob(otpRepo, tokenRepo)
	cronMgr := cron.NewCronManager(reconcileJob, otpCleanJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
