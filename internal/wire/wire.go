package wire

import (
	"SellerLens/internal/api"
	"SellerLens/internal/api/config"
	"SellerLens/internal/api/handler"
	"SellerLens/internal/job"
	"SellerLens/internal/pkg/cron"
	"SellerLens/internal/pkg/kafka"
	"SellerLens/internal/pkg/llm"
	pkgmongo "SellerLens/internal/pkg/mongo"
	"SellerLens/internal/pkg/newsletter"
	"SellerLens/internal/pkg/redis"
	"SellerLens/internal/repository"
	"SellerLens/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronManager  *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	keywordRepo := repository.NewKeywordRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	uploadFileRepo := repository.NewUploadFileRepository(db)
	subscriberRepo := repository.NewSubscriberRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	userRepo := repository.NewUserRepository(db)

	var optimizerMessageRepo pkgmongo.OptimizerMessageRepo
	if mongoDB != nil {
		optimizerMessageRepo = pkgmongo.NewOptimizerMessageRepo(mongoDB)
	}

	var locker service.PartitionLocker
	if redis.Ready() {
		locker = service.NewRedisPartitionLocker()
	} else {
		locker = service.NewLocalPartitionLocker()
	}

	newsletterClient := newsletter.NewClient(&cfg.Newsletter)

	keywordService := service.NewKeywordService(keywordRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	uploadService := service.NewUploadService(keywordRepo, categoryRepo, uploadFileRepo, locker, categoryService)
	subscriberService := service.NewSubscriberService(subscriberRepo, newsletterClient)
	activityService := service.NewActivityService(activityRepo)
	userService := service.NewUserService(userRepo)

	toolHandler := llm.NewToolHandler(keywordService)
	agent := llm.NewAgent(toolHandler)
	optimizerService := service.NewOptimizerService(agent, optimizerMessageRepo)

	handlers := &api.HandlersGroup{
		KeywordHandler:    handler.NewKeywordHandler(keywordService),
		CategoryHandler:   handler.NewCategoryHandler(categoryService),
		UploadHandler:     handler.NewUploadHandler(uploadService),
		SubscriberHandler: handler.NewSubscriberHandler(subscriberService),
		ActivityHandler:   handler.NewActivityHandler(activityService),
		OptimizerHandler:  handler.NewOptimizerHandler(optimizerService),
		UserHandler:       handler.NewUserHandler(userService),
	}

	router := api.SetupRouter(handlers)

	var kafkaMgr *kafka.ConsumerManager
	if len(cfg.Kafka.Brokers) > 0 {
		mgr, err := kafka.NewConsumerManager(cfg, activityRepo)
		if err != nil {
			return nil, err
		}
		kafkaMgr = mgr
	}

	cronMgr := cron.NewCronManager(
		job.NewActivityRollupJob(activityService),
		job.NewNewsletterSyncJob(subscriberService),
	)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronManager:  cronMgr,
	}, nil
}
