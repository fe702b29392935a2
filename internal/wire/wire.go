package wire

import (
	"Pulse/internal/api"
	"Pulse/internal/api/config"
	"Pulse/internal/api/handler"
	"Pulse/internal/job"
	"Pulse/internal/pkg/cron"
	"Pulse/internal/pkg/kafka"
	pulsemongo "Pulse/internal/pkg/mongo"
	"Pulse/internal/pkg/slack"
	"Pulse/internal/repository"
	"Pulse/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	metricRepo := repository.NewMetricRepository(db)
	reportChannelRepo := repository.NewReportChannelRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(db)
	eventArchiveRepo := pulsemongo.NewEventArchiveRepo(mongoDB, cfg.Mongo.EventCollection)

	slackClient := slack.NewClient(cfg.Slack)
	verifier := slack.NewSignatureVerifier(cfg.Slack.SigningSecret)

	ingestSvc := service.NewIngestService(metricRepo)
	leaderboardSvc := service.NewLeaderboardService(metricRepo, cfg.Slack.BotUserID)
	commandSvc := service.NewCommandService(leaderboardSvc)
	reportSvc := service.NewReportService(metricRepo, reportChannelRepo, leaderboardSvc, slackClient, cfg.Report.DefaultChannel)

	handlers := &api.HandlersGroup{
		EventHandler:   handler.NewEventHandler(ingestSvc, eventArchiveRepo),
		CommandHandler: handler.NewCommandHandler(commandSvc, reportSvc, slackClient),
		ReportHandler:  handler.NewReportHandler(reportSvc, leaderboardSvc),
		OAuthHandler:   handler.NewOAuthHandler(slackClient, workspaceRepo),
	}

	router := api.SetupRouter(handlers, verifier)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, ingestSvc)
	if err != nil {
		return nil, err
	}

	cronMgr, err := cron.NewCronManager(cfg.Report,
		job.NewWeeklyReportJob(reportSvc),
		job.NewMonthlyReportJob(reportSvc),
		job.NewYearlyReportJob(reportSvc),
	)
	if err != nil {
		return nil, err
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
