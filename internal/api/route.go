package api

import (
	"Pulse/internal/api/middleware"
	"Pulse/internal/pkg/logger"
	"Pulse/internal/pkg/slack"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, verifier *slack.SignatureVerifier) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	logger.SetupGin(r)

	// Slack 入站回调，均需通过签名校验
	slackGroup := r.Group("/slack")
	{
		slackGroup.GET("/install", group.OAuthHandler.Install)
		slackGroup.GET("/oauth_redirect", group.OAuthHandler.OAuthRedirect)

		signedGroup := slackGroup.Group("")
		signedGroup.Use(middleware.SlackVerifyMiddleware(verifier))
		{
			signedGroup.POST("/events", group.EventHandler.HandleEvent)
			signedGroup.POST("/metrics", group.CommandHandler.Metrics)
			signedGroup.POST("/set-report-channel", group.CommandHandler.SetReportChannel)
		}
	}

	// 手动触发定期报告，便于联调
	r.GET("/test-weekly-report", group.ReportHandler.TriggerWeekly)
	r.GET("/test-monthly-report", group.ReportHandler.TriggerMonthly)
	r.GET("/test-yearly-report", group.ReportHandler.TriggerYearly)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		apiGroup.GET("/leaderboard", group.ReportHandler.Leaderboard)
	}

	return r
}
