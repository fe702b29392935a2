package api

import "Pulse/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	EventHandler   *handler.EventHandler
	CommandHandler *handler.CommandHandler
	ReportHandler  *handler.ReportHandler
	OAuthHandler   *handler.OAuthHandler
}
