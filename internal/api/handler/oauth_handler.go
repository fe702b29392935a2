package handler

import (
	"Pulse/internal/pkg/slack"
	"Pulse/internal/repository"
	"fmt"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type OAuthHandler struct {
	slackClient   *slack.Client
	workspaceRepo repository.WorkspaceRepo
}

func NewOAuthHandler(slackClient *slack.Client, workspaceRepo repository.WorkspaceRepo) *OAuthHandler {
	return &OAuthHandler{
		slackClient:   slackClient,
		workspaceRepo: workspaceRepo,
	}
}

// Install 安装引导页
func (s *OAuthHandler) Install(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, fmt.Sprintf(`<a href="%s">Install to Slack</a>`, s.slackClient.InstallURL()))
}

// OAuthRedirect 安装回调，换取并保存工作区凭据
func (s *OAuthHandler) OAuthRedirect(c *gin.Context) {
	ctx := c.Request.Context()
	code := c.Query("code")
	if code == "" {
		c.String(http.StatusBadRequest, "Missing authorization code")
		return
	}

	access, err := s.slackClient.ExchangeOAuthCode(ctx, code)
	if err != nil {
		log.ErrorContext(ctx, "OAuth exchange failed", "err", err)
		c.String(http.StatusOK, fmt.Sprintf("Error during OAuth: %v", err))
		return
	}

	if err := s.workspaceRepo.SaveWorkspace(ctx, access.Team.ID, access.AccessToken); err != nil {
		log.ErrorContext(ctx, "Save workspace failed", "team", access.Team.ID, "err", err)
		c.String(http.StatusOK, fmt.Sprintf("Error installing app: %v", err))
		return
	}

	log.InfoContext(ctx, "Workspace installed", "team", access.Team.ID)
	c.String(http.StatusOK, "App installed successfully!")
}
