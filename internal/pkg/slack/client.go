package slack

import (
	"Pulse/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

const apiBaseURL = "https://slack.com/api"

// apiResponse Slack Web API 的统一响应外壳
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// OAuthAccess oauth.v2.access 的响应
type OAuthAccess struct {
	OK          bool   `json:"ok"`
	Error       string `json:"error"`
	AccessToken string `json:"access_token"`
	Team        struct {
		ID string `json:"id"`
	} `json:"team"`
}

// Client Slack Web API 客户端
type Client struct {
	http         *resty.Client
	clientID     string
	clientSecret string
}

func NewClient(cfg config.SlackConfig) *Client {
	client := resty.New().
		SetBaseURL(apiBaseURL).
		SetTimeout(10 * time.Second).
		SetAuthToken(cfg.BotToken).
		SetHeader("Content-Type", "application/json; charset=utf-8")

	return &Client{
		http:         client,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}
}

// PostMessage 调用 chat.postMessage 投递消息
// text 为不支持 Block Kit 的客户端的降级内容
func (s *Client) PostMessage(ctx context.Context, channelID string, blocks []Block, text string) error {
	body := map[string]interface{}{
		"channel": channelID,
		"text":    text,
	}
	if len(blocks) > 0 {
		body["blocks"] = blocks
	}

	var result apiResponse
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post("/chat.postMessage")
	if err != nil {
		return fmt.Errorf("post message request failed: %w", err)
	}
	if !result.OK {
		log.ErrorContext(ctx, "Slack API rejected message",
			"channel", channelID, "status", resp.StatusCode(), "api_error", result.Error)
		return fmt.Errorf("slack api error: %s", result.Error)
	}
	return nil
}

// ExchangeOAuthCode 用安装回调携带的 code 换取工作区 bot token
func (s *Client) ExchangeOAuthCode(ctx context.Context, code string) (*OAuthAccess, error) {
	var result OAuthAccess
	_, err := s.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(map[string]string{
			"client_id":     s.clientID,
			"client_secret": s.clientSecret,
			"code":          code,
		}).
		SetResult(&result).
		Post("/oauth.v2.access")
	if err != nil {
		return nil, fmt.Errorf("oauth exchange request failed: %w", err)
	}
	if !result.OK {
		return nil, fmt.Errorf("slack api error: %s", result.Error)
	}
	return &result, nil
}

// InstallURL 生成安装授权跳转链接
func (s *Client) InstallURL() string {
	const scopes = "channels:history,channels:read,chat:write,commands,reactions:read,users:read"
	return fmt.Sprintf("https://slack.com/oauth/v2/authorize?client_id=%s&scope=%s&user_scope=", s.clientID, scopes)
}
