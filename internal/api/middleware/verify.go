package middleware

import (
	"Pulse/internal/pkg/slack"
	"bytes"
	"io"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SlackVerifyMiddleware 校验入站请求的 Slack 签名
// 消费后把 body 放回，供后续 handler 正常绑定
func SlackVerifyMiddleware(verifier *slack.SignatureVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		timestamp := c.GetHeader("X-Slack-Request-Timestamp")
		signature := c.GetHeader("X-Slack-Signature")

		if err := verifier.Verify(body, timestamp, signature); err != nil {
			log.WarnContext(c.Request.Context(), "Rejected unsigned request",
				"path", c.Request.URL.Path, "err", err)
			c.String(http.StatusUnauthorized, "Invalid request signature")
			c.Abort()
			return
		}

		c.Next()
	}
}
