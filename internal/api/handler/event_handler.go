package handler

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/pkg/logger"
	"Pulse/internal/pkg/mongo"
	"Pulse/internal/service"
	"io"
	log "log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type EventHandler struct {
	ingestSvc service.IngestService
	archive   mongo.EventArchiveRepo
}

func NewEventHandler(ingestSvc service.IngestService, archive mongo.EventArchiveRepo) *EventHandler {
	return &EventHandler{
		ingestSvc: ingestSvc,
		archive:   archive,
	}
}

// HandleEvent Slack 事件回调入口
// 无关事件（机器人消息、带 subtype 的消息、字段缺失）静默忽略
func (s *EventHandler) HandleEvent(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusOK)
		return
	}

	var envelope dto.EventEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		log.WarnContext(ctx, "Dropped unparseable event payload", "err", err)
		c.Status(http.StatusOK)
		return
	}

	if envelope.Type == "url_verification" {
		c.String(http.StatusOK, envelope.Challenge)
		return
	}

	s.archiveEvent(c, &envelope, body)

	switch envelope.Event.Type {
	case "message":
		s.handleMessage(c, &envelope)
	case "reaction_added":
		s.handleReaction(c, &envelope)
	default:
		c.Status(http.StatusOK)
	}
}

func (s *EventHandler) handleMessage(c *gin.Context, envelope *dto.EventEnvelope) {
	ctx := c.Request.Context()
	evt := envelope.Event

	if evt.Subtype != "" || evt.BotID != "" {
		c.Status(http.StatusOK)
		return
	}
	if envelope.TeamID == "" || evt.User == "" || evt.Channel == "" {
		c.Status(http.StatusOK)
		return
	}

	ts, err := strconv.ParseFloat(evt.TS, 64)
	if err != nil {
		c.Status(http.StatusOK)
		return
	}

	var threadTS *float64
	if evt.ThreadTS != "" {
		if parent, err := strconv.ParseFloat(evt.ThreadTS, 64); err == nil {
			threadTS = &parent
		}
	}

	if err := s.ingestSvc.RecordMessage(ctx, envelope.TeamID, evt.User, evt.Channel, ts, threadTS); err != nil {
		log.ErrorContext(ctx, "Record message failed", "team", envelope.TeamID, "err", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

func (s *EventHandler) handleReaction(c *gin.Context, envelope *dto.EventEnvelope) {
	ctx := c.Request.Context()
	evt := envelope.Event

	if envelope.TeamID == "" || evt.User == "" || evt.Item.Channel == "" {
		c.Status(http.StatusOK)
		return
	}

	if err := s.ingestSvc.RecordReaction(ctx, envelope.TeamID, evt.User, evt.Item.Channel); err != nil {
		log.ErrorContext(ctx, "Record reaction failed", "team", envelope.TeamID, "err", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

// archiveEvent 原始事件落 Mongo，失败只记日志不影响计数
func (s *EventHandler) archiveEvent(c *gin.Context, envelope *dto.EventEnvelope, body []byte) {
	ctx := c.Request.Context()

	traceID := c.GetString(logger.TraceIDKey)
	err := s.archive.SaveEvent(ctx, &mongo.RawEvent{
		TeamID:    envelope.TeamID,
		EventType: envelope.Event.Type,
		Payload:   body,
		TraceID:   traceID,
	})
	if err != nil {
		log.WarnContext(ctx, "Archive event failed", "err", err)
	}
}
