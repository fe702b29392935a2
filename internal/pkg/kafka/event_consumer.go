package kafka

import (
	"Pulse/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// EventConsumer 消费事件总线上的归一化聊天事件并入账
type EventConsumer struct {
	ingestSvc service.IngestService
}

func NewEventConsumer(ingestSvc service.IngestService) *EventConsumer {
	return &EventConsumer{ingestSvc: ingestSvc}
}

func (s *EventConsumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (s *EventConsumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (s *EventConsumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessageBatch(session, claim, s.handle)
}

func (s *EventConsumer) handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var evt ChatEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		// 无法解析的消息重试也没用，丢弃
		log.WarnContext(ctx, "drop unparseable chat event", "offset", msg.Offset, "err", err)
		return nil
	}

	if !evt.Valid() {
		log.WarnContext(ctx, "drop incomplete chat event", "offset", msg.Offset, "kind", evt.Kind)
		return nil
	}

	switch evt.Kind {
	case EventKindMessage:
		return s.ingestSvc.RecordMessage(ctx, evt.TeamID, evt.UserID, evt.ChannelID, evt.Timestamp, evt.ThreadTS)
	case EventKindReaction:
		return s.ingestSvc.RecordReaction(ctx, evt.TeamID, evt.UserID, evt.ChannelID)
	}
	return nil
}
