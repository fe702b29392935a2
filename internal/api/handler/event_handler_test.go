package handler_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"Pulse/internal/api/handler"
	"Pulse/internal/pkg/mongo"
)

type recordedMessage struct {
	teamID, userID, channelID string
	ts                        float64
	threadTS                  *float64
}

type fakeIngestService struct {
	messages  []recordedMessage
	reactions []recordedMessage
	err       error
}

func (f *fakeIngestService) RecordMessage(_ context.Context, teamID, userID, channelID string, ts float64, threadTS *float64) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, recordedMessage{teamID, userID, channelID, ts, threadTS})
	return nil
}

func (f *fakeIngestService) RecordReaction(_ context.Context, teamID, userID, channelID string) error {
	if f.err != nil {
		return f.err
	}
	f.reactions = append(f.reactions, recordedMessage{teamID: teamID, userID: userID, channelID: channelID})
	return nil
}

type fakeArchive struct {
	events []*mongo.RawEvent
}

func (f *fakeArchive) SaveEvent(_ context.Context, evt *mongo.RawEvent) error {
	f.events = append(f.events, evt)
	return nil
}

func postEvent(t *testing.T, h *handler.EventHandler, payload string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/slack/events", h.HandleEvent)

	req := httptest.NewRequest(http.MethodPost, "/slack/events", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleEvent(t *testing.T) {
	t.Parallel()

	t.Run("URL verification echoes the challenge", func(t *testing.T) {
		t.Parallel()
		h := handler.NewEventHandler(&fakeIngestService{}, &fakeArchive{})

		rec := postEvent(t, h, `{"type":"url_verification","challenge":"abc123"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body, _ := io.ReadAll(rec.Body)
		require.Equal(t, "abc123", string(body))
	})

	t.Run("Message event is recorded and archived", func(t *testing.T) {
		t.Parallel()
		ingest := &fakeIngestService{}
		archive := &fakeArchive{}
		h := handler.NewEventHandler(ingest, archive)

		rec := postEvent(t, h, `{
			"type":"event_callback","team_id":"T1",
			"event":{"type":"message","user":"U1","channel":"C1","ts":"103.5","thread_ts":"100.0"}
		}`)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, ingest.messages, 1)
		msg := ingest.messages[0]
		require.Equal(t, "T1", msg.teamID)
		require.Equal(t, "U1", msg.userID)
		require.Equal(t, "C1", msg.channelID)
		require.InDelta(t, 103.5, msg.ts, 1e-9)
		require.NotNil(t, msg.threadTS)
		require.InDelta(t, 100.0, *msg.threadTS, 1e-9)

		require.Len(t, archive.events, 1)
		require.Equal(t, "T1", archive.events[0].TeamID)
		require.Equal(t, "message", archive.events[0].EventType)
	})

	t.Run("Bot messages are ignored", func(t *testing.T) {
		t.Parallel()
		ingest := &fakeIngestService{}
		h := handler.NewEventHandler(ingest, &fakeArchive{})

		rec := postEvent(t, h, `{
			"type":"event_callback","team_id":"T1",
			"event":{"type":"message","bot_id":"B9","user":"U1","channel":"C1","ts":"103.5"}
		}`)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, ingest.messages)
	})

	t.Run("Messages with a subtype are ignored", func(t *testing.T) {
		t.Parallel()
		ingest := &fakeIngestService{}
		h := handler.NewEventHandler(ingest, &fakeArchive{})

		rec := postEvent(t, h, `{
			"type":"event_callback","team_id":"T1",
			"event":{"type":"message","subtype":"channel_join","user":"U1","channel":"C1","ts":"103.5"}
		}`)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, ingest.messages)
	})

	t.Run("Missing identity fields are ignored", func(t *testing.T) {
		t.Parallel()
		ingest := &fakeIngestService{}
		h := handler.NewEventHandler(ingest, &fakeArchive{})

		rec := postEvent(t, h, `{
			"type":"event_callback","team_id":"T1",
			"event":{"type":"message","channel":"C1","ts":"103.5"}
		}`)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, ingest.messages)
	})

	t.Run("Reaction event uses the item channel", func(t *testing.T) {
		t.Parallel()
		ingest := &fakeIngestService{}
		h := handler.NewEventHandler(ingest, &fakeArchive{})

		rec := postEvent(t, h, `{
			"type":"event_callback","team_id":"T1",
			"event":{"type":"reaction_added","user":"U1","item":{"type":"message","channel":"C7","ts":"100.0"}}
		}`)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, ingest.reactions, 1)
		require.Equal(t, "C7", ingest.reactions[0].channelID)
	})

	t.Run("Storage failure returns 500", func(t *testing.T) {
		t.Parallel()
		ingest := &fakeIngestService{err: io.ErrUnexpectedEOF}
		h := handler.NewEventHandler(ingest, &fakeArchive{})

		rec := postEvent(t, h, `{
			"type":"event_callback","team_id":"T1",
			"event":{"type":"message","user":"U1","channel":"C1","ts":"103.5"}
		}`)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("Unknown event types are acknowledged silently", func(t *testing.T) {
		t.Parallel()
		ingest := &fakeIngestService{}
		h := handler.NewEventHandler(ingest, &fakeArchive{})

		rec := postEvent(t, h, `{
			"type":"event_callback","team_id":"T1",
			"event":{"type":"channel_created"}
		}`)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, ingest.messages)
		require.Empty(t, ingest.reactions)
	})
}
