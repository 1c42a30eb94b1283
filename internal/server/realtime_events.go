package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"forumapi/internal/middleware"
	"forumapi/internal/observability"
)

// Event type constants prevent typos in event names.
const (
	EventThreadCreated      = "thread_created"
	EventCommentAdded       = "comment_added"
	EventCommentDeleted     = "comment_deleted"
	EventCommentLikeToggled = "comment_like_toggled"
	EventReplyAdded         = "reply_added"
	EventReplyDeleted       = "reply_deleted"
)

const publishTimeout = 2 * time.Second

// publishThreadEvent fans an event out to everyone watching threadID.
// With Redis the event goes through pub/sub so every instance relays it;
// otherwise only this process's watchers receive it. Failures are logged.
func (s *Server) publishThreadEvent(threadID, eventType string, payload map[string]interface{}) {
	observability.ForumEventsTotal.WithLabelValues(eventType).Inc()

	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		middleware.Logger.Error("failed to marshal event",
			slog.String("event", eventType),
			slog.String("error", err.Error()),
		)
		return
	}
	message := string(eventJSON)

	if s.notifier == nil {
		if s.threadHub != nil {
			s.threadHub.Broadcast(threadID, message)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := s.notifier.PublishThread(ctx, threadID, message); err != nil {
		middleware.Logger.Warn("failed to publish event",
			slog.String("event", eventType),
			slog.String("thread_id", threadID),
			slog.String("error", err.Error()),
		)
	}
}
