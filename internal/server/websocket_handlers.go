package server

import (
	"log/slog"

	"forumapi/internal/middleware"
	"forumapi/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// requireUpgrade rejects plain HTTP requests on WebSocket routes.
func (s *Server) requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return models.RespondWithError(c, fiber.StatusUpgradeRequired,
			models.NewValidationError("websocket upgrade required"))
	}
	return c.Next()
}

// resolveWatchedThread answers 404 before the upgrade when the thread does not exist.
func (s *Server) resolveWatchedThread(c *fiber.Ctx) error {
	threadID := c.Params("threadId")
	if err := s.threadRepo.VerifyThreadExists(c.UserContext(), threadID); err != nil {
		return respondError(c, err)
	}
	c.Locals("threadID", threadID)
	return c.Next()
}

// WatchThreadHandler streams forum events for one thread to the connected client.
// Watching is public, the same as reading the thread.
// @Summary Watch a thread
// @Description WebSocket stream of {type, payload} events for the thread.
// @Tags threads
// @Param threadId path string true "Thread ID"
// @Success 101 {string} string "Switching Protocols"
// @Failure 404 {object} models.ErrorResponse
// @Failure 426 {object} models.ErrorResponse
// @Router /ws/threads/{threadId} [get]
func (s *Server) WatchThreadHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		threadID, _ := conn.Locals("threadID").(string)

		client, err := s.threadHub.Register(threadID, conn)
		if err != nil {
			middleware.Logger.Warn("websocket watcher rejected",
				slog.String("thread_id", threadID),
				slog.String("error", err.Error()),
			)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}
