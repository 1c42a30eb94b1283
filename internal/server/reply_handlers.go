package server

import (
	"forumapi/internal/middleware"
	"forumapi/internal/models"
	"forumapi/internal/service"
	"forumapi/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AddReply godoc
// @Summary Reply to a comment
// @Tags replies
// @Accept json
// @Produce json
// @Param threadId path string true "Thread ID"
// @Param commentId path string true "Comment ID"
// @Param request body AddCommentRequest true "Reply"
// @Success 201 {object} models.SuccessResponse{data=object{addedReply=models.AddedReply}}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /threads/{threadId}/comments/{commentId}/replies [post]
func (s *Server) AddReply(c *fiber.Ctx) error {
	threadID := c.Params("threadId")

	p, err := payload(c)
	if err != nil {
		return respondError(c, err)
	}
	reply, err := validation.NewReply(p, c.Params("commentId"), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}

	added, err := s.replyService.AddReply(c.UserContext(), service.AddReplyInput{
		ThreadID: threadID,
		Reply:    reply,
	})
	if err != nil {
		return respondError(c, err)
	}

	s.publishThreadEvent(threadID, EventReplyAdded, map[string]interface{}{
		"thread_id":  threadID,
		"comment_id": reply.CommentID,
		"reply":      added,
	})

	return models.RespondWithData(c, fiber.StatusCreated, fiber.Map{"addedReply": added})
}

// DeleteReply godoc
// @Summary Delete a reply
// @Description Soft-deletes the reply. Only its owner may delete it.
// @Tags replies
// @Produce json
// @Param threadId path string true "Thread ID"
// @Param commentId path string true "Comment ID"
// @Param replyId path string true "Reply ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /threads/{threadId}/comments/{commentId}/replies/{replyId} [delete]
func (s *Server) DeleteReply(c *fiber.Ctx) error {
	in := service.DeleteReplyInput{
		ThreadID:  c.Params("threadId"),
		CommentID: c.Params("commentId"),
		ReplyID:   c.Params("replyId"),
		Owner:     middleware.UserID(c),
	}

	if err := s.replyService.DeleteReply(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}

	s.publishThreadEvent(in.ThreadID, EventReplyDeleted, map[string]interface{}{
		"thread_id":  in.ThreadID,
		"comment_id": in.CommentID,
		"reply_id":   in.ReplyID,
	})

	return models.RespondWithSuccess(c)
}
