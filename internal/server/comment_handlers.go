package server

import (
	"forumapi/internal/middleware"
	"forumapi/internal/models"
	"forumapi/internal/service"
	"forumapi/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AddCommentRequest documents the comment and reply body.
type AddCommentRequest struct {
	Content string `json:"content" example:"sebuah comment"`
}

// CommentsReady godoc
// @Summary Comment service readiness
// @Tags comments
// @Produce json
// @Param threadId path string true "Thread ID"
// @Success 200 {object} models.SuccessResponse
// @Router /threads/{threadId}/comments [get]
func (s *Server) CommentsReady(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(models.SuccessResponse{
		Status:  models.StatusSuccess,
		Message: "Comment service is ready",
	})
}

// AddComment godoc
// @Summary Comment on a thread
// @Tags comments
// @Accept json
// @Produce json
// @Param threadId path string true "Thread ID"
// @Param request body AddCommentRequest true "Comment"
// @Success 201 {object} models.SuccessResponse{data=object{addedComment=models.AddedComment}}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /threads/{threadId}/comments [post]
func (s *Server) AddComment(c *fiber.Ctx) error {
	threadID := c.Params("threadId")

	p, err := payload(c)
	if err != nil {
		return respondError(c, err)
	}
	in, err := validation.NewComment(p, threadID, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}

	added, err := s.commentService.AddComment(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}

	s.publishThreadEvent(threadID, EventCommentAdded, map[string]interface{}{
		"thread_id": threadID,
		"comment":   added,
	})

	return models.RespondWithData(c, fiber.StatusCreated, fiber.Map{"addedComment": added})
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Soft-deletes the comment. Only its owner may delete it.
// @Tags comments
// @Produce json
// @Param threadId path string true "Thread ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /threads/{threadId}/comments/{commentId} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	in := service.DeleteCommentInput{
		ThreadID:  c.Params("threadId"),
		CommentID: c.Params("commentId"),
		Owner:     middleware.UserID(c),
	}

	if err := s.commentService.DeleteComment(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}

	s.publishThreadEvent(in.ThreadID, EventCommentDeleted, map[string]interface{}{
		"thread_id":  in.ThreadID,
		"comment_id": in.CommentID,
	})

	return models.RespondWithSuccess(c)
}

// ToggleCommentLike godoc
// @Summary Like or unlike a comment
// @Description Likes the comment, or removes the caller's like when one exists.
// @Tags comments
// @Produce json
// @Param threadId path string true "Thread ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /threads/{threadId}/comments/{commentId}/likes [put]
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	in := service.ToggleLikeInput{
		ThreadID:  c.Params("threadId"),
		CommentID: c.Params("commentId"),
		UserID:    middleware.UserID(c),
	}

	liked, err := s.commentService.ToggleLike(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}

	s.publishThreadEvent(in.ThreadID, EventCommentLikeToggled, map[string]interface{}{
		"thread_id":  in.ThreadID,
		"comment_id": in.CommentID,
		"liked":      liked,
	})

	return models.RespondWithSuccess(c)
}
