package server

import (
	"forumapi/internal/middleware"
	"forumapi/internal/models"
	"forumapi/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AddThreadRequest documents the thread body.
type AddThreadRequest struct {
	Title string `json:"title" example:"sebuah thread"`
	Body  string `json:"body" example:"isi body thread"`
}

// AddThread godoc
// @Summary Create a thread
// @Tags threads
// @Accept json
// @Produce json
// @Param request body AddThreadRequest true "Thread"
// @Success 201 {object} models.SuccessResponse{data=object{addedThread=models.AddedThread}}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /threads [post]
func (s *Server) AddThread(c *fiber.Ctx) error {
	p, err := payload(c)
	if err != nil {
		return respondError(c, err)
	}
	in, err := validation.NewThread(p, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}

	added, err := s.threadService.AddThread(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}

	s.publishThreadEvent(added.ID, EventThreadCreated, map[string]interface{}{
		"thread": added,
	})

	return models.RespondWithData(c, fiber.StatusCreated, fiber.Map{"addedThread": added})
}

// GetThreadDetail godoc
// @Summary Get thread detail
// @Description Thread with its comments in date order, each with its replies. Deleted content is redacted.
// @Tags threads
// @Produce json
// @Param threadId path string true "Thread ID"
// @Success 200 {object} models.SuccessResponse{data=object{thread=models.ThreadDetail}}
// @Failure 404 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /threads/{threadId} [get]
func (s *Server) GetThreadDetail(c *fiber.Ctx) error {
	detail, err := s.threadService.GetThreadDetail(c.UserContext(), c.Params("threadId"))
	if err != nil {
		return respondError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{"thread": detail})
}
