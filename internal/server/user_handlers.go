package server

import (
	"forumapi/internal/models"
	"forumapi/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// RegisterUserRequest documents the registration body.
type RegisterUserRequest struct {
	Username string `json:"username" example:"dicoding"`
	Password string `json:"password" example:"secret"`
	Fullname string `json:"fullname" example:"Dicoding Indonesia"`
}

// RegisterUser godoc
// @Summary Register a new user
// @Description Create a user account. The password is stored as a bcrypt hash.
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterUserRequest true "User details"
// @Success 201 {object} models.SuccessResponse{data=object{addedUser=models.AddedUser}}
// @Failure 400 {object} models.ErrorResponse
// @Router /users [post]
func (s *Server) RegisterUser(c *fiber.Ctx) error {
	p, err := payload(c)
	if err != nil {
		return respondError(c, err)
	}
	in, err := validation.RegisterUser(p)
	if err != nil {
		return respondError(c, err)
	}

	added, err := s.userService.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusCreated, fiber.Map{"addedUser": added})
}
