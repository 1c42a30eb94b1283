package server

import (
	"forumapi/internal/models"
	"forumapi/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// LoginRequest documents the login body.
type LoginRequest struct {
	Username string `json:"username" example:"dicoding"`
	Password string `json:"password" example:"secret"`
}

// RefreshTokenRequest documents the refresh and logout body.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Login godoc
// @Summary Log in
// @Description Exchange credentials for an access token and a persisted refresh token.
// @Tags authentications
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 201 {object} models.SuccessResponse{data=models.NewAuth}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /authentications [post]
func (s *Server) Login(c *fiber.Ctx) error {
	p, err := payload(c)
	if err != nil {
		return respondError(c, err)
	}
	in, err := validation.UserLogin(p)
	if err != nil {
		return respondError(c, err)
	}

	pair, err := s.authService.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusCreated, pair)
}

// RefreshAccessToken godoc
// @Summary Refresh access token
// @Description Issue a new access token for a persisted refresh token. The refresh token is not rotated.
// @Tags authentications
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} models.SuccessResponse{data=object{accessToken=string}}
// @Failure 400 {object} models.ErrorResponse
// @Router /authentications [put]
func (s *Server) RefreshAccessToken(c *fiber.Ctx) error {
	p, err := payload(c)
	if err != nil {
		return respondError(c, err)
	}
	token, err := validation.RefreshToken(p)
	if err != nil {
		return respondError(c, err)
	}

	access, err := s.authService.Refresh(c.UserContext(), token)
	if err != nil {
		return respondError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{"accessToken": access})
}

// Logout godoc
// @Summary Log out
// @Description Remove a persisted refresh token.
// @Tags authentications
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /authentications [delete]
func (s *Server) Logout(c *fiber.Ctx) error {
	p, err := payload(c)
	if err != nil {
		return respondError(c, err)
	}
	token, err := validation.RefreshToken(p)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.authService.Logout(c.UserContext(), token); err != nil {
		return respondError(c, err)
	}

	return models.RespondWithSuccess(c)
}
