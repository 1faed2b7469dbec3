package controller

import (
	"github.com/gofiber/fiber/v2"

	"sandra-backend/dto"
	"sandra-backend/middleware"
)

type ProfileController struct{}

func NewProfileController() *ProfileController {
	return &ProfileController{}
}

// Me godoc
// @Summary      Current user
// @Tags         profile
// @Produce      json
// @Success      200  {object}  dto.AuthClaims
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (pc *ProfileController) Me(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok || user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	return c.JSON(user)
}

// Features godoc
// @Summary      Features enabled for this request
// @Tags         profile
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /features [get]
func (pc *ProfileController) Features(c *fiber.Ctx) error {
	features, ok := middleware.Features(c)
	if !ok {
		features = dto.Features{}
	}
	return c.JSON(features)
}
