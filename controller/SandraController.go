package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sandra-backend/service"
)

type SandraController struct {
	sandraSvc *service.SandraHelperService
	logger    *zap.Logger
}

func NewSandraController(sandraSvc *service.SandraHelperService, logger *zap.Logger) *SandraController {
	return &SandraController{sandraSvc: sandraSvc, logger: logger}
}

// Token godoc
// @Summary      Issue a Sandra assertion
// @Description  Signs a fresh assertion for calling the Sandra service. Nothing is cached.
// @Tags         sandra
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /sandra/token [post]
func (sc *SandraController) Token(c *fiber.Ctx) error {
	token, err := sc.sandraSvc.AuthToken()
	if err != nil {
		sc.logger.Error("failed to sign sandra token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to sign sandra token"})
	}
	return c.JSON(fiber.Map{"token": token})
}
