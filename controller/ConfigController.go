package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sandra-backend/dto"
	"sandra-backend/middleware"
	"sandra-backend/service"
	"sandra-backend/util"
)

type ConfigController struct {
	configSvc *service.ConfigService
	logger    *zap.Logger
}

func NewConfigController(configSvc *service.ConfigService, logger *zap.Logger) *ConfigController {
	return &ConfigController{configSvc: configSvc, logger: logger}
}

// List godoc
// @Summary      List config entries
// @Tags         config
// @Produce      json
// @Success      200  {array}   model.Config
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /configs [get]
func (cc *ConfigController) List(c *fiber.Ctx) error {
	rows, err := cc.configSvc.List()
	if err != nil {
		cc.logger.Error("failed to list configs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list configs"})
	}
	return c.JSON(rows)
}

// Get godoc
// @Summary      Get a config entry
// @Tags         config
// @Produce      json
// @Param        id   path      string  true  "Config ID (UUID)"
// @Success      200  {object}  model.Config
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /configs/{id} [get]
func (cc *ConfigController) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return middleware.RespondValidation(c, err)
	}

	cfg, err := cc.configSvc.Get(id)
	if errors.Is(err, service.ErrConfigNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "config not found"})
	}
	if err != nil {
		cc.logger.Error("failed to load config", zap.Error(err), zap.String("id", id.String()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load config"})
	}
	return c.JSON(cfg)
}

// Set godoc
// @Summary      Create or update a config entry
// @Description  Upserts by key. The value is replaced in place when the key already exists.
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        payload body dto.SetConfigRequest true "Config payload"
// @Success      200  {object}  model.Config
// @Failure      400  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string
// @Router       /configs [put]
func (cc *ConfigController) Set(c *fiber.Ctx) error {
	req := middleware.Body[dto.SetConfigRequest](c)

	cfg, err := cc.configSvc.Set(req.Key, req.Value)
	if errors.Is(err, service.ErrConfigKeyTaken) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "config key was created concurrently, retry"})
	}
	if err != nil {
		cc.logger.Error("failed to set config", zap.Error(err), zap.String("key", req.Key))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save config"})
	}
	return c.JSON(cfg)
}

// Delete godoc
// @Summary      Soft-delete a config entry
// @Tags         config
// @Param        id   path      string  true  "Config ID (UUID)"
// @Success      204
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /configs/{id} [delete]
func (cc *ConfigController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return middleware.RespondValidation(c, err)
	}

	err = cc.configSvc.Delete(id)
	if errors.Is(err, service.ErrConfigNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "config not found"})
	}
	if err != nil {
		cc.logger.Error("failed to delete config", zap.Error(err), zap.String("id", id.String()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete config"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseID validates the :id route param as a UUID.
func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	var req dto.UUIDRequest
	if err := c.ParamsParser(&req); err != nil {
		return uuid.Nil, err
	}
	if err := util.ValidateStruct(&req); err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(req.ID)
}
