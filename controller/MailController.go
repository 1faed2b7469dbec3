package controller

import (
	"errors"
	"io/fs"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sandra-backend/dto"
	"sandra-backend/middleware"
	"sandra-backend/service"
)

type MailController struct {
	mailSvc *service.MailService
	logger  *zap.Logger
}

func NewMailController(mailSvc *service.MailService, logger *zap.Logger) *MailController {
	return &MailController{mailSvc: mailSvc, logger: logger}
}

// SendTemplate godoc
// @Summary      Send a templated mail
// @Description  Renders the named template with data and delivers it from the fixed sender address.
// @Tags         mail
// @Accept       json
// @Produce      json
// @Param        payload body dto.TemplateMail true "Mail payload"
// @Success      200  {array}   dto.MailSendResult
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /mail/template [post]
func (mc *MailController) SendTemplate(c *fiber.Ctx) error {
	req := middleware.Body[dto.TemplateMail](c)

	results, err := mc.mailSvc.SendTemplate(*req)
	if err == nil {
		return c.JSON(results)
	}

	var perr *service.ProviderError
	switch {
	case errors.Is(err, service.ErrInvalidTemplateName):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, fs.ErrNotExist):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "template not found"})
	case errors.As(err, &perr):
		mc.logger.Error("mail provider rejected message", zap.Error(err), zap.String("to", req.To))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": perr.Message})
	case errors.Is(err, service.ErrMailTransport):
		mc.logger.Error("mail provider unreachable", zap.Error(err), zap.String("to", req.To))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "mail provider unreachable"})
	default:
		mc.logger.Error("failed to send mail", zap.Error(err), zap.String("to", req.To), zap.String("template", req.Template))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
}
