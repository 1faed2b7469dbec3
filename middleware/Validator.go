package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sandra-backend/util"
)

const bodyKey = "body"

// ValidateBody parses the JSON body into T, validates it and stores it for the handler (see Body).
func ValidateBody[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body T
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
		}

		if err := util.ValidateStruct(&body); err != nil {
			return RespondValidation(c, err)
		}

		c.Locals(bodyKey, &body)
		return c.Next()
	}
}

// Body returns the payload stored by ValidateBody[T].
func Body[T any](c *fiber.Ctx) *T {
	body, _ := c.Locals(bodyKey).(*T)
	return body
}

// RespondValidation writes a 400 listing every failed field.
func RespondValidation(c *fiber.Ctx, err error) error {
	var verr *util.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"errors": verr.Fields,
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}
