package middleware

import (
	"crypto/rsa"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"sandra-backend/dto"
	"sandra-backend/util"
)

// Locals keys shared between the attaching middlewares and the accessors.
const (
	UserKey     = "user"
	FeaturesKey = "additional-feature"
)

// AuthUser returns the user a prior middleware attached to the request.
// ok is false when nothing was attached; callers decide whether that is fatal.
func AuthUser(c *fiber.Ctx) (user *dto.AuthClaims, ok bool) {
	user, ok = c.Locals(UserKey).(*dto.AuthClaims)
	return user, ok
}

// Features returns the feature map attached to the request, if any.
func Features(c *fiber.Ctx) (features dto.Features, ok bool) {
	features, ok = c.Locals(FeaturesKey).(dto.Features)
	return features, ok
}

// AttachUser verifies an optional bearer token and attaches its claims.
// Requests without a valid token pass through untouched.
func AttachUser(publicKey *rsa.PublicKey) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if publicKey == nil {
			return c.Next()
		}

		token, found := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if !found || token == "" {
			return c.Next()
		}

		if claims, err := util.ParseAccessToken(token, publicKey); err == nil {
			c.Locals(UserKey, claims)
		}
		return c.Next()
	}
}

// FeatureSource is anything that can list the current feature flags.
type FeatureSource interface {
	Features() (dto.Features, error)
}

// AttachFeatures attaches the feature map. A lookup failure is logged and the request continues without it.
func AttachFeatures(source FeatureSource, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		features, err := source.Features()
		if err != nil {
			logger.Warn("failed to load features", zap.Error(err), zap.String("path", utils.CopyString(c.Path())))
			return c.Next()
		}
		c.Locals(FeaturesKey, features)
		return c.Next()
	}
}

// RequireUser rejects requests without an attached user, or without one of roles when given.
func RequireUser(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := AuthUser(c)
		if !ok || user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		if len(roles) == 0 {
			return c.Next()
		}
		for _, role := range roles {
			if user.HasRole(role) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient role"})
	}
}
