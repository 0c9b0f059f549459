package middleware

import (
	"nutrilog-backend/domain"
	"nutrilog-backend/internal/api/presenters"
	"nutrilog-backend/internal/logging"
	"nutrilog-backend/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

type (
	Middleware interface {
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		CORSMiddleware() fiber.Handler
		RequestIDMiddleware() fiber.Handler
		OnlyRole(role string) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	})
}

// RequestIDMiddleware assigns X-Request-ID and carries it into the request
// context for log correlation.
func (m *middleware) RequestIDMiddleware() fiber.Handler {
	return requestid.New()
}

// AuthMiddleware verifies the bearer token and stores user_id, role and email
// in Locals.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := jwtService.GetClaimsByToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("role", claims.Role)
		c.Locals("email", claims.Email)

		ctx := logging.WithUserID(c.UserContext(), claims.UserID)
		if rid, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && rid != "" {
			ctx = logging.WithRequestID(ctx, rid)
		}
		c.SetUserContext(ctx)

		return c.Next()
	}
}

func (m *middleware) OnlyRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if r, _ := c.Locals("role").(string); r != role {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageUserNotAllowed, domain.ErrUserNotAllowed)
		}
		return c.Next()
	}
}
