package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
	"github.com/olegnck404/mao-admin-panel/modules/user"
)

const (
	// CallerContextKey is the key used to store the resolved caller in the Fiber context.
	CallerContextKey = "caller"
)

// AuthMiddleware creates a middleware that resolves Bearer tokens into callers.
func AuthMiddleware(userPort user.UserPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Authorization header is required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Token is required",
			})
		}

		caller, resolved, err := userPort.ResolveCaller(c.UserContext(), token)
		if err != nil || !resolved {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid or expired token",
			})
		}

		c.Locals(CallerContextKey, caller)
		return c.Next()
	}
}

// callerFromCtx returns the caller stored by AuthMiddleware.
func callerFromCtx(c *fiber.Ctx) (staff.Caller, bool) {
	caller, ok := c.Locals(CallerContextKey).(staff.Caller)
	return caller, ok
}
