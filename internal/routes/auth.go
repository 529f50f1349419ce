package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/The-Aegis-Project/SideGig/internal/auth"
)

// RegisterAuthRoutes wires the public sign-up/sign-in endpoints. The rate
// limiter guards the credential-bearing routes.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, limiter fiber.Handler) {
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", limiter, h.Login)
	r.Post("/auth/social", limiter, h.SocialLogin)
	r.Post("/auth/refresh", h.Refresh)
}
