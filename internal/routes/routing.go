package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/The-Aegis-Project/SideGig/internal/routing"
)

// RegisterRoutingRoutes exposes route resolution. The client calls this
// after every mutating action; the verdict is recomputed each time, never
// cached.
func RegisterRoutingRoutes(r fiber.Router, resolver *routing.Resolver) {
	r.Get("/route", func(c *fiber.Ctx) error {
		route := resolver.Current(c.UserContext(), session(c))
		return c.Status(http.StatusOK).JSON(fiber.Map{"route": route})
	})
}
