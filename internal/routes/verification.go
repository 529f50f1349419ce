package routes

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/The-Aegis-Project/SideGig/internal/idcheck"
	"github.com/The-Aegis-Project/SideGig/internal/linking"
	"github.com/The-Aegis-Project/SideGig/internal/profile"
	"github.com/The-Aegis-Project/SideGig/internal/verification"
)

// RegisterVerificationRoutes wires the three trust flows: contact/mail
// codes, platform linking and the external ID-proofing hand-off.
func RegisterVerificationRoutes(r fiber.Router, contact, mail *verification.Service, links *linking.Service, ids *idcheck.Adapter, logger *slog.Logger) {
	r.Post("/verification/contact/initiate", func(c *fiber.Ctx) error {
		var req struct {
			Destination string `json:"destination"`
			Method      string `json:"method"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		method, err := profile.ParseContactMethod(req.Method)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		uid := session(c).UserID
		a, err := contact.Initiate(c.UserContext(), uid, verification.Request{Destination: req.Destination, Method: method})
		if err != nil {
			return fail(err)
		}
		logger.Info("contact verification initiated",
			slog.String("user_id", uid),
			slog.String("method", req.Method),
		)
		return c.Status(http.StatusAccepted).JSON(fiber.Map{
			"initiated_at": a.InitiatedAt,
			"expires_at":   a.InitiatedAt.Add(verification.CodeValidity),
		})
	})

	r.Post("/verification/contact/confirm", func(c *fiber.Ctx) error {
		var req struct {
			Code string `json:"code"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if err := contact.Confirm(c.UserContext(), session(c).UserID, req.Code); err != nil {
			return fail(err)
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"status": "contact_verified"})
	})

	r.Post("/verification/mail/initiate", func(c *fiber.Ctx) error {
		var req struct {
			Address string `json:"address"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		uid := session(c).UserID
		a, err := mail.Initiate(c.UserContext(), uid, verification.Request{Destination: req.Address})
		if err != nil {
			return fail(err)
		}
		logger.Info("mail verification initiated", slog.String("user_id", uid))
		return c.Status(http.StatusAccepted).JSON(fiber.Map{
			"initiated_at": a.InitiatedAt,
			"expires_at":   a.InitiatedAt.Add(verification.CodeValidity),
		})
	})

	r.Post("/verification/mail/confirm", func(c *fiber.Ctx) error {
		var req struct {
			Code string `json:"code"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if err := mail.Confirm(c.UserContext(), session(c).UserID, req.Code); err != nil {
			return fail(err)
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"status": "business_verified"})
	})

	r.Post("/verification/link", func(c *fiber.Ctx) error {
		var req struct {
			Platform     string  `json:"platform"`
			ExternalID   string  `json:"external_id"`
			BusinessName string  `json:"business_name"`
			Address      string  `json:"address"`
			Latitude     float64 `json:"latitude"`
			Longitude    float64 `json:"longitude"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		platform, err := profile.ParsePlatform(req.Platform)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		uid := session(c).UserID
		p, err := links.LinkExternalProfile(c.UserContext(), uid, linking.LinkInput{
			Platform:     platform,
			ExternalID:   req.ExternalID,
			BusinessName: req.BusinessName,
			Address:      req.Address,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
		})
		if err != nil {
			return fail(err)
		}
		logger.Info("business profile linked",
			slog.String("user_id", uid),
			slog.String("platform", req.Platform),
		)
		return c.Status(http.StatusOK).JSON(newBusinessResponse(p))
	})

	r.Post("/verification/id/initiate", func(c *fiber.Ctx) error {
		handle, err := ids.Initiate(c.UserContext(), session(c).UserID)
		if err != nil {
			return fail(err)
		}
		return c.Status(http.StatusAccepted).JSON(fiber.Map{"session_url": handle})
	})

	r.Post("/verification/id/complete", func(c *fiber.Ctx) error {
		var req struct {
			Result string `json:"result"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		p, err := ids.Complete(c.UserContext(), session(c).UserID, []byte(req.Result))
		if err != nil {
			return fail(err)
		}
		return c.Status(http.StatusOK).JSON(newSeekerResponse(p))
	})

	r.Get("/verification/id/status", func(c *fiber.Ctx) error {
		status, err := ids.Current(c.UserContext(), session(c).UserID)
		if err != nil {
			return fail(err)
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"status": status})
	})
}
