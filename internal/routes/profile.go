package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/The-Aegis-Project/SideGig/internal/account"
	"github.com/The-Aegis-Project/SideGig/internal/profile"
	"github.com/The-Aegis-Project/SideGig/internal/routing"
)

type seekerResponse struct {
	UserID            string     `json:"user_id"`
	FullName          string     `json:"full_name"`
	SkillBadges       []string   `json:"skill_badges"`
	IsIDVerified      bool       `json:"is_id_verified"`
	IDMethod          string     `json:"id_verification_method,omitempty"`
	IDVerifiedAt      *time.Time `json:"id_verification_date,omitempty"`
	QuizScore         *int       `json:"quiz_score,omitempty"`
	QuizCompletedAt   *time.Time `json:"quiz_completed_at,omitempty"`
	IsContactVerified bool       `json:"is_contact_verified"`
	ContactMethod     string     `json:"contact_verification_method,omitempty"`
	ContactConfirmed  *time.Time `json:"contact_verification_confirmed_at,omitempty"`
	TrustComplete     bool       `json:"trust_complete"`
}

func newSeekerResponse(p profile.SeekerProfile) seekerResponse {
	return seekerResponse{
		UserID:            p.UserID,
		FullName:          p.FullName,
		SkillBadges:       p.SkillBadges,
		IsIDVerified:      p.IsIDVerified,
		IDMethod:          string(p.IDVerificationMethod),
		IDVerifiedAt:      p.IDVerificationDate,
		QuizScore:         p.QuizScore,
		QuizCompletedAt:   p.QuizCompletedAt,
		IsContactVerified: p.IsContactVerified,
		ContactMethod:     string(p.ContactVerificationMethod),
		ContactConfirmed:  p.ContactConfirmedAt,
		TrustComplete:     routing.SeekerComplete(p),
	}
}

type businessResponse struct {
	UserID           string     `json:"user_id"`
	BusinessName     string     `json:"business_name"`
	Address          string     `json:"address"`
	Latitude         float64    `json:"latitude"`
	Longitude        float64    `json:"longitude"`
	IsVerifiedLocal  bool       `json:"is_verified_local"`
	Method           string     `json:"verification_method,omitempty"`
	LinkedPlatform   string     `json:"linked_platform,omitempty"`
	LinkedPlatformID string     `json:"linked_platform_id,omitempty"`
	MailConfirmed    *time.Time `json:"mail_verification_confirmed_at,omitempty"`
	TrustComplete    bool       `json:"trust_complete"`
}

func newBusinessResponse(p profile.BusinessProfile) businessResponse {
	return businessResponse{
		UserID:           p.UserID,
		BusinessName:     p.BusinessName,
		Address:          p.Address,
		Latitude:         p.Latitude,
		Longitude:        p.Longitude,
		IsVerifiedLocal:  p.IsVerifiedLocal,
		Method:           string(p.VerificationMethod),
		LinkedPlatform:   string(p.LinkedPlatform),
		LinkedPlatformID: p.LinkedPlatformID,
		MailConfirmed:    p.MailConfirmedAt,
		TrustComplete:    routing.BusinessComplete(p),
	}
}

// RegisterProfileRoutes wires profile CRUD, role selection and the basics
// quiz. Verification flags are never writable through these endpoints; they
// only move through the verification services.
func RegisterProfileRoutes(r fiber.Router, accounts *account.Service, profiles *profile.Service, logger *slog.Logger) {
	r.Get("/role", func(c *fiber.Ctx) error {
		role, err := accounts.Role(c.UserContext(), session(c).UserID)
		if err != nil {
			return fail(err)
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"role": string(role)})
	})

	r.Post("/role", func(c *fiber.Ctx) error {
		var req struct {
			UserID string `json:"user_id"`
			Role   string `json:"role"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if err := accounts.SetRole(c.UserContext(), session(c), req.UserID, account.Role(req.Role)); err != nil {
			return fail(err)
		}
		logger.Info("role selected", slog.String("user_id", req.UserID), slog.String("role", req.Role))
		return c.Status(http.StatusOK).JSON(fiber.Map{"role": req.Role})
	})

	r.Get("/profiles/seeker", func(c *fiber.Ctx) error {
		p, err := profiles.Seeker(c.UserContext(), session(c).UserID)
		if err != nil {
			return fail(err)
		}
		return c.Status(http.StatusOK).JSON(newSeekerResponse(p))
	})

	r.Post("/profiles/seeker", func(c *fiber.Ctx) error {
		var req struct {
			FullName string `json:"full_name"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		p, err := profiles.CreateSeeker(c.UserContext(), session(c).UserID, req.FullName)
		if err != nil {
			return fail(err)
		}
		return c.Status(http.StatusCreated).JSON(newSeekerResponse(p))
	})

	r.Put("/profiles/seeker", func(c *fiber.Ctx) error {
		var req struct {
			FullName    string   `json:"full_name"`
			SkillBadges []string `json:"skill_badges"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		p, err := profiles.Seeker(c.UserContext(), session(c).UserID)
		if err != nil {
			return fail(err)
		}
		if req.FullName != "" {
			p.FullName = req.FullName
		}
		if req.SkillBadges != nil {
			p.SkillBadges = req.SkillBadges
		}
		updated, err := profiles.UpdateSeeker(c.UserContext(), p)
		if err != nil {
			return fail(err)
		}
		return c.Status(http.StatusOK).JSON(newSeekerResponse(updated))
	})

	r.Post("/quiz/complete", func(c *fiber.Ctx) error {
		var req struct {
			Score int `json:"score"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		p, err := profiles.CompleteBasicsQuiz(c.UserContext(), session(c).UserID, req.Score)
		if err != nil {
			return fail(err)
		}
		return c.Status(http.StatusOK).JSON(newSeekerResponse(p))
	})

	r.Get("/profiles/business", func(c *fiber.Ctx) error {
		p, err := profiles.Business(c.UserContext(), session(c).UserID)
		if err != nil {
			return fail(err)
		}
		return c.Status(http.StatusOK).JSON(newBusinessResponse(p))
	})

	r.Post("/profiles/business", func(c *fiber.Ctx) error {
		var req struct {
			BusinessName string  `json:"business_name"`
			Address      string  `json:"address"`
			Latitude     float64 `json:"latitude"`
			Longitude    float64 `json:"longitude"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		p, err := profiles.CreateBusiness(c.UserContext(), session(c).UserID, req.BusinessName, req.Address, req.Latitude, req.Longitude)
		if err != nil {
			return fail(err)
		}
		return c.Status(http.StatusCreated).JSON(newBusinessResponse(p))
	})

	r.Put("/profiles/business", func(c *fiber.Ctx) error {
		var req struct {
			BusinessName string   `json:"business_name"`
			Address      string   `json:"address"`
			Latitude     *float64 `json:"latitude"`
			Longitude    *float64 `json:"longitude"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		p, err := profiles.Business(c.UserContext(), session(c).UserID)
		if err != nil {
			return fail(err)
		}
		if req.BusinessName != "" {
			p.BusinessName = req.BusinessName
		}
		if req.Address != "" {
			p.Address = req.Address
		}
		if req.Latitude != nil {
			p.Latitude = *req.Latitude
		}
		if req.Longitude != nil {
			p.Longitude = *req.Longitude
		}
		updated, err := profiles.UpdateBusiness(c.UserContext(), p)
		if err != nil {
			return fail(err)
		}
		return c.Status(http.StatusOK).JSON(newBusinessResponse(updated))
	})
}
