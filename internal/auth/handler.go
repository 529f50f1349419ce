package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/The-Aegis-Project/SideGig/internal/account"
	"github.com/The-Aegis-Project/SideGig/internal/routing"
)

// Handler exposes the sign-up/sign-in/refresh/sign-out endpoints.
type Handler struct {
	accounts *account.Service
	tokens   *Service
	resolver *routing.Resolver
}

// NewHandler creates a new auth handler.
func NewHandler(accounts *account.Service, tokens *Service, resolver *routing.Resolver) *Handler {
	return &Handler{accounts: accounts, tokens: tokens, resolver: resolver}
}

type profileDetailsRequest struct {
	Role         string  `json:"role"`
	FullName     string  `json:"full_name"`
	BusinessName string  `json:"business_name"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

func (r profileDetailsRequest) details() (account.ProfileDetails, error) {
	role, err := account.ParseRole(r.Role)
	if err != nil {
		return account.ProfileDetails{}, err
	}
	return account.ProfileDetails{
		Role:         role,
		FullName:     r.FullName,
		BusinessName: r.BusinessName,
		Address:      r.Address,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
	}, nil
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	profileDetailsRequest
}

type sessionResponse struct {
	UserID       string        `json:"user_id"`
	Role         string        `json:"role"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
	Route        routing.Route `json:"route"`
}

// Register signs up an email/password account together with its initial
// profile and returns a token pair plus the resolved route.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	details, err := req.details()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, err := h.accounts.SignUp(c.UserContext(), req.Email, req.Password, details)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return h.respond(c, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates credentials and returns a token pair plus the resolved
// route.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, err := h.accounts.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}
	return h.respond(c, http.StatusOK, user)
}

type socialLoginRequest struct {
	Provider string                 `json:"provider"`
	Subject  string                 `json:"subject"`
	Email    string                 `json:"email"`
	FullName string                 `json:"full_name"`
	Details  *profileDetailsRequest `json:"details"`
}

// SocialLogin signs a user in through an external identity provider. New
// users must supply profile details; without them the request fails and the
// client is expected to collect them and retry.
func (h *Handler) SocialLogin(c *fiber.Ctx) error {
	var req socialLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	var details *account.ProfileDetails
	if req.Details != nil {
		d, err := req.Details.details()
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		details = &d
	}
	user, err := h.accounts.SocialSignIn(c.UserContext(), req.Provider, req.Subject, req.Email, req.FullName, details)
	if err != nil {
		if errors.Is(err, account.ErrMissingProfileDetails) {
			return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return h.respond(c, http.StatusOK, user)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh issues a new access token using a valid refresh token.
func (h *Handler) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	token, exp, err := h.tokens.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"access_token": token, "expires_in": exp})
}

// Logout invalidates existing tokens by bumping the token version.
func (h *Handler) Logout(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return fiber.NewError(http.StatusUnauthorized, "missing session")
	}
	if err := h.tokens.SignOut(c.UserContext(), uid); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "signed_out"})
}

func (h *Handler) respond(c *fiber.Ctx, status int, user account.User) error {
	pair, err := h.tokens.Issue(user)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	sess := account.Session{Authenticated: true, UserID: user.ID}
	return c.Status(status).JSON(sessionResponse{
		UserID:       user.ID,
		Role:         string(user.Role),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		Route:        h.resolver.Current(c.UserContext(), sess),
	})
}
