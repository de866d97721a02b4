package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/features/users/auth/dto"
	authService "bimbelku_backend/internals/features/users/auth/service"
	userDto "bimbelku_backend/internals/features/users/user/dto"
	helper "bimbelku_backend/internals/helpers"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validate: validator.New()}
}

// 🟢 POST /api/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res, err := authService.Register(ctrl.DB, req.CenterName, req.UserName, req.Email, req.Password,
		helper.ClientIP(c), helper.UserAgent(c))
	if err != nil {
		return fromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Registered", loginPayload(res))
}

// 🟢 POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res, err := authService.Login(ctrl.DB, req.Email, req.Password, helper.ClientIP(c), helper.UserAgent(c))
	if err != nil {
		return fromServiceError(c, err)
	}
	setAuthCookies(c, res)
	return helper.JsonOK(c, "Logged in", loginPayload(res))
}

// 🟢 POST /api/auth/login/google
func (ctrl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res, err := authService.LoginGoogle(ctrl.DB, req.IDToken, helper.ClientIP(c), helper.UserAgent(c))
	if err != nil {
		return fromServiceError(c, err)
	}
	setAuthCookies(c, res)
	return helper.JsonOK(c, "Logged in", loginPayload(res))
}

// 🟢 POST /api/auth/refresh
func (ctrl *AuthController) Refresh(c *fiber.Ctx) error {
	refresh := helper.GetRefreshTokenFromCookie(c)
	if refresh == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.BodyParser(&body)
		refresh = body.RefreshToken
	}
	if refresh == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing refresh token")
	}

	res, err := authService.Refresh(ctrl.DB, refresh, helper.ClientIP(c), helper.UserAgent(c))
	if err != nil {
		return fromServiceError(c, err)
	}
	setAuthCookies(c, res)
	return helper.JsonOK(c, "Token refreshed", loginPayload(res))
}

// 🟢 POST /api/auth/logout
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	userID, err := authMw.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	raw := helper.GetRawAccessToken(c)
	// blacklist entry expires together with the token's own TTL
	if err := authService.Logout(ctrl.DB, userID.String(), raw, time.Now().Add(24*time.Hour)); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Logout failed")
	}

	c.ClearCookie("access_token", "refresh_token")
	return helper.JsonOK(c, "Logged out", nil)
}

func loginPayload(res *authService.LoginResult) fiber.Map {
	return fiber.Map{
		"user": userDto.ToUserResponse(res.User),
		"tokens": dto.TokenResponse{
			AccessToken:  res.AccessToken,
			RefreshToken: res.RefreshToken,
			ExpiresAt:    res.ExpiresAt.Format(time.RFC3339),
		},
	}
}

func setAuthCookies(c *fiber.Ctx, res *authService.LoginResult) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    res.AccessToken,
		Expires:  res.ExpiresAt,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    res.RefreshToken,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func fromServiceError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
}
