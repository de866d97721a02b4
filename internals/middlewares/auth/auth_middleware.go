// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"bimbelku_backend/internals/configs"
	authModel "bimbelku_backend/internals/features/users/auth/model"
	userModel "bimbelku_backend/internals/features/users/user/model"
	helper "bimbelku_backend/internals/helpers"
)

// Paths skipped by auth (webhooks etc.)
var skipPaths = map[string]struct{}{
	"/api/billing/midtrans/notification": {},
}

func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Skip configured paths (webhooks)
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		// 2) Authorization header or cookie
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		helper.SetRawAccessToken(c, tokenString)

		// 3) Blacklist check (once per request)
		if c.Locals("token_checked") == nil {
			var existing authModel.TokenBlacklist
			if err := db.Where("token = ? AND deleted_at IS NULL", tokenString).First(&existing).Error; err == nil {
				log.Println("[WARNING] Token found in blacklist")
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Println("[ERROR] DB error on blacklist check:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			c.Locals("token_checked", true)
		}

		// 4) Parse & verify JWT
		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{"HS256"}}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			log.Println("[ERROR] Token parse failed:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// 5) exp validation (small leeway for clock skew)
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// 6) user_id + active check
		userID, err := extractUserID(claims)
		if err != nil {
			log.Println("[ERROR] user_id:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}

		var usr userModel.UserModel
		if err := db.Select("user_id, user_center_id, user_email, user_role, user_is_active").
			Where("user_id = ?", userID).
			First(&usr).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			log.Println("[ERROR] user lookup:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !usr.UserIsActive {
			return fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
		}

		// 7) Store claims in context for downstream handlers
		c.Locals(LocUserID, usr.UserID.String())
		c.Locals(LocUserRole, usr.UserRole)
		c.Locals(LocUserEmail, usr.UserEmail)
		c.Locals(LocCenterID, usr.UserCenterID.String())

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v, nil
	}
	auth := c.Get("Authorization")
	const p = "Bearer "
	if strings.HasPrefix(auth, p) && len(auth) > len(p) {
		return strings.TrimSpace(auth[len(p):]), nil
	}
	return "", errors.New("Unauthorized - Missing token")
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("missing exp claim")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return errors.New("invalid exp claim")
	}
	exp := time.Unix(int64(expFloat), 0)
	if time.Now().After(exp.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}
