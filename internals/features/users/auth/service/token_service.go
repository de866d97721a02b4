package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"bimbelku_backend/internals/configs"
	authModel "bimbelku_backend/internals/features/users/auth/model"
	userModel "bimbelku_backend/internals/features/users/user/model"
)

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET is not set")
	}
	return secret, nil
}

// CreateAccessToken signs the staff access JWT carrying id/role/center.
func CreateAccessToken(usr *userModel.UserModel) (string, time.Time, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", time.Time{}, err
	}
	now := nowUTC()
	exp := now.Add(accessTTLDefault)
	claims := jwt.MapClaims{
		"sub":       usr.UserID.String(),
		"role":      usr.UserRole,
		"center_id": usr.UserCenterID.String(),
		"email":     usr.UserEmail,
		"typ":       "access",
		"iat":       now.Unix(),
		"exp":       exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return token, exp, err
}

// CreateRefreshToken signs the refresh JWT and persists its HMAC hash.
func CreateRefreshToken(db *gorm.DB, usr *userModel.UserModel, ip, userAgent string) (string, error) {
	secret, err := getRefreshSecret()
	if err != nil {
		return "", err
	}
	now := nowUTC()
	exp := now.Add(refreshTTLDefault)
	claims := jwt.MapClaims{
		"sub": usr.UserID.String(),
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	row := authModel.RefreshToken{
		UserID:    usr.UserID,
		TokenHash: computeRefreshHash(token, secret),
		ExpiresAt: exp,
		UserAgent: strptr(userAgent),
		IP:        strptr(ip),
	}
	if err := db.Create(&row).Error; err != nil {
		return "", err
	}
	return token, nil
}

// VerifyRefreshToken checks signature + the stored (unrevoked) hash row.
func VerifyRefreshToken(db *gorm.DB, token string) (*authModel.RefreshToken, error) {
	secret, err := getRefreshSecret()
	if err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{}
	parser := jwt.Parser{ValidMethods: []string{"HS256"}}
	if _, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid refresh token")
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid refresh token")
	}

	var row authModel.RefreshToken
	if err := db.
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", computeRefreshHash(token, secret), nowUTC()).
		First(&row).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token revoked or expired")
	}
	return &row, nil
}

// RevokeRefreshTokens revokes all active refresh rows for a user (logout).
func RevokeRefreshTokens(db *gorm.DB, userID string) error {
	return db.Model(&authModel.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", nowUTC()).Error
}

func computeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
