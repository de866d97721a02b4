package service

import (
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bimbelku_backend/internals/configs"
	"bimbelku_backend/internals/constants"
	centerModel "bimbelku_backend/internals/features/tenants/centers/model"
	authModel "bimbelku_backend/internals/features/users/auth/model"
	userModel "bimbelku_backend/internals/features/users/user/model"
)

type LoginResult struct {
	User         *userModel.UserModel
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Register bootstraps a new center plus its first admin in one transaction.
func Register(db *gorm.DB, centerName, userName, email, password, ip, userAgent string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var usr userModel.UserModel
	err = db.Transaction(func(tx *gorm.DB) error {
		center := centerModel.CenterModel{
			CenterName:               centerName,
			CenterSlug:               centerModel.Slugify(centerName),
			CenterSubscriptionTier:   "free",
			CenterSubscriptionStatus: "active",
		}
		if err := tx.Create(&center).Error; err != nil {
			return err
		}

		usr = userModel.UserModel{
			UserCenterID: center.CenterID,
			UserName:     userName,
			UserEmail:    email,
			UserPassword: string(hash),
			UserRole:     constants.RoleAdmin,
			UserIsActive: true,
		}
		return tx.Create(&usr).Error
	})
	if err != nil {
		log.Printf("[ERROR] register: %v", err)
		return nil, fiber.NewError(fiber.StatusConflict, "Registration failed, email may already be in use")
	}

	return issueTokens(db, &usr, ip, userAgent)
}

// Login checks the bcrypt hash and issues access + refresh tokens.
func Login(db *gorm.DB, email, password, ip, userAgent string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var usr userModel.UserModel
	if err := db.Where("user_email = ?", email).First(&usr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}
		return nil, err
	}
	if !usr.UserIsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.UserPassword), []byte(password)) != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}

	return issueTokens(db, &usr, ip, userAgent)
}

// LoginGoogle verifies a Google ID token and signs in the matching account.
// No auto-provisioning: staff accounts are created by an admin first.
func LoginGoogle(db *gorm.DB, idToken, ip, userAgent string) (*LoginResult, error) {
	clientID := strings.TrimSpace(configs.GoogleClientID)
	if clientID == "" {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "GOOGLE_CLIENT_ID is not set")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{clientID}); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid Google ID token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil || claimSet.Email == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid Google ID token")
	}

	var usr userModel.UserModel
	if err := db.Where("user_email = ?", strings.ToLower(claimSet.Email)).First(&usr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "No account for this Google email")
		}
		return nil, err
	}
	if !usr.UserIsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
	}

	return issueTokens(db, &usr, ip, userAgent)
}

// Refresh rotates the refresh token and issues a fresh access token.
func Refresh(db *gorm.DB, refreshToken, ip, userAgent string) (*LoginResult, error) {
	row, err := VerifyRefreshToken(db, refreshToken)
	if err != nil {
		return nil, err
	}

	var usr userModel.UserModel
	if err := db.Where("user_id = ?", row.UserID).First(&usr).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "User not found")
	}
	if !usr.UserIsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
	}

	// rotation: revoke the used row before issuing a new one
	now := time.Now().UTC()
	if err := db.Model(row).Update("revoked_at", now).Error; err != nil {
		return nil, err
	}

	return issueTokens(db, &usr, ip, userAgent)
}

// Logout blacklists the access token and revokes active refresh rows.
func Logout(db *gorm.DB, userID, accessToken string, accessExp time.Time) error {
	if accessToken != "" {
		bl := authModel.TokenBlacklist{
			Token:     accessToken,
			ExpiredAt: accessExp,
		}
		if err := db.Create(&bl).Error; err != nil {
			log.Printf("[ERROR] blacklist insert: %v", err)
		}
	}
	return RevokeRefreshTokens(db, userID)
}

func issueTokens(db *gorm.DB, usr *userModel.UserModel, ip, userAgent string) (*LoginResult, error) {
	access, exp, err := CreateAccessToken(usr)
	if err != nil {
		return nil, err
	}
	refresh, err := CreateRefreshToken(db, usr, ip, userAgent)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		User:         usr,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    exp,
	}, nil
}
