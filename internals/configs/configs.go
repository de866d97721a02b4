package configs

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	PortalJWTSecret  string
	CronSecret       string
	PortalBaseURL    string

	MidtransServerKey  string
	MidtransProduction bool

	SendgridAPIKey string
	EmailFrom      string
	EmailFromName  string
	SMSGatewayURL  string
	SMSGatewayKey  string
	SMSSenderID    string

	GoogleClientID string

	// Compatibility mode: portal tokens signed before hash tracking existed
	// have no row in portal_access_tokens. When true, validation lets them
	// through (logged + audited as compat_untracked).
	PortalCompatUntrackedTokens bool
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded!")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")
	PortalJWTSecret = GetEnv("PORTAL_JWT_SECRET")
	CronSecret = GetEnv("CRON_SECRET")
	PortalBaseURL = strings.TrimRight(GetEnv("PORTAL_BASE_URL", "https://app.bimbelku.id"), "/")

	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")
	MidtransProduction = GetEnvBool("MIDTRANS_USE_PROD", false)

	SendgridAPIKey = GetEnv("SENDGRID_API_KEY")
	EmailFrom = GetEnv("EMAIL_FROM", "noreply@bimbelku.id")
	EmailFromName = GetEnv("EMAIL_FROM_NAME", "Bimbelku")
	SMSGatewayURL = GetEnv("SMS_GATEWAY_URL")
	SMSGatewayKey = GetEnv("SMS_GATEWAY_KEY")
	SMSSenderID = GetEnv("SMS_SENDER_ID", "BIMBELKU")

	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")

	PortalCompatUntrackedTokens = GetEnvBool("PORTAL_COMPAT_UNTRACKED_TOKENS", true)

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
	if JWTRefreshSecret == "" {
		log.Println("❌ JWT_REFRESH_SECRET is not set!")
	}
	if PortalJWTSecret == "" {
		log.Println("❌ PORTAL_JWT_SECRET is not set! Portal token issuance will fail.")
	}
	if CronSecret == "" {
		log.Println("⚠️ CRON_SECRET is not set, cron endpoints are open")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func GetEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
