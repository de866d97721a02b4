package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMw "bimbelku_backend/internals/middlewares/auth"
	routeDetails "bimbelku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== AUTH BASE =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC → no JWT (portal validation, public center profiles, webhooks)
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// PRIVATE (USER) → any authenticated account
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authMw.AuthMiddleware(db))

	// ADMIN (per center) → auth + per-route capability checks
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a", authMw.AuthMiddleware(db))

	// OWNER (GLOBAL) → cross-tenant
	log.Println("[INFO] Setting up OWNER group (Auth + owner global)...")
	owner := app.Group("/api/o", authMw.AuthMiddleware(db), authMw.RequireOwner())

	// CRON → external scheduler, guarded by bearer secret inside the handler
	log.Println("[INFO] Setting up CRON group...")
	cron := app.Group("/api/cron")

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Center routes...")
	routeDetails.CenterPublicRoutes(public, db)
	routeDetails.CenterUserRoutes(private, db)
	routeDetails.CenterAdminRoutes(admin, db)
	routeDetails.CenterOwnerRoutes(owner, db)

	log.Println("[INFO] Mounting School routes...")
	routeDetails.SchoolAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Portal routes...")
	routeDetails.PortalPublicRoutes(public, db)
	routeDetails.PortalAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Notification routes...")
	routeDetails.NotificationAdminRoutes(admin, db)
	routeDetails.NotificationCronRoutes(cron, db)

	log.Println("[INFO] Mounting Billing routes...")
	routeDetails.BillingPublicRoutes(app, db)
	routeDetails.BillingAdminRoutes(admin, db)
}
