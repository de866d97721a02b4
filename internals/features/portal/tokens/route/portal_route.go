package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	controller "bimbelku_backend/internals/features/portal/tokens/controller"
	rateLimiter "bimbelku_backend/internals/middlewares"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

// Mounted under /api/public — portal clients validate their link tokens here.
func PortalPublicRoutes(r fiber.Router, db *gorm.DB) {
	portalController := controller.NewPortalTokenController(db)

	r.Post("/portal/validate", rateLimiter.PortalValidateRateLimiter(), portalController.ValidateToken)
}

// Mounted under /api/a
func PortalAdminRoutes(r fiber.Router, db *gorm.DB) {
	portalController := controller.NewPortalTokenController(db)

	portal := r.Group("/portal")
	portal.Post("/tokens", authMw.RequireAction(constants.ActionIssuePortalToken, "portal token issuance"), portalController.IssueToken)
	portal.Post("/tokens/revoke", authMw.RequireAction(constants.ActionRevokePortalToken, "portal token revocation"), portalController.RevokeToken)
	portal.Get("/logs", authMw.RequireAction(constants.ActionViewPortalLogs, "portal access logs"), portalController.ListAccessLogs)
}
