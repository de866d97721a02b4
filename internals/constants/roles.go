package constants

import "fmt"

// ==========================
// ✅ Closed role enum
// ==========================
const (
	RoleOwner      = "owner" // platform owner, bypasses center scoping
	RoleAdmin      = "admin"
	RoleTeacher    = "teacher"
	RoleAccountant = "accountant"
	RoleUser       = "user"
)

var AllRoles = []string{
	RoleOwner,
	RoleAdmin,
	RoleTeacher,
	RoleAccountant,
	RoleUser,
}

// StaffRoles count against the subscription tier's staff ceiling.
var StaffRoles = []string{
	RoleOwner,
	RoleAdmin,
	RoleTeacher,
	RoleAccountant,
}

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// ==========================
// ✅ Actions (capabilities)
// ==========================
const (
	ActionManageCenter      = "center:manage"
	ActionViewCenter        = "center:view"
	ActionManageStaff       = "staff:manage"
	ActionManageStudents    = "students:manage"
	ActionViewStudents      = "students:view"
	ActionIssuePortalToken  = "portal:issue"
	ActionRevokePortalToken = "portal:revoke"
	ActionViewPortalLogs    = "portal:logs"
	ActionSendNotifications = "notifications:send"
	ActionViewNotifications = "notifications:view"
	ActionManageBilling     = "billing:manage"
)

// Capability table: role → allowed actions. Checked once per request by the
// role middleware; there is no hierarchy, a role either has an action or not.
var roleCapabilities = map[string]map[string]struct{}{
	RoleOwner: capSet(
		ActionManageCenter, ActionViewCenter,
		ActionManageStaff,
		ActionManageStudents, ActionViewStudents,
		ActionIssuePortalToken, ActionRevokePortalToken, ActionViewPortalLogs,
		ActionSendNotifications, ActionViewNotifications,
		ActionManageBilling,
	),
	RoleAdmin: capSet(
		ActionManageCenter, ActionViewCenter,
		ActionManageStaff,
		ActionManageStudents, ActionViewStudents,
		ActionIssuePortalToken, ActionRevokePortalToken, ActionViewPortalLogs,
		ActionSendNotifications, ActionViewNotifications,
		ActionManageBilling,
	),
	RoleTeacher: capSet(
		ActionViewCenter,
		ActionViewStudents,
		ActionViewNotifications,
	),
	RoleAccountant: capSet(
		ActionViewCenter,
		ActionViewStudents,
		ActionViewNotifications,
		ActionManageBilling,
	),
	RoleUser: capSet(
		ActionViewCenter,
	),
}

func capSet(actions ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(actions))
	for _, a := range actions {
		s[a] = struct{}{}
	}
	return s
}

// Can reports whether a role is allowed to perform an action.
func Can(role, action string) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	_, ok = caps[action]
	return ok
}

// Template pesan error role
const errActionForbidden = "❌ Role '%s' is not allowed to access %s."

func RoleError(role, feature string) string {
	return fmt.Sprintf(errActionForbidden, role, feature)
}
