package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	t.Run("admin manages, teacher only views", func(t *testing.T) {
		assert.True(t, Can(RoleAdmin, ActionManageStudents))
		assert.True(t, Can(RoleTeacher, ActionViewStudents))
		assert.False(t, Can(RoleTeacher, ActionManageStudents))
		assert.False(t, Can(RoleTeacher, ActionIssuePortalToken))
	})

	t.Run("accountant handles billing but not staff", func(t *testing.T) {
		assert.True(t, Can(RoleAccountant, ActionManageBilling))
		assert.False(t, Can(RoleAccountant, ActionManageStaff))
	})

	t.Run("unknown role can do nothing", func(t *testing.T) {
		assert.False(t, Can("superhero", ActionViewCenter))
		assert.False(t, Can("", ActionViewCenter))
	})
}

func TestEveryRoleHasCapabilities(t *testing.T) {
	for _, role := range AllRoles {
		assert.NotEmpty(t, roleCapabilities[role], "role %s missing from capability table", role)
	}
}

func TestEntityAndChannelEnums(t *testing.T) {
	for _, e := range []string{EntityStudent, EntityTeacher, EntityParent} {
		assert.True(t, IsValidEntityType(e))
	}
	assert.False(t, IsValidEntityType("staff"))

	for _, ch := range []string{ChannelEmail, ChannelSMS, ChannelBoth} {
		assert.True(t, IsValidChannel(ch))
	}
	assert.False(t, IsValidChannel("push"))
}
