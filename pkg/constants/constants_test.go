package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleAtLeast(t *testing.T) {
	assert.True(t, RoleAtLeast(RoleAdmin, RoleSecurity))
	assert.True(t, RoleAtLeast(RoleAdmin, RoleIT))
	assert.True(t, RoleAtLeast(RoleAdmin, RoleAdmin))
	assert.True(t, RoleAtLeast(RoleIT, RoleSecurity))
	assert.True(t, RoleAtLeast(RoleSecurity, RoleSecurity))

	assert.False(t, RoleAtLeast(RoleSecurity, RoleIT))
	assert.False(t, RoleAtLeast(RoleIT, RoleAdmin))
	assert.False(t, RoleAtLeast("unknown", RoleSecurity))
}
