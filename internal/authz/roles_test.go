package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	assert.True(t, Valid(RoleAdmin))
	assert.True(t, Valid(RoleManager))
	assert.True(t, Valid(RoleAgent))
	assert.False(t, Valid("superuser"))
	assert.False(t, Valid(""))
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, CanManageUsers(RoleAdmin))
	assert.False(t, CanManageUsers(RoleManager))
	assert.False(t, CanManageUsers(RoleAgent))

	assert.True(t, CanManagePipelines(RoleAdmin))
	assert.True(t, CanManagePipelines(RoleManager))
	assert.False(t, CanManagePipelines(RoleAgent))
}
