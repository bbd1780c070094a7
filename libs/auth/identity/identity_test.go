package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		expected      Role
		expectedError bool
	}{
		{name: "admin", raw: "admin", expected: RoleAdmin},
		{name: "creator", raw: "creator", expected: RoleCreator},
		{name: "viewer", raw: "viewer", expected: RoleViewer},
		{name: "empty", raw: "", expectedError: true},
		{name: "wrong case", raw: "Admin", expectedError: true},
		{name: "unknown", raw: "moderator", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := ParseRole(tt.raw)
			if tt.expectedError {
				assert.Error(t, err)
				assert.Empty(t, role)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, role)
		})
	}
}

func TestIdentity_CanManage(t *testing.T) {
	assert.True(t, Identity{UserID: 1, Role: RoleCreator}.CanManage(1))
	assert.False(t, Identity{UserID: 2, Role: RoleCreator}.CanManage(1))
	assert.True(t, Identity{UserID: 2, Role: RoleAdmin}.CanManage(1))
	assert.False(t, Identity{UserID: 2, Role: RoleViewer}.CanManage(1))
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{UserID: 7, Role: RoleViewer})
	id, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, 7, id.UserID)
	assert.Equal(t, RoleViewer, id.Role)
}
