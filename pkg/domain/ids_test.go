package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "partnerdesk/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// IDs must be valid, non-empty, non-nil UUIDs.
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseUserID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseUserID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, UserID(validUUID), id)
	})
}

// Typed IDs must round-trip through JSON as canonical UUID strings, not byte
// arrays, because they appear in registry payloads.
func TestUserID_JSONRoundTrip(t *testing.T) {
	id := UserID(uuid.New())

	raw, err := json.Marshal(id)
	require.NoError(t, err)
	assert.JSONEq(t, `"`+id.String()+`"`, string(raw))

	var back UserID
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, id, back)
}

func TestParseRole(t *testing.T) {
	for _, role := range []string{"admin", "department", "viewer"} {
		r, err := ParseRole(role)
		require.NoError(t, err)
		assert.Equal(t, role, r.String())
	}

	_, err := ParseRole("superuser")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleViewer.IsAdmin())
}

func TestDepartmentLabel(t *testing.T) {
	assert.Equal(t, "College of Engineering and Technology", DeptCET.Label())
	// Unknown departments fall back to the raw code.
	assert.Equal(t, "XYZ", Department("XYZ").Label())
}

func TestParsePartnershipStatus(t *testing.T) {
	_, err := ParsePartnershipStatus("active")
	require.NoError(t, err)

	_, err = ParsePartnershipStatus("archived")
	require.Error(t, err)
}
