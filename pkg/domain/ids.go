// Package domain holds shared domain primitives: typed identifiers and the
// enumerations used by both the directory and account modules. Constructing
// values via the Parse functions enforces validity at trust boundaries;
// direct casting bypasses validation.
package domain

import (
	"github.com/google/uuid"

	dErrors "partnerdesk/pkg/domain-errors"
)

// UserID identifies a registered account.
type UserID uuid.UUID

// PartnershipID identifies a partnership record.
type PartnershipID uuid.UUID

// ParseUserID constructs a UserID from external input. Returns
// CodeBadRequest when the value is empty, malformed, or the nil UUID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s)
	return UserID(u), err
}

// ParsePartnershipID constructs a PartnershipID from external input.
func ParsePartnershipID(s string) (PartnershipID, error) {
	u, err := parseUUID(s)
	return PartnershipID(u), err
}

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "id cannot be the nil UUID")
	}
	return u, nil
}

func (id UserID) String() string { return uuid.UUID(id).String() }
func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id PartnershipID) String() string { return uuid.UUID(id).String() }
func (id PartnershipID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// Text marshalling so typed IDs render as canonical UUID strings in JSON
// rather than raw byte arrays.

func (id UserID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*id = UserID(u)
	return nil
}

func (id PartnershipID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *PartnershipID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*id = PartnershipID(u)
	return nil
}
