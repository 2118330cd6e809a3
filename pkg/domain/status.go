package domain

import dErrors "partnerdesk/pkg/domain-errors"

// PartnershipStatus is the renewal state of a partnership. Records may carry
// values outside the known set; those fall into an implicit unknown bucket
// and are never matched by a status filter.
type PartnershipStatus string

const (
	PartnershipActive     PartnershipStatus = "active"
	PartnershipForRenewal PartnershipStatus = "for_renewal"
	PartnershipTerminated PartnershipStatus = "terminated"
	PartnershipNonRenewal PartnershipStatus = "non_renewal"
)

var validPartnershipStatuses = map[PartnershipStatus]bool{
	PartnershipActive:     true,
	PartnershipForRenewal: true,
	PartnershipTerminated: true,
	PartnershipNonRenewal: true,
}

// ParsePartnershipStatus constructs a PartnershipStatus from external input.
// Only filter criteria go through here; record payloads keep whatever the
// registry sent.
func ParsePartnershipStatus(s string) (PartnershipStatus, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "status cannot be empty")
	}
	ps := PartnershipStatus(s)
	if !ps.IsValid() {
		return "", dErrors.New(dErrors.CodeBadRequest, "invalid partnership status")
	}
	return ps, nil
}

func (s PartnershipStatus) IsValid() bool { return validPartnershipStatuses[s] }

func (s PartnershipStatus) String() string { return string(s) }

// AccountStatus is the moderation lifecycle state of a user account.
// Accounts are created pending; an admin moves them to approved or rejected.
// StatusNotFound never appears on an account, it is the probe outcome for an
// email with no account at all.
type AccountStatus string

const (
	StatusPending  AccountStatus = "pending"
	StatusApproved AccountStatus = "approved"
	StatusRejected AccountStatus = "rejected"
	StatusNotFound AccountStatus = "not_found"
)

func (s AccountStatus) String() string { return string(s) }
