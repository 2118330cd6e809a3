// Package directory implements the partnership directory pipeline: filter
// evaluation, grouping with per-department pagination, and the browser
// service that owns the fetched record cache.
package directory

import (
	"time"

	"partnerdesk/pkg/domain"
)

// Partnership is the client-side copy of a registry partnership record.
// Owned by the registry; the client holds a read-only cache per query.
type Partnership struct {
	ID            domain.PartnershipID     `json:"id"`
	BusinessName  string                   `json:"business_name"`
	Department    domain.Department        `json:"department"`
	Status        domain.PartnershipStatus `json:"status"`
	ContactPerson string                   `json:"contact_person,omitempty"`
	Remarks       string                   `json:"remarks,omitempty"`
	ImageURL      string                   `json:"image_url,omitempty"`
	SchoolYear    string                   `json:"school_year"`
	CreatedAt     time.Time                `json:"created_at"`
}

// Criteria is a set of independently optional filters combined with logical
// AND. The zero value matches every record.
type Criteria struct {
	// Search is matched case-insensitively as a substring of the business
	// name, contact person, and remarks.
	Search string
	// Department must match exactly when set.
	Department domain.Department
	// Status must match exactly when set. Only admins may filter by status;
	// use ForRole to reduce criteria to what a role is allowed to express.
	Status domain.PartnershipStatus
	// SchoolYear is matched as a substring since years are entered free-form.
	SchoolYear string
}

// ForRole reduces the criteria to the schema the given role may use. The
// status filter exists only for admins; for everyone else it is stripped
// before evaluation so non-admin views never distinguish records by status.
func (c Criteria) ForRole(role domain.Role) Criteria {
	if !role.IsAdmin() {
		c.Status = ""
	}
	return c
}

// IsZero reports whether no filter field is set.
func (c Criteria) IsZero() bool {
	return c.Search == "" && c.Department == "" && c.Status == "" && c.SchoolYear == ""
}
