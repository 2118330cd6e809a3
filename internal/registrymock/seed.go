package registrymock

import (
	"partnerdesk/internal/account"
	"partnerdesk/internal/directory"
	"partnerdesk/pkg/domain"
)

// SeedDemo loads the fixture set used for local development: one approved
// admin (admin@hcdc.edu.ph / adminpass123) and a small directory spanning
// three departments.
func SeedDemo(s *Server) {
	s.SeedUser(account.User{
		FullName: "Site Admin",
		Email:    "admin@hcdc.edu.ph",
		Role:     domain.RoleAdmin,
		Status:   domain.StatusApproved,
	}, "adminpass123")

	s.SeedPartnerships(
		directory.Partnership{
			BusinessName:  "Metro Davao Bank",
			Department:    domain.DeptSTE,
			Status:        domain.PartnershipActive,
			ContactPerson: "A. Reyes",
			SchoolYear:    "2024-2025",
		},
		directory.Partnership{
			BusinessName:  "Harborview Logistics",
			Department:    domain.DeptCET,
			Status:        domain.PartnershipForRenewal,
			ContactPerson: "J. Santos",
			SchoolYear:    "2024-2025",
		},
		directory.Partnership{
			BusinessName: "Coastline Resort",
			Department:   domain.DeptCHATME,
			Status:       domain.PartnershipActive,
			SchoolYear:   "2023-2024",
		},
	)
}
