package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"partnerdesk/pkg/domain"
)

func record(name string, dept domain.Department) Partnership {
	return Partnership{BusinessName: name, Department: dept}
}

func TestMatch_Conjunction(t *testing.T) {
	p := Partnership{
		BusinessName:  "Metro Bank",
		Department:    domain.DeptCET,
		Status:        domain.PartnershipActive,
		ContactPerson: "Maria Santos",
		Remarks:       "renewed early",
		SchoolYear:    "2024-2025",
	}

	tests := []struct {
		name     string
		criteria Criteria
		want     bool
	}{
		{"zero criteria matches everything", Criteria{}, true},
		{"search matches business name", Criteria{Search: "bank"}, true},
		{"search is case-insensitive", Criteria{Search: "METRO"}, true},
		{"search matches contact person", Criteria{Search: "santos"}, true},
		{"search matches remarks", Criteria{Search: "renewed"}, true},
		{"search miss", Criteria{Search: "mall"}, false},
		{"department exact match", Criteria{Department: domain.DeptCET}, true},
		{"department mismatch", Criteria{Department: domain.DeptSTE}, false},
		{"status exact match", Criteria{Status: domain.PartnershipActive}, true},
		{"status mismatch", Criteria{Status: domain.PartnershipTerminated}, false},
		{"school year substring", Criteria{SchoolYear: "2024"}, true},
		{"school year full value", Criteria{SchoolYear: "2024-2025"}, true},
		{"school year miss", Criteria{SchoolYear: "2019"}, false},
		{
			"all fields must match",
			Criteria{Search: "bank", Department: domain.DeptCET, SchoolYear: "2019"},
			false,
		},
		{
			"all fields matching",
			Criteria{Search: "bank", Department: domain.DeptCET, Status: domain.PartnershipActive, SchoolYear: "2025"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(p, tt.criteria))
			// Pure function: repeated evaluation must agree.
			assert.Equal(t, tt.want, Match(p, tt.criteria))
		})
	}
}

func TestMatch_UnknownStatusBucket(t *testing.T) {
	p := Partnership{BusinessName: "Odd One", Department: domain.DeptSTE, Status: "mystery"}

	// Records with an out-of-set status never match a status filter but are
	// still reachable without one.
	assert.False(t, Match(p, Criteria{Status: domain.PartnershipActive}))
	assert.True(t, Match(p, Criteria{}))
}

func TestCriteria_ForRole(t *testing.T) {
	c := Criteria{Search: "bank", Status: domain.PartnershipActive}

	admin := c.ForRole(domain.RoleAdmin)
	assert.Equal(t, domain.PartnershipActive, admin.Status)

	for _, role := range []domain.Role{domain.RoleDepartment, domain.RoleViewer} {
		reduced := c.ForRole(role)
		assert.Empty(t, reduced.Status, "status filter must be stripped for %s", role)
		assert.Equal(t, "bank", reduced.Search, "other fields survive for %s", role)
	}
}

func TestApply_EndToEnd(t *testing.T) {
	records := []Partnership{
		record("Bank A", "CCS"),
		record("Mall B", "CCS"),
		record("Bank C", "CBA"),
	}

	got := Apply(records, Criteria{Department: "CCS", Search: "bank"})

	assert.Len(t, got, 1)
	assert.Equal(t, "Bank A", got[0].BusinessName)
}

func TestApply_PreservesOrder(t *testing.T) {
	records := []Partnership{
		record("Alpha Bank", domain.DeptCET),
		record("Beta Bank", domain.DeptSTE),
		record("Gamma Bank", domain.DeptCET),
	}

	got := Apply(records, Criteria{Search: "bank"})

	assert.Equal(t, []string{"Alpha Bank", "Beta Bank", "Gamma Bank"},
		[]string{got[0].BusinessName, got[1].BusinessName, got[2].BusinessName})
}
