package domain

import dErrors "partnerdesk/pkg/domain-errors"

// Department is the institutional unit a partnership or account belongs to.
// Codes follow the registry's fixed set.
type Department string

const (
	DeptSTE     Department = "STE"
	DeptCET     Department = "CET"
	DeptCCJE    Department = "CCJE"
	DeptHuSoCom Department = "HuSoCom"
	DeptBSMT    Department = "BSMT"
	DeptSBME    Department = "SBME"
	DeptCHATME  Department = "CHATME"
)

var departmentLabels = map[Department]string{
	DeptSTE:     "School of Teacher Education",
	DeptCET:     "College of Engineering and Technology",
	DeptCCJE:    "College of Criminal Justice Education",
	DeptHuSoCom: "Humanities, Social Sciences and Communication",
	DeptBSMT:    "Bachelor of Science in Marine Transportation",
	DeptSBME:    "School of Business and Management Education",
	DeptCHATME:  "College of Hospitality and Tourism Management Education",
}

// Departments lists all known departments in display order.
func Departments() []Department {
	return []Department{DeptSTE, DeptCET, DeptCCJE, DeptHuSoCom, DeptBSMT, DeptSBME, DeptCHATME}
}

// ParseDepartment constructs a Department from external input.
func ParseDepartment(s string) (Department, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "department cannot be empty")
	}
	d := Department(s)
	if !d.IsValid() {
		return "", dErrors.New(dErrors.CodeBadRequest, "invalid department")
	}
	return d, nil
}

func (d Department) IsValid() bool { return departmentLabels[d] != "" }

// Label returns the human-readable department name, or the raw code when the
// department is unknown.
func (d Department) Label() string {
	if label, ok := departmentLabels[d]; ok {
		return label
	}
	return string(d)
}

func (d Department) String() string { return string(d) }
