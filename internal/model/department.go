package model

// Department is a value from the configured taxonomy. The taxonomy is
// static for the lifetime of a deployment; changing it is an administrative
// operation, not a runtime event.
type Department string

const (
	DepartmentInternalMedicine Department = "内科"
	DepartmentSurgery          Department = "外科"
	DepartmentPediatrics       Department = "儿科"
	DepartmentOrthopedics      Department = "骨科"
	DepartmentEmergency        Department = "急诊"
)

var AllDepartments = []Department{
	DepartmentInternalMedicine,
	DepartmentSurgery,
	DepartmentPediatrics,
	DepartmentOrthopedics,
	DepartmentEmergency,
}

func (d Department) Valid() bool {
	for _, dep := range AllDepartments {
		if d == dep {
			return true
		}
	}
	return false
}

func (d Department) String() string { return string(d) }
