package model

import "fmt"

// Role is the closed set of permission classes a user can hold. A user's
// role is immutable once assigned; reassignment is an administrative action
// handled outside this service.
type Role string

const (
	RoleGlobalAdmin  Role = "global_admin"
	RoleOrgAdmin     Role = "org_admin"
	RoleDoctor       Role = "doctor"
	RoleRegistration Role = "registration"
	RoleFinance      Role = "finance"
	RoleStorekeeper  Role = "storekeeper"
	RoleGeneralUser  Role = "general_user"
)

// AllRoles lists every valid role in display order.
var AllRoles = []Role{
	RoleGlobalAdmin,
	RoleOrgAdmin,
	RoleDoctor,
	RoleRegistration,
	RoleFinance,
	RoleStorekeeper,
	RoleGeneralUser,
}

var roleDisplayNames = map[Role]string{
	RoleGlobalAdmin:  "超级管理员",
	RoleOrgAdmin:     "院区负责人",
	RoleDoctor:       "医生",
	RoleRegistration: "挂号员",
	RoleFinance:      "财务",
	RoleStorekeeper:  "库管员",
	RoleGeneralUser:  "患者/普通用户",
}

// ParseRole validates a raw role string against the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	_, ok := roleDisplayNames[r]
	return ok
}

func (r Role) String() string { return string(r) }

// DisplayName returns the human-readable label shown in staff listings.
func (r Role) DisplayName() string {
	if name, ok := roleDisplayNames[r]; ok {
		return name
	}
	return string(r)
}

// IsStaff reports whether the role belongs to hospital personnel rather
// than a self-service patient account.
func (r Role) IsStaff() bool {
	return r.Valid() && r != RoleGeneralUser
}
