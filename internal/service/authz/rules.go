package authz

import "github.com/careops/hospital-api/internal/model"

// Resource identifies a protected surface as "entity:action".
type Resource string

const (
	ResourceBookingsCreate  Resource = "bookings:create"
	ResourceBookingsList    Resource = "bookings:list"
	ResourceBookingsAdvance Resource = "bookings:advance"
	ResourcePaymentList     Resource = "payment:list"
	ResourcePaymentHistory  Resource = "payment:history"
	ResourcePaymentSettle   Resource = "payment:settle"
	ResourceDoctorsList     Resource = "doctors:list"
	ResourceMedicinesList   Resource = "medicines:list"
	ResourceStatsView       Resource = "stats:view"
	ResourceFinanceStats    Resource = "finance:stats"
	ResourceUsersList       Resource = "users:list"
	ResourceUsersDelete     Resource = "users:delete"
)

// ruleTable is the single source of truth for role access. The route gate
// derives its allowed-role sets from this same table via AllowedRoles, so
// the menu and the backend can never drift apart. global_admin is implied
// everywhere and therefore never listed. Absence of a rule is a deny.
var ruleTable = map[Resource][]model.Role{
	ResourceBookingsCreate: {model.RoleRegistration, model.RoleOrgAdmin, model.RoleGeneralUser},
	ResourceBookingsList:   {model.RoleRegistration, model.RoleOrgAdmin, model.RoleGeneralUser},

	// Only clinical and top-level administrative roles move a booking to
	// Completed; the patient who filed it cannot.
	ResourceBookingsAdvance: {model.RoleDoctor},

	ResourcePaymentList:    {model.RoleFinance, model.RoleRegistration, model.RoleOrgAdmin, model.RoleGeneralUser},
	ResourcePaymentHistory: {model.RoleFinance, model.RoleRegistration, model.RoleOrgAdmin, model.RoleGeneralUser},
	ResourcePaymentSettle:  {model.RoleFinance, model.RoleRegistration, model.RoleOrgAdmin, model.RoleGeneralUser},

	ResourceDoctorsList: {
		model.RoleOrgAdmin, model.RoleDoctor, model.RoleRegistration,
		model.RoleFinance, model.RoleStorekeeper, model.RoleGeneralUser,
	},

	ResourceMedicinesList: {model.RoleStorekeeper, model.RoleOrgAdmin},

	ResourceStatsView: {
		model.RoleOrgAdmin, model.RoleDoctor, model.RoleRegistration,
		model.RoleFinance, model.RoleStorekeeper,
	},
	ResourceFinanceStats: {model.RoleFinance, model.RoleOrgAdmin},

	ResourceUsersList:   {model.RoleOrgAdmin},
	ResourceUsersDelete: {model.RoleOrgAdmin},
}

// selfScoped marks resources where a general_user is restricted to records
// naming them as patient. Staff roles on the same resource see everything.
var selfScoped = map[Resource]bool{
	ResourceBookingsCreate: true,
	ResourceBookingsList:   true,
	ResourcePaymentList:    true,
	ResourcePaymentHistory: true,
	ResourcePaymentSettle:  true,
}

// statsFields maps each role to the snapshot fields it may view.
type statsScope struct {
	Income   bool
	Patients bool
	Doctors  bool
	Meds     bool
}

var statsFields = map[model.Role]statsScope{
	model.RoleGlobalAdmin:  {Income: true, Patients: true, Doctors: true, Meds: true},
	model.RoleOrgAdmin:     {Income: true, Patients: true, Doctors: true, Meds: true},
	model.RoleFinance:      {Income: true},
	model.RoleDoctor:       {Patients: true, Meds: true},
	model.RoleStorekeeper:  {Meds: true},
	model.RoleRegistration: {Patients: true},
}
