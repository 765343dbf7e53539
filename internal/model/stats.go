package model

// OverviewStats is the role-scoped dashboard snapshot. Fields outside the
// actor's permission scope are left nil and omitted from the response.
type OverviewStats struct {
	Income       *float64 `json:"income,omitempty"`
	PatientCount *int     `json:"patients,omitempty"`
	DoctorCount  *int     `json:"doctors,omitempty"`
	MedicineKind *int     `json:"meds,omitempty"`
}

// StatsSnapshot is the unfiltered aggregate read in a single transaction so
// income never straddles a half-applied settlement.
type StatsSnapshot struct {
	Income       float64
	PatientCount int
	DoctorCount  int
	MedicineKind int
}

// FinanceStats backs the finance analysis surface.
type FinanceStats struct {
	TotalIncome    float64 `json:"total_income"`
	TodayIncome    float64 `json:"today_income"`
	OrderCount     int     `json:"order_count"`
	AvgTransaction float64 `json:"avg_transaction"`
}

// DeptRevenue is one row of the per-department revenue ranking.
type DeptRevenue struct {
	Department Department `db:"department" json:"department"`
	Total      float64    `db:"total" json:"total"`
}
