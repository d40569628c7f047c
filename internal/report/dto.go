// AngelaMos | 2026
// dto.go

package report

// SalaryRow is one user's payroll line. TotalSalary is always
// TotalHours * HourlyRate.
type SalaryRow struct {
	UserID      string  `json:"user_id"`
	UserName    string  `json:"user_name"`
	Position    string  `json:"position"`
	HourlyRate  float64 `json:"hourly_rate"`
	TotalHours  float64 `json:"total_hours"`
	TotalSalary float64 `json:"total_salary"`
}
