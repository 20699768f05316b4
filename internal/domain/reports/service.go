package reports

import (
	"corecrew/internal/domain/employees"
	"corecrew/internal/domain/payroll"
	"corecrew/internal/domain/performance"
)

type EmployeeSource interface {
	List() []employees.Employee
}

type LeaveSource interface {
	PendingCount() int
}

type PayrollSource interface {
	CurrentPeriod() string
	Summarize(period string) payroll.Summary
}

type PerformanceSource interface {
	Summary() performance.Summary
}

type Dashboard struct {
	TotalEmployees       int     `json:"totalEmployees"`
	ActiveEmployees      int     `json:"activeEmployees"`
	OnLeave              int     `json:"onLeave"`
	Departments          int     `json:"departments"`
	PendingLeave         int     `json:"pendingLeave"`
	PayrollPeriod        string  `json:"payrollPeriod"`
	PayrollTotal         float64 `json:"payrollTotal"`
	PayrollPending       int     `json:"payrollPending"`
	AverageRating        float64 `json:"averageRating"`
	ReviewCompletionRate float64 `json:"reviewCompletionRate"`
}

// Service derives read-only views from the live collections.
type Service struct {
	employees   EmployeeSource
	leave       LeaveSource
	payroll     PayrollSource
	performance PerformanceSource
}

func NewService(emp EmployeeSource, leave LeaveSource, pay PayrollSource, perf PerformanceSource) *Service {
	return &Service{employees: emp, leave: leave, payroll: pay, performance: perf}
}

func (s *Service) Distribution() Distribution {
	return Distribute(s.employees.List())
}

func (s *Service) Dashboard() Dashboard {
	list := s.employees.List()
	dist := Distribute(list)
	dash := Dashboard{
		TotalEmployees: len(list),
		Departments:    len(dist.ByDepartment),
	}
	for _, e := range list {
		switch e.Status {
		case employees.StatusActive:
			dash.ActiveEmployees++
		case employees.StatusOnLeave:
			dash.OnLeave++
		}
	}
	if s.leave != nil {
		dash.PendingLeave = s.leave.PendingCount()
	}
	if s.payroll != nil {
		dash.PayrollPeriod = s.payroll.CurrentPeriod()
		summary := s.payroll.Summarize(dash.PayrollPeriod)
		dash.PayrollTotal = summary.TotalNet
		dash.PayrollPending = summary.Pending + summary.Processing
	}
	if s.performance != nil {
		summary := s.performance.Summary()
		dash.AverageRating = summary.AverageRating
		dash.ReviewCompletionRate = summary.CompletionRate
	}
	return dash
}
