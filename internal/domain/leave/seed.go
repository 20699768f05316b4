package leave

import "time"

func Seed() []Request {
	created := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	return []Request{
		{
			ID:           1,
			EmployeeID:   1,
			EmployeeName: "John Doe",
			LeaveType:    TypeAnnual,
			StartDate:    "2024-01-15",
			EndDate:      "2024-01-17",
			Days:         3,
			Status:       StatusPending,
			Reason:       "Family vacation",
			CreatedAt:    created,
		},
		{
			ID:           2,
			EmployeeID:   2,
			EmployeeName: "Sarah Johnson",
			LeaveType:    TypeSick,
			StartDate:    "2024-01-10",
			EndDate:      "2024-01-12",
			Days:         3,
			Status:       StatusApproved,
			Reason:       "Medical treatment",
			CreatedAt:    created,
			DecidedAt:    "2024-01-09",
		},
	}
}
