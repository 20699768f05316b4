package leave

import (
	"strconv"
	"time"
)

type Request struct {
	ID           int       `json:"id"`
	EmployeeID   int       `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	LeaveType    string    `json:"leaveType"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	Days         float64   `json:"days"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason"`
	CreatedAt    time.Time `json:"createdAt"`
	DecidedAt    string    `json:"decidedAt,omitempty"`
}

func (r Request) Key() string {
	return strconv.Itoa(r.ID)
}

type NewRequest struct {
	EmployeeID   int    `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	LeaveType    string `json:"leaveType"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Reason       string `json:"reason"`
}
