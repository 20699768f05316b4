package payroll

import "strconv"

// Item is one pay line. Name, Position and Department are copied from the
// employee when the line is created and are not kept in sync afterwards.
type Item struct {
	ID             int     `json:"id"`
	EmployeeID     int     `json:"employeeId"`
	Name           string  `json:"name"`
	Position       string  `json:"position"`
	Department     string  `json:"department"`
	BaseSalary     float64 `json:"baseSalary"`
	Bonus          float64 `json:"bonus"`
	Overtime       float64 `json:"overtime"`
	Deductions     float64 `json:"deductions"`
	TaxWithholding float64 `json:"taxWithholding"`
	Benefits       float64 `json:"benefits"`
	NetPay         float64 `json:"netPay"`
	Status         string  `json:"status"`
	PayPeriod      string  `json:"payPeriod"`
	PaymentDate    string  `json:"paymentDate,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

func (i Item) Key() string {
	return strconv.Itoa(i.ID)
}

type NewItem struct {
	EmployeeID     int     `json:"employeeId"`
	Name           string  `json:"name"`
	Position       string  `json:"position"`
	Department     string  `json:"department"`
	BaseSalary     float64 `json:"baseSalary"`
	Bonus          float64 `json:"bonus"`
	Overtime       float64 `json:"overtime"`
	Deductions     float64 `json:"deductions"`
	TaxWithholding float64 `json:"taxWithholding"`
	Benefits       float64 `json:"benefits"`
	Status         string  `json:"status"`
	PayPeriod      string  `json:"payPeriod"`
	PaymentDate    string  `json:"paymentDate,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

type ItemPatch struct {
	EmployeeID     *int     `json:"employeeId,omitempty"`
	Name           *string  `json:"name,omitempty"`
	Position       *string  `json:"position,omitempty"`
	Department     *string  `json:"department,omitempty"`
	BaseSalary     *float64 `json:"baseSalary,omitempty"`
	Bonus          *float64 `json:"bonus,omitempty"`
	Overtime       *float64 `json:"overtime,omitempty"`
	Deductions     *float64 `json:"deductions,omitempty"`
	TaxWithholding *float64 `json:"taxWithholding,omitempty"`
	Benefits       *float64 `json:"benefits,omitempty"`
	Status         *string  `json:"status,omitempty"`
	PayPeriod      *string  `json:"payPeriod,omitempty"`
	PaymentDate    *string  `json:"paymentDate,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

// BatchResult reports which requested ids changed and which were skipped.
type BatchResult struct {
	Updated []int `json:"updated"`
	Skipped []int `json:"skipped"`
}

type GenerateResult struct {
	Period  string `json:"period"`
	Created []Item `json:"created"`
	Skipped int    `json:"skipped"`
}

type Summary struct {
	Period          string  `json:"period,omitempty"`
	Count           int     `json:"count"`
	Pending         int     `json:"pending"`
	Processing      int     `json:"processing"`
	Paid            int     `json:"paid"`
	TotalGross      float64 `json:"totalGross"`
	TotalDeductions float64 `json:"totalDeductions"`
	TotalNet        float64 `json:"totalNet"`
}
