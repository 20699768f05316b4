package payroll

import "time"

// ComputeNetPay is base + bonus + overtime - deductions - tax - benefits.
func ComputeNetPay(i Item) float64 {
	return Gross(i) - TotalDeductions(i)
}

func Gross(i Item) float64 {
	return i.BaseSalary + i.Bonus + i.Overtime
}

func TotalDeductions(i Item) float64 {
	return i.Deductions + i.TaxWithholding + i.Benefits
}

// PeriodLabel formats the pay period label used for grouping, e.g. "March 2024".
func PeriodLabel(t time.Time) string {
	return t.Format("January 2006")
}

func ValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

var transitions = map[string][]string{
	StatusPending:    {StatusProcessing, StatusPaid},
	StatusProcessing: {StatusPaid},
}

// CanTransition reports whether status may move from one value to another.
// Staying put is always allowed; nothing leaves Paid.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (p ItemPatch) touchesFinancials() bool {
	return p.BaseSalary != nil || p.Bonus != nil || p.Overtime != nil ||
		p.Deductions != nil || p.TaxWithholding != nil || p.Benefits != nil
}

func (p ItemPatch) apply(i Item) Item {
	if p.EmployeeID != nil {
		i.EmployeeID = *p.EmployeeID
	}
	setString(&i.Name, p.Name)
	setString(&i.Position, p.Position)
	setString(&i.Department, p.Department)
	setFloat(&i.BaseSalary, p.BaseSalary)
	setFloat(&i.Bonus, p.Bonus)
	setFloat(&i.Overtime, p.Overtime)
	setFloat(&i.Deductions, p.Deductions)
	setFloat(&i.TaxWithholding, p.TaxWithholding)
	setFloat(&i.Benefits, p.Benefits)
	setString(&i.Status, p.Status)
	setString(&i.PayPeriod, p.PayPeriod)
	setString(&i.PaymentDate, p.PaymentDate)
	setString(&i.Notes, p.Notes)
	if p.touchesFinancials() {
		i.NetPay = ComputeNetPay(i)
	}
	return i
}

func setString(dst, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func nextID(items []Item) int {
	maxID := 0
	for _, i := range items {
		if i.ID > maxID {
			maxID = i.ID
		}
	}
	return maxID + 1
}

func indexOf(items []Item, id int) int {
	for idx, i := range items {
		if i.ID == id {
			return idx
		}
	}
	return -1
}
