package payroll

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"corecrew/internal/domain/employees"
)

const fallbackTaxBase = 60000

// Compensator synthesizes pay amounts for employees that have no
// authoritative figures. Base salary and tax follow the employee salary when
// one is recorded; everything else is drawn from fixed ranges.
type Compensator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewCompensator(seed uint64) *Compensator {
	return &Compensator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func NewRandomCompensator() *Compensator {
	return NewCompensator(rand.Uint64())
}

func (c *Compensator) intN(n int) float64 {
	return float64(c.rng.IntN(n))
}

// Draft returns a Pending line for e in period. ID is left for the ledger.
func (c *Compensator) Draft(e employees.Employee, period string) Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	base := e.Salary
	if base <= 0 {
		base = 50000 + c.intN(50000)
	}
	taxBase := e.Salary
	if taxBase <= 0 {
		taxBase = fallbackTaxBase
	}
	item := Item{
		EmployeeID:     e.ID,
		Name:           e.Name,
		Position:       e.Position,
		Department:     e.Department,
		BaseSalary:     base,
		Bonus:          c.intN(5000),
		Overtime:       c.intN(2000),
		Deductions:     1000 + c.intN(2000),
		TaxWithholding: math.Floor(taxBase * 0.2),
		Benefits:       500 + c.intN(1000),
		Status:         StatusPending,
		PayPeriod:      period,
	}
	item.NetPay = ComputeNetPay(item)
	return item
}

func (c *Compensator) chance(p float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Float64() < p
}

// SeedFor builds the initial ledger: one line per employee for the month of
// now, roughly seven in ten already paid.
func SeedFor(roster []employees.Employee, c *Compensator, now time.Time) []Item {
	period := PeriodLabel(now)
	today := now.Format(dateLayout)
	items := make([]Item, 0, len(roster))
	for idx, e := range roster {
		item := c.Draft(e, period)
		item.ID = idx + 1
		item.Overtime = 0
		item.NetPay = ComputeNetPay(item)
		if c.chance(0.7) {
			item.Status = StatusPaid
			item.PaymentDate = today
		}
		items = append(items, item)
	}
	return items
}
