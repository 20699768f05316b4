package payroll

import (
	"context"
	"strings"
	"time"

	"corecrew/internal/domain/employees"
	"corecrew/internal/platform/events"
	"corecrew/internal/platform/storage"
)

// Roster supplies the employees payroll is generated for.
type Roster interface {
	List() []employees.Employee
}

// Ledger owns the payroll collection.
type Ledger struct {
	col    *storage.Collection[Item]
	events events.Publisher
	roster Roster
	comp   *Compensator
	now    func() time.Time
}

type Option func(*Ledger)

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func WithCompensator(c *Compensator) Option {
	return func(l *Ledger) { l.comp = c }
}

func Open(ctx context.Context, store *storage.Store, pub events.Publisher, roster Roster, seed func() []Item, opts ...Option) (*Ledger, error) {
	if seed == nil {
		seed = func() []Item { return []Item{} }
	}
	col, err := storage.OpenCollection(ctx, store, CollectionKey, seed)
	if err != nil {
		return nil, err
	}
	if pub == nil {
		pub = events.Discard{}
	}
	l := &Ledger{col: col, events: pub, roster: roster, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	if l.comp == nil {
		l.comp = NewRandomCompensator()
	}
	return l, nil
}

func (l *Ledger) today() string {
	return l.now().Format(dateLayout)
}

func (l *Ledger) List() []Item {
	return l.col.Snapshot()
}

func (l *Ledger) ListForPeriod(period string) []Item {
	out := []Item{}
	for _, i := range l.col.Snapshot() {
		if i.PayPeriod == period {
			out = append(out, i)
		}
	}
	return out
}

func (l *Ledger) ListForEmployee(employeeID int) []Item {
	out := []Item{}
	for _, i := range l.col.Snapshot() {
		if i.EmployeeID == employeeID {
			out = append(out, i)
		}
	}
	return out
}

func (l *Ledger) Get(id int) (Item, error) {
	for _, i := range l.col.Snapshot() {
		if i.ID == id {
			return i, nil
		}
	}
	return Item{}, ErrPayrollItemNotFound
}

func (l *Ledger) Add(ctx context.Context, in NewItem) (Item, error) {
	if in.Status == "" {
		in.Status = StatusPending
	}
	if !ValidStatus(in.Status) {
		return Item{}, ErrInvalidStatus
	}
	var created Item
	err := l.col.Mutate(ctx, func(items []Item) ([]Item, error) {
		created = Item{
			ID:             nextID(items),
			EmployeeID:     in.EmployeeID,
			Name:           in.Name,
			Position:       in.Position,
			Department:     in.Department,
			BaseSalary:     in.BaseSalary,
			Bonus:          in.Bonus,
			Overtime:       in.Overtime,
			Deductions:     in.Deductions,
			TaxWithholding: in.TaxWithholding,
			Benefits:       in.Benefits,
			Status:         in.Status,
			PayPeriod:      in.PayPeriod,
			PaymentDate:    in.PaymentDate,
			Notes:          in.Notes,
		}
		created.NetPay = ComputeNetPay(created)
		return append(items, created), nil
	}, func() {
		l.publish(ctx, events.ActionCreated, created.Key(), created.Name)
	})
	if err != nil {
		return Item{}, err
	}
	return created, nil
}

// Update merges patch into the line. NetPay is recomputed only when the
// patch carries a financial field. Status may only move along the state
// machine; moving to Paid without a payment date stamps today.
func (l *Ledger) Update(ctx context.Context, id int, patch ItemPatch) (Item, error) {
	if patch.Status != nil && !ValidStatus(*patch.Status) {
		return Item{}, ErrInvalidStatus
	}
	var updated Item
	err := l.col.Mutate(ctx, func(items []Item) ([]Item, error) {
		idx := indexOf(items, id)
		if idx < 0 {
			return nil, ErrPayrollItemNotFound
		}
		current := items[idx]
		if patch.Status != nil && !CanTransition(current.Status, *patch.Status) {
			return nil, ErrInvalidTransition
		}
		next := patch.apply(current)
		if next.Status == StatusPaid && current.Status != StatusPaid && next.PaymentDate == "" {
			next.PaymentDate = l.today()
		}
		items[idx] = next
		updated = next
		return items, nil
	}, func() {
		l.publish(ctx, events.ActionUpdated, updated.Key(), updated.Name)
	})
	if err != nil {
		return Item{}, err
	}
	return updated, nil
}

func (l *Ledger) Delete(ctx context.Context, id int) error {
	err := l.col.Mutate(ctx, func(items []Item) ([]Item, error) {
		idx := indexOf(items, id)
		if idx < 0 {
			return nil, ErrPayrollItemNotFound
		}
		return append(items[:idx], items[idx+1:]...), nil
	}, func() {
		l.publish(ctx, events.ActionDeleted, Item{ID: id}.Key(), "")
	})
	if err != nil {
		return err
	}
	return nil
}

// ProcessBatch pays every listed line that is still Pending and stamps
// today's payment date. Lines in any other status, and unknown ids, are
// skipped without error.
func (l *Ledger) ProcessBatch(ctx context.Context, ids []int) (BatchResult, error) {
	return l.transition(ctx, ids, StatusPending, StatusPaid, events.ActionProcessed)
}

// BeginProcessing moves Pending lines to Processing.
func (l *Ledger) BeginProcessing(ctx context.Context, ids []int) (BatchResult, error) {
	return l.transition(ctx, ids, StatusPending, StatusProcessing, events.ActionUpdated)
}

// CompleteProcessing pays lines that are in Processing.
func (l *Ledger) CompleteProcessing(ctx context.Context, ids []int) (BatchResult, error) {
	return l.transition(ctx, ids, StatusProcessing, StatusPaid, events.ActionProcessed)
}

func (l *Ledger) transition(ctx context.Context, ids []int, from, to, action string) (BatchResult, error) {
	wanted := make(map[int]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	today := l.today()
	result := BatchResult{Updated: []int{}, Skipped: []int{}}
	err := l.col.Mutate(ctx, func(items []Item) ([]Item, error) {
		result = BatchResult{Updated: []int{}, Skipped: []int{}}
		seen := map[int]bool{}
		for idx := range items {
			id := items[idx].ID
			if !wanted[id] {
				continue
			}
			seen[id] = true
			if items[idx].Status != from {
				result.Skipped = append(result.Skipped, id)
				continue
			}
			items[idx].Status = to
			if to == StatusPaid {
				items[idx].PaymentDate = today
			}
			result.Updated = append(result.Updated, id)
		}
		for _, id := range ids {
			if !seen[id] {
				result.Skipped = append(result.Skipped, id)
				seen[id] = true
			}
		}
		if len(result.Updated) == 0 {
			return nil, storage.ErrUnchanged
		}
		return items, nil
	}, func() {
		for _, id := range result.Updated {
			l.publish(ctx, action, Item{ID: id}.Key(), to)
		}
	})
	if err != nil {
		return BatchResult{}, err
	}
	return result, nil
}

// GenerateForPeriod adds a Pending line for every employee on the roster
// that has no line for period yet. Calling it again for the same period
// only fills gaps.
func (l *Ledger) GenerateForPeriod(ctx context.Context, period string) (GenerateResult, error) {
	period = strings.TrimSpace(period)
	if period == "" {
		return GenerateResult{}, ErrEmptyPeriod
	}
	roster := []employees.Employee{}
	if l.roster != nil {
		roster = l.roster.List()
	}
	result := GenerateResult{Period: period, Created: []Item{}}
	err := l.col.Mutate(ctx, func(items []Item) ([]Item, error) {
		result = GenerateResult{Period: period, Created: []Item{}}
		existing := map[int]bool{}
		for _, i := range items {
			if i.PayPeriod == period {
				existing[i.EmployeeID] = true
			}
		}
		id := nextID(items)
		for _, e := range roster {
			if existing[e.ID] {
				result.Skipped++
				continue
			}
			item := l.comp.Draft(e, period)
			item.ID = id
			id++
			items = append(items, item)
			result.Created = append(result.Created, item)
			existing[e.ID] = true
		}
		if len(result.Created) == 0 {
			return nil, storage.ErrUnchanged
		}
		return items, nil
	}, func() {
		l.publish(ctx, events.ActionGenerated, period, period)
	})
	if err != nil {
		return GenerateResult{}, err
	}
	return result, nil
}

// CurrentPeriod is the label for the month containing the ledger clock.
func (l *Ledger) CurrentPeriod() string {
	return PeriodLabel(l.now())
}

// Periods lists distinct pay periods in first-seen order.
func (l *Ledger) Periods() []string {
	seen := map[string]bool{}
	out := []string{}
	for _, i := range l.col.Snapshot() {
		if !seen[i.PayPeriod] {
			seen[i.PayPeriod] = true
			out = append(out, i.PayPeriod)
		}
	}
	return out
}

// Summarize totals the lines of period, or every line when period is empty.
func (l *Ledger) Summarize(period string) Summary {
	summary := Summary{Period: period}
	for _, i := range l.col.Snapshot() {
		if period != "" && i.PayPeriod != period {
			continue
		}
		summary.Count++
		switch i.Status {
		case StatusPending:
			summary.Pending++
		case StatusProcessing:
			summary.Processing++
		case StatusPaid:
			summary.Paid++
		}
		summary.TotalGross += Gross(i)
		summary.TotalDeductions += TotalDeductions(i)
		summary.TotalNet += i.NetPay
	}
	return summary
}

func (l *Ledger) publish(ctx context.Context, action, id, summary string) {
	l.events.Publish(ctx, events.Event{Collection: CollectionKey, Action: action, EntityID: id, Summary: summary})
}
