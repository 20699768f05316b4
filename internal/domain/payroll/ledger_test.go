package payroll

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"corecrew/internal/domain/employees"
	"corecrew/internal/platform/storage"
)

type staticRoster []employees.Employee

func (s staticRoster) List() []employees.Employee { return s }

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func openLedger(t *testing.T, roster Roster, seed func() []Item) (*Ledger, *storage.Store) {
	t.Helper()
	store := storage.New(storage.NewMemoryKV())
	l, err := Open(context.Background(), store, nil, roster, seed,
		WithClock(func() time.Time { return fixedNow }),
		WithCompensator(NewCompensator(42)),
	)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	return l, store
}

func TestAddComputesNetPayAndID(t *testing.T) {
	l, _ := openLedger(t, nil, nil)
	item, err := l.Add(context.Background(), NewItem{
		EmployeeID: 1, Name: "John Doe", BaseSalary: 60000, Bonus: 1000,
		Deductions: 500, TaxWithholding: 12000, Benefits: 800, PayPeriod: "March 2024",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item.ID != 1 || item.NetPay != 47700 || item.Status != StatusPending {
		t.Fatalf("unexpected item %+v", item)
	}
	second, _ := l.Add(context.Background(), NewItem{EmployeeID: 2, BaseSalary: 10})
	if second.ID != 2 {
		t.Fatalf("expected id 2, got %d", second.ID)
	}
}

func TestUpdateRecomputesNetPayOnFinancialChange(t *testing.T) {
	ctx := context.Background()
	l, _ := openLedger(t, nil, nil)
	item, _ := l.Add(ctx, NewItem{BaseSalary: 5000, Deductions: 100})

	bonus := 400.0
	updated, err := l.Update(ctx, item.ID, ItemPatch{Bonus: &bonus})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.NetPay != ComputeNetPay(updated) || updated.NetPay != 5300 {
		t.Fatalf("expected recomputed net 5300, got %v", updated.NetPay)
	}

	notes := "reviewed"
	noted, err := l.Update(ctx, item.ID, ItemPatch{Notes: &notes})
	if err != nil {
		t.Fatalf("update notes: %v", err)
	}
	if noted.NetPay != 5300 || noted.Notes != "reviewed" {
		t.Fatalf("expected net untouched by notes update, got %+v", noted)
	}
}

func TestUpdateStatusFollowsStateMachine(t *testing.T) {
	ctx := context.Background()
	l, _ := openLedger(t, nil, nil)
	item, _ := l.Add(ctx, NewItem{BaseSalary: 100})

	processing := StatusProcessing
	if _, err := l.Update(ctx, item.ID, ItemPatch{Status: &processing}); err != nil {
		t.Fatalf("pending to processing: %v", err)
	}
	paid := StatusPaid
	done, err := l.Update(ctx, item.ID, ItemPatch{Status: &paid})
	if err != nil {
		t.Fatalf("processing to paid: %v", err)
	}
	if done.PaymentDate != "2024-03-15" {
		t.Fatalf("expected payment date stamped, got %q", done.PaymentDate)
	}
	pending := StatusPending
	if _, err := l.Update(ctx, item.ID, ItemPatch{Status: &pending}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition leaving Paid, got %v", err)
	}
	bogus := "Cancelled"
	if _, err := l.Update(ctx, item.ID, ItemPatch{Status: &bogus}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateDeleteGetUnknown(t *testing.T) {
	ctx := context.Background()
	l, _ := openLedger(t, nil, nil)
	notes := "x"
	if _, err := l.Update(ctx, 404, ItemPatch{Notes: &notes}); !errors.Is(err, ErrPayrollItemNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}
	if err := l.Delete(ctx, 404); !errors.Is(err, ErrPayrollItemNotFound) {
		t.Fatalf("expected not found on delete, got %v", err)
	}
	if _, err := l.Get(404); !errors.Is(err, ErrPayrollItemNotFound) {
		t.Fatalf("expected not found on get, got %v", err)
	}
}

func TestProcessBatchOnlyPaysPending(t *testing.T) {
	ctx := context.Background()
	seed := func() []Item {
		return []Item{
			{ID: 5, EmployeeID: 1, Status: StatusPending, PayPeriod: "March 2024"},
			{ID: 7, EmployeeID: 2, Status: StatusPaid, PaymentDate: "2024-02-28", PayPeriod: "March 2024"},
		}
	}
	l, _ := openLedger(t, nil, seed)

	result, err := l.ProcessBatch(ctx, []int{5, 7})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(result.Updated) != 1 || result.Updated[0] != 5 || len(result.Skipped) != 1 || result.Skipped[0] != 7 {
		t.Fatalf("unexpected batch result %+v", result)
	}
	five, _ := l.Get(5)
	if five.Status != StatusPaid || five.PaymentDate != "2024-03-15" {
		t.Fatalf("expected id 5 paid today, got %+v", five)
	}
	seven, _ := l.Get(7)
	if seven.Status != StatusPaid || seven.PaymentDate != "2024-02-28" {
		t.Fatalf("expected id 7 unchanged, got %+v", seven)
	}

	again, err := l.ProcessBatch(ctx, []int{5, 7})
	if err != nil {
		t.Fatalf("second process: %v", err)
	}
	if len(again.Updated) != 0 {
		t.Fatalf("expected second run to change nothing, got %+v", again)
	}
	if five2, _ := l.Get(5); five2 != five {
		t.Fatalf("expected id 5 unchanged by second run, got %+v", five2)
	}
}

func TestProcessingStepBeforePaid(t *testing.T) {
	ctx := context.Background()
	l, _ := openLedger(t, nil, func() []Item {
		return []Item{{ID: 1, Status: StatusPending}, {ID: 2, Status: StatusPending}}
	})
	begun, err := l.BeginProcessing(ctx, []int{1})
	if err != nil || len(begun.Updated) != 1 {
		t.Fatalf("begin processing: %+v, %v", begun, err)
	}
	// ProcessBatch ignores lines already in Processing.
	if res, _ := l.ProcessBatch(ctx, []int{1}); len(res.Updated) != 0 {
		t.Fatalf("expected processing line to be skipped, got %+v", res)
	}
	done, err := l.CompleteProcessing(ctx, []int{1, 2, 99})
	if err != nil {
		t.Fatalf("complete processing: %v", err)
	}
	if len(done.Updated) != 1 || len(done.Skipped) != 2 {
		t.Fatalf("unexpected completion result %+v", done)
	}
	one, _ := l.Get(1)
	if one.Status != StatusPaid || one.PaymentDate == "" {
		t.Fatalf("expected line 1 paid, got %+v", one)
	}
	two, _ := l.Get(2)
	if two.Status != StatusPending {
		t.Fatalf("expected line 2 still pending, got %+v", two)
	}
}

func TestGenerateForPeriodIsIdempotent(t *testing.T) {
	ctx := context.Background()
	roster := staticRoster(employees.Seed())
	roster[0].Salary = 90000
	l, _ := openLedger(t, roster, nil)

	first, err := l.GenerateForPeriod(ctx, "April 2024")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(first.Created) != 3 || first.Skipped != 0 {
		t.Fatalf("expected three new lines, got %+v", first)
	}
	for _, item := range first.Created {
		if item.Status != StatusPending || item.PayPeriod != "April 2024" {
			t.Fatalf("unexpected generated line %+v", item)
		}
		if item.NetPay != ComputeNetPay(item) {
			t.Fatalf("net pay invariant broken for %+v", item)
		}
	}
	john := first.Created[0]
	if john.BaseSalary != 90000 || john.TaxWithholding != 18000 || john.Name != "John Doe" {
		t.Fatalf("expected salary-based amounts for John, got %+v", john)
	}
	if first.Created[1].TaxWithholding != 12000 {
		t.Fatalf("expected fallback tax of 12000, got %v", first.Created[1].TaxWithholding)
	}

	second, err := l.GenerateForPeriod(ctx, "April 2024")
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if len(second.Created) != 0 || second.Skipped != 3 {
		t.Fatalf("expected no duplicates, got %+v", second)
	}
	if len(l.ListForPeriod("April 2024")) != 3 {
		t.Fatalf("expected three lines for the period, got %d", len(l.ListForPeriod("April 2024")))
	}
	if _, err := l.GenerateForPeriod(ctx, "  "); !errors.Is(err, ErrEmptyPeriod) {
		t.Fatalf("expected ErrEmptyPeriod, got %v", err)
	}
}

func TestGenerateFillsGapsForNewEmployees(t *testing.T) {
	ctx := context.Background()
	roster := staticRoster(employees.Seed()[:1])
	l, _ := openLedger(t, nil, nil)
	l.roster = roster
	_, _ = l.GenerateForPeriod(ctx, "May 2024")

	l.roster = staticRoster(employees.Seed())
	res, err := l.GenerateForPeriod(ctx, "May 2024")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(res.Created) != 2 || res.Skipped != 1 {
		t.Fatalf("expected two gap lines, got %+v", res)
	}
	ids := map[int]bool{}
	for _, item := range l.List() {
		if ids[item.ID] {
			t.Fatalf("duplicate id %d", item.ID)
		}
		ids[item.ID] = true
	}
}

func TestSeedForRoster(t *testing.T) {
	items := SeedFor(employees.Seed(), NewCompensator(7), fixedNow)
	if len(items) != 3 {
		t.Fatalf("expected one line per employee, got %d", len(items))
	}
	for idx, item := range items {
		if item.ID != idx+1 || item.PayPeriod != "March 2024" || item.Overtime != 0 {
			t.Fatalf("unexpected seed line %+v", item)
		}
		if item.Status == StatusPaid && item.PaymentDate != "2024-03-15" {
			t.Fatalf("paid seed line without payment date %+v", item)
		}
		if item.NetPay != ComputeNetPay(item) {
			t.Fatalf("net pay invariant broken for %+v", item)
		}
	}
}

func TestSummarize(t *testing.T) {
	l, _ := openLedger(t, nil, func() []Item {
		return []Item{
			{ID: 1, PayPeriod: "March 2024", Status: StatusPaid, BaseSalary: 100, Deductions: 10, NetPay: 90},
			{ID: 2, PayPeriod: "March 2024", Status: StatusPending, BaseSalary: 200, Bonus: 20, TaxWithholding: 40, NetPay: 180},
			{ID: 3, PayPeriod: "April 2024", Status: StatusProcessing, BaseSalary: 300, NetPay: 300},
		}
	})
	march := l.Summarize("March 2024")
	if march.Count != 2 || march.Paid != 1 || march.Pending != 1 || march.TotalGross != 320 || march.TotalDeductions != 50 || march.TotalNet != 270 {
		t.Fatalf("unexpected march summary %+v", march)
	}
	all := l.Summarize("")
	if all.Count != 3 || all.Processing != 1 {
		t.Fatalf("unexpected overall summary %+v", all)
	}
	if periods := l.Periods(); len(periods) != 2 || periods[0] != "March 2024" {
		t.Fatalf("unexpected periods %v", periods)
	}
}

func TestLedgerSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	l, store := openLedger(t, nil, nil)
	item, _ := l.Add(ctx, NewItem{EmployeeID: 3, BaseSalary: 1000, PayPeriod: "March 2024"})
	_, _ = l.ProcessBatch(ctx, []int{item.ID})

	reopened, err := Open(ctx, store, nil, nil, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.Get(item.ID)
	if err != nil || got.Status != StatusPaid {
		t.Fatalf("expected persisted paid line, got %+v, %v", got, err)
	}
}

func TestRenderPayslip(t *testing.T) {
	var buf bytes.Buffer
	item := Item{ID: 1, EmployeeID: 1, Name: "John Doe", Position: "Senior Developer", Department: "Engineering",
		BaseSalary: 60000, Bonus: 1000, Deductions: 500, TaxWithholding: 12000, Benefits: 800, NetPay: 47700,
		Status: StatusPaid, PayPeriod: "March 2024", PaymentDate: "2024-03-15", Notes: "Quarterly bonus included"}
	if err := RenderPayslip(&buf, item, Issuer{Name: "Core Crew Connect", Email: "info@corecrew.com"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected pdf output, got %q", buf.Bytes()[:min(buf.Len(), 16)])
	}
}

func TestWriteWorkbook(t *testing.T) {
	items := []Item{
		{ID: 1, EmployeeID: 1, Name: "John Doe", PayPeriod: "March 2024", BaseSalary: 5000, NetPay: 4000, Status: StatusPaid},
		{ID: 2, EmployeeID: 2, Name: "Sarah Johnson", PayPeriod: "March 2024", BaseSalary: 6000, NetPay: 4800, Status: StatusPending},
	}
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, items); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header, 2 lines and totals, got %d rows", len(rows))
	}
	if rows[0][2] != "Name" || rows[2][2] != "Sarah Johnson" || rows[3][0] != "Total" {
		t.Fatalf("unexpected layout: %v", rows)
	}
	formula, err := f.GetCellFormula(exportSheet, "M4")
	if err != nil || formula != "SUM(M2:M3)" {
		t.Fatalf("expected net pay total formula, got %q err=%v", formula, err)
	}

	for _, tc := range []struct {
		cell  string
		money bool
		bold  bool
	}{
		{"A4", false, true},
		{"G2", true, false},
		{"M4", true, true},
		{"N4", false, true},
	} {
		id, err := f.GetCellStyle(exportSheet, tc.cell)
		if err != nil {
			t.Fatalf("style of %s: %v", tc.cell, err)
		}
		style, err := f.GetStyle(id)
		if err != nil {
			t.Fatalf("style %d: %v", id, err)
		}
		bold := style.Font != nil && style.Font.Bold
		if (style.NumFmt == 4) != tc.money || bold != tc.bold {
			t.Fatalf("%s: numFmt=%d bold=%v, want money=%v bold=%v", tc.cell, style.NumFmt, bold, tc.money, tc.bold)
		}
	}
}
