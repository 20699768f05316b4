package payroll

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Payroll"

var exportColumns = []struct {
	header string
	width  float64
	value  func(Item) any
}{
	{"ID", 6, func(i Item) any { return i.ID }},
	{"Employee ID", 12, func(i Item) any { return i.EmployeeID }},
	{"Name", 22, func(i Item) any { return i.Name }},
	{"Department", 16, func(i Item) any { return i.Department }},
	{"Position", 22, func(i Item) any { return i.Position }},
	{"Pay Period", 16, func(i Item) any { return i.PayPeriod }},
	{"Base Salary", 14, func(i Item) any { return i.BaseSalary }},
	{"Bonus", 12, func(i Item) any { return i.Bonus }},
	{"Overtime", 12, func(i Item) any { return i.Overtime }},
	{"Deductions", 12, func(i Item) any { return i.Deductions }},
	{"Tax Withholding", 16, func(i Item) any { return i.TaxWithholding }},
	{"Benefits", 12, func(i Item) any { return i.Benefits }},
	{"Net Pay", 14, func(i Item) any { return i.NetPay }},
	{"Status", 12, func(i Item) any { return i.Status }},
	{"Payment Date", 14, func(i Item) any { return i.PaymentDate }},
}

// WriteWorkbook writes items as a single-sheet XLSX workbook with a header
// row and a closing totals row for the amount columns.
func WriteWorkbook(w io.Writer, items []Item) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}
	moneyTotal, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 4})
	if err != nil {
		return err
	}

	for col, c := range exportColumns {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(exportSheet, name, name, c.width); err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheet, name+"1", c.header); err != nil {
			return err
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportColumns))
	if err := f.SetCellStyle(exportSheet, "A1", lastCol+"1", bold); err != nil {
		return err
	}

	for idx, item := range items {
		for col, c := range exportColumns {
			cell, err := excelize.CoordinatesToCellName(col+1, idx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(exportSheet, cell, c.value(item)); err != nil {
				return err
			}
		}
	}

	totalRow := len(items) + 2
	if err := f.SetCellValue(exportSheet, fmt.Sprintf("A%d", totalRow), "Total"); err != nil {
		return err
	}
	if err := f.SetCellStyle(exportSheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("%s%d", lastCol, totalRow), bold); err != nil {
		return err
	}
	if len(items) > 0 {
		// Base Salary through Net Pay.
		for col := 7; col <= 13; col++ {
			name, _ := excelize.ColumnNumberToName(col)
			cell := fmt.Sprintf("%s%d", name, totalRow)
			formula := fmt.Sprintf("SUM(%s2:%s%d)", name, name, totalRow-1)
			if err := f.SetCellFormula(exportSheet, cell, formula); err != nil {
				return err
			}
		}
		first, _ := excelize.CoordinatesToCellName(7, 2)
		last, _ := excelize.CoordinatesToCellName(13, totalRow-1)
		if err := f.SetCellStyle(exportSheet, first, last, money); err != nil {
			return err
		}
		first, _ = excelize.CoordinatesToCellName(7, totalRow)
		last, _ = excelize.CoordinatesToCellName(13, totalRow)
		if err := f.SetCellStyle(exportSheet, first, last, moneyTotal); err != nil {
			return err
		}
	}
	if err := f.SetPanes(exportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
