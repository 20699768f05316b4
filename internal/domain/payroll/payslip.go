package payroll

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// Issuer is the company block printed at the top of a payslip.
type Issuer struct {
	Name    string
	Address string
	Email   string
	Phone   string
}

func RenderPayslip(w io.Writer, item Item, issuer Issuer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s - %s", item.PayPeriod, item.Name), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, issuer.Name)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{issuer.Address, issuer.Email, issuer.Phone} {
		if line == "" {
			continue
		}
		pdf.Cell(0, 5, line)
		pdf.Ln(5)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (#%d)", item.Name, item.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Position: %s, %s", item.Position, item.Department))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", item.PayPeriod))
	pdf.Ln(7)
	status := item.Status
	if item.PaymentDate != "" {
		status = fmt.Sprintf("%s on %s", item.Status, item.PaymentDate)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", status))
	pdf.Ln(12)

	rows := []struct {
		label  string
		amount float64
	}{
		{"Base salary", item.BaseSalary},
		{"Bonus", item.Bonus},
		{"Overtime", item.Overtime},
		{"Deductions", -item.Deductions},
		{"Tax withholding", -item.TaxWithholding},
		{"Benefits", -item.Benefits},
	}
	for _, row := range rows {
		pdf.CellFormat(90, 8, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, fmt.Sprintf("%.2f", row.amount), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(90, 8, "Net pay", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, fmt.Sprintf("%.2f", item.NetPay), "1", 1, "R", false, 0, "")

	if item.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, "Notes: "+item.Notes, "", "L", false)
	}
	return pdf.Output(w)
}
