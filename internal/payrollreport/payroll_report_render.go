package payrollreport

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

func money(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

func renderPDF(r Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payroll Report "+r.ID)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		"Period: " + tr(r.PeriodLabel),
		fmt.Sprintf("Dates: %s to %s", r.PeriodStart.Format("2006-01-02"), r.PeriodEnd.Format("2006-01-02")),
		"Pay cycle: " + r.PayCycle,
		fmt.Sprintf("Employees: %d", r.EmployeeCount),
		"Gross pay: " + money(r.GrossPayCents),
		"Deductions: " + money(r.DeductionsCents),
		"Net pay: " + money(r.NetPayCents),
		"Status: " + r.Status,
		"Submitted by: " + tr(r.SubmittedBy),
	}
	if r.Approver != "" {
		lines = append(lines, "Approver: "+tr(r.Approver))
	}
	if r.Notes != "" {
		lines = append(lines, "Notes: "+tr(r.Notes))
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payroll report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

var xlsxHeader = []any{
	"ID", "Period", "Start", "End", "Pay cycle", "Employees",
	"Gross pay", "Deductions", "Net pay", "Status", "Submitted by", "Approver",
}

func renderXLSX(reps []ReportResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Payroll Reports"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return nil, err
	}
	for i, r := range reps {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			r.ID, r.PeriodLabel, r.PeriodStart, r.PeriodEnd, r.PayCycle, r.EmployeeCount,
			r.GrossPay, r.Deductions, r.NetPay, r.Status, r.SubmittedBy, r.Approver,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render payroll report xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
