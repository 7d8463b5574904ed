package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"officetime/internal/domain/balance"
	"officetime/internal/domain/employee"
)

// Service renders balance data into exportable artifacts. CSV exports are
// returned in memory; PDFs are written under Dir and served by path.
type Service struct {
	Balances  *balance.Service
	Employees *employee.Store
	Dir       string
}

func NewService(balances *balance.Service, employees *employee.Store, dir string) *Service {
	if dir == "" {
		dir = "storage/reports"
	}
	return &Service{Balances: balances, Employees: employees, Dir: dir}
}

// YearlyBalanceCSV exports the monthly breakdown of one employee's year.
func (s *Service) YearlyBalanceCSV(ctx context.Context, tenantID, employeeID string, year int, today time.Time) ([]byte, error) {
	result, err := s.Balances.YearlyBalance(ctx, tenantID, employeeID, year, today)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write([]string{"month", "workedMinutes", "creditMinutes", "targetMinutes", "balance", "cumulative"}); err != nil {
		return nil, err
	}
	for _, month := range result.Breakdown {
		record := []string{
			month.Month.String(),
			strconv.Itoa(month.WorkedMinutes),
			strconv.Itoa(month.CreditMinutes),
			strconv.Itoa(month.TargetMinutes),
			strconv.Itoa(month.Balance),
			strconv.Itoa(month.Cumulative),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	if err := writer.Write([]string{"corrections", "", "", "", strconv.Itoa(result.CorrectionMinutes), ""}); err != nil {
		return nil, err
	}
	if err := writer.Write([]string{"total", "", "", "", strconv.Itoa(result.YearlyBalance), ""}); err != nil {
		return nil, err
	}
	writer.Flush()
	return buf.Bytes(), writer.Error()
}

// MonthlyOverviewCSV exports one row per employee for a month, for managers
// reviewing a whole team.
func (s *Service) MonthlyOverviewCSV(ctx context.Context, tenantID string, year int, month time.Month) ([]byte, error) {
	employees, err := s.Employees.List(ctx, tenantID, 1000, 0)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write([]string{"employee", "email", "workedMinutes", "creditMinutes", "targetMinutes", "difference"}); err != nil {
		return nil, err
	}
	for _, e := range employees {
		totals, err := s.Balances.MonthlyTotals(ctx, tenantID, e.ID, year, month)
		if err != nil {
			// Employees without settings just get an empty row.
			if writeErr := writer.Write([]string{e.FirstName + " " + e.LastName, e.Email, "", "", "", ""}); writeErr != nil {
				return nil, writeErr
			}
			continue
		}
		record := []string{
			e.FirstName + " " + e.LastName,
			e.Email,
			strconv.Itoa(totals.WorkedMinutes),
			strconv.Itoa(totals.CreditMinutes),
			strconv.Itoa(totals.TargetMinutes),
			strconv.Itoa(totals.Difference),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	return buf.Bytes(), writer.Error()
}

// YearlyBalancePDF renders the yearly saldo with its monthly breakdown and
// vacation split to a PDF file, returning the file path.
func (s *Service) YearlyBalancePDF(ctx context.Context, tenantID, employeeID, employeeName string, year int, today time.Time) (string, error) {
	result, err := s.Balances.YearlyBalance(ctx, tenantID, employeeID, year, today)
	if err != nil {
		return "", err
	}
	vacationBalance, err := s.Balances.VacationBalance(ctx, tenantID, employeeID, year, today)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.Dir, fmt.Sprintf("balance-%s-%d.pdf", employeeID, year))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Time Balance %d", year))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", employeeName))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(35, 7, "Month", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 7, "Worked", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Credit", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Target", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Balance", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, month := range result.Breakdown {
		pdf.CellFormat(35, 7, month.Month.String(), "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 7, formatHours(month.WorkedMinutes), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, formatHours(month.CreditMinutes), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, formatHours(month.TargetMinutes), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, formatHours(month.Balance), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.Cell(0, 8, fmt.Sprintf("Corrections: %s", formatHours(result.CorrectionMinutes)))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Yearly balance: %s", formatHours(result.YearlyBalance)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Vacation taken: %.1f days", vacationBalance.Taken))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Vacation remaining: %.1f days (carry-over %.1f, new %.1f)",
		vacationBalance.Remaining, vacationBalance.CarryOverRemaining, vacationBalance.NewVacationRemaining))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}

func formatHours(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%d:%02d", sign, minutes/60, minutes%60)
}
