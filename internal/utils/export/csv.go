package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/expensly/expensly_backend/internal/core/domain"
)

// ExpenseSummaryCSV renders expense summary rows as a CSV document.
func ExpenseSummaryCSV(rows []domain.ExpenseSummaryRow, groupBy domain.SummaryGroupBy) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"ID", "Name", "Total Amount", "Expense Count"}
	if groupBy == domain.GroupByDepartment {
		header[1] = "Department"
	} else {
		header[1] = "Category"
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range rows {
		record := []string{
			rows[i].GroupID,
			rows[i].GroupName,
			rows[i].TotalAmount.StringFixed(2),
			strconv.FormatInt(rows[i].ExpenseCount, 10),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// MonthlySummaryCSV renders monthly summary rows as a CSV document.
func MonthlySummaryCSV(rows []domain.MonthlySummaryRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Year", "Month", "Total Amount", "Expense Count"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range rows {
		record := []string{
			strconv.Itoa(rows[i].Year),
			strconv.Itoa(rows[i].Month),
			rows[i].TotalAmount.StringFixed(2),
			strconv.FormatInt(rows[i].ExpenseCount, 10),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}
