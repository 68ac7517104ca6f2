package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"cleanbook/internal/domains/report/model/dto"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	SheetRevenue  = "Revenue"
	SheetServices = "Services"

	defaultSheet = "Sheet1"
)

// RevenueFileName names the workbook after its inclusive period.
func RevenueFileName(period dto.PeriodResponse) string {
	return fmt.Sprintf("revenue_%s_to_%s.xlsx", period.From, period.To)
}

// Revenue renders the revenue buckets and the per-service totals into an xlsx workbook.
func Revenue(stats dto.RevenueStatsResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	index, err := f.NewSheet(SheetRevenue)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet %s: %w", SheetRevenue, err)
	}

	f.SetActiveSheet(index)

	rows := [][]any{
		{fmt.Sprintf("Period: %s - %s (%s)", stats.Period.From, stats.Period.To, stats.GroupBy)},
		{"Period", "Bookings", "Revenue (KRW)"},
	}
	for _, bucket := range stats.RevenueData {
		rows = append(rows, []any{bucket.Label, bucket.Count, bucket.Revenue})
	}

	rows = append(rows, []any{"Total", stats.TotalBookings, stats.TotalRevenue})

	if err = writeRows(f, SheetRevenue, rows); err != nil {
		return nil, err
	}

	_ = f.MergeCell(SheetRevenue, "A1", "C1")
	_ = f.SetCellStyle(SheetRevenue, "A2", "C2", header)
	_ = f.SetColWidth(SheetRevenue, "A", "A", 20)
	_ = f.SetColWidth(SheetRevenue, "B", "C", 16)

	if _, err = f.NewSheet(SheetServices); err != nil {
		return nil, fmt.Errorf("failed to create sheet %s: %w", SheetServices, err)
	}

	rows = [][]any{{"Service", "Bookings", "Revenue (KRW)"}}
	for _, service := range stats.RevenueByService {
		rows = append(rows, []any{service.Name, service.Count, service.Revenue})
	}

	if err = writeRows(f, SheetServices, rows); err != nil {
		return nil, err
	}

	_ = f.SetCellStyle(SheetServices, "A1", "C1", header)
	_ = f.SetColWidth(SheetServices, "A", "A", 30)
	_ = f.SetColWidth(SheetServices, "B", "C", 16)

	_ = f.DeleteSheet(defaultSheet)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}

		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
	}

	return nil
}
