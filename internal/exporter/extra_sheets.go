package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/analytics"
)

// Analytics sheet names, matching the downloadable report layout of the
// deployed dashboard.
const (
	SheetLowStock        = "Low Stock Alerts"
	SheetTopPerformers   = "Top Performers"
	SheetTrends          = "Performance Trends"
	SheetCityPerformance = "City Performance"
	SheetRevenue         = "Revenue Analysis"
)

func writeAnalyticsSheets(f *excelize.File, report *analytics.Report) error {
	lowStock := make([][]interface{}, 0, len(report.LowStock))
	for _, a := range report.LowStock {
		lowStock = append(lowStock, []interface{}{a.Platform, a.SKU, a.LastWeekSales, a.Week, a.AlertLevel})
	}
	if err := writeTableSheet(f, SheetLowStock,
		[]interface{}{"Platform", "SKU", "Last Week Sales", "Week", "Alert Level"}, lowStock); err != nil {
		return err
	}

	top := make([][]interface{}, 0, len(report.TopPerformers))
	for _, p := range report.TopPerformers {
		top = append(top, []interface{}{p.Platform, p.SKU, p.TotalSales, p.Rank, p.PerformanceLevel})
	}
	if err := writeTableSheet(f, SheetTopPerformers,
		[]interface{}{"Platform", "SKU", "Total Sales", "Rank", "Performance Level"}, top); err != nil {
		return err
	}

	trends := make([][]interface{}, 0, len(report.Trends))
	for _, tr := range report.Trends {
		trends = append(trends, []interface{}{tr.Platform, tr.SKU, tr.Trend, tr.RecentWeekSales, tr.Recommendation})
	}
	if err := writeTableSheet(f, SheetTrends,
		[]interface{}{"Platform", "SKU", "Trend", "Recent Weeks Sales", "Recommendation"}, trends); err != nil {
		return err
	}

	cities := make([][]interface{}, 0, len(report.CityPerformance))
	for _, c := range report.CityPerformance {
		cities = append(cities, []interface{}{c.Platform, c.City, c.TotalSales, c.AvgSales, c.Rating})
	}
	if err := writeTableSheet(f, SheetCityPerformance,
		[]interface{}{"Platform", "City", "Total Sales", "Avg Sales", "Performance Rating"}, cities); err != nil {
		return err
	}

	revenue := make([][]interface{}, 0, len(report.Revenue))
	for _, r := range report.Revenue {
		revenue = append(revenue, []interface{}{r.Platform, r.SKU, r.TotalUnits, r.PricePerUnit, r.Revenue, r.RevenueShare})
	}
	return writeTableSheet(f, SheetRevenue,
		[]interface{}{"Platform", "SKU", "Total Units Sold", "Price Per Unit", "Estimated Revenue", "Revenue Share (%)"}, revenue)
}

func writeTableSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
