package services

import (
	"fmt"
	"io"
	"slices"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

// XLSXContentType is the media type of the report workbook
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteSalesReportXLSX renders a report as an Excel workbook with Summary,
// Sales by Date, Top Products and Breakdown sheets.
func WriteSalesReportXLSX(w io.Writer, report *SalesReport) error {
	file := xlsx.NewFile()

	if err := writeSummarySheet(file, report); err != nil {
		return err
	}
	if err := writeSalesByDateSheet(file, report); err != nil {
		return err
	}
	if err := writeTopProductsSheet(file, report); err != nil {
		return err
	}
	if err := writeBreakdownSheet(file, report); err != nil {
		return err
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(file *xlsx.File, report *SalesReport) error {
	sheet, err := file.AddSheet("Summary")
	if err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}

	addHeaderRow(sheet, "Metric", "Value")
	s := report.Summary
	addCountRow(sheet, "Total Orders", s.TotalOrders)
	addAmountRow(sheet, "Total Revenue", s.TotalRevenue)
	addCountRow(sheet, "Delivered Orders", s.DeliveredOrders)
	addAmountRow(sheet, "Delivered Revenue", s.DeliveredRevenue)
	addAmountRow(sheet, "Average Order Value", s.AverageOrderValue)

	r := report.DateRange
	row := sheet.AddRow()
	row.AddCell().SetString("Group By")
	row.AddCell().SetString(string(r.GroupBy))
	if r.StartDate != nil {
		row = sheet.AddRow()
		row.AddCell().SetString("Start Date")
		row.AddCell().SetString(r.StartDate.Format("2006-01-02 15:04:05"))
	}
	if r.EndDate != nil {
		row = sheet.AddRow()
		row.AddCell().SetString("End Date")
		row.AddCell().SetString(r.EndDate.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func writeSalesByDateSheet(file *xlsx.File, report *SalesReport) error {
	sheet, err := file.AddSheet("Sales by Date")
	if err != nil {
		return fmt.Errorf("add sales by date sheet: %w", err)
	}

	addHeaderRow(sheet, "Date", "Revenue", "Orders")
	for _, b := range report.SalesByDate {
		row := sheet.AddRow()
		row.AddCell().SetString(b.Date)
		row.AddCell().SetFloat(b.Revenue.InexactFloat64())
		row.AddCell().SetInt(b.Orders)
	}
	return nil
}

func writeTopProductsSheet(file *xlsx.File, report *SalesReport) error {
	sheet, err := file.AddSheet("Top Products")
	if err != nil {
		return fmt.Errorf("add top products sheet: %w", err)
	}

	addHeaderRow(sheet, "ID", "Name", "Quantity", "Revenue")
	for _, p := range report.TopProducts {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(p.ID))
		row.AddCell().SetString(p.Name)
		row.AddCell().SetInt(p.Quantity)
		row.AddCell().SetFloat(p.Revenue.InexactFloat64())
	}
	return nil
}

// writeBreakdownSheet lists every grouped figure as (dimension, key, revenue, orders)
func writeBreakdownSheet(file *xlsx.File, report *SalesReport) error {
	sheet, err := file.AddSheet("Breakdown")
	if err != nil {
		return fmt.Errorf("add breakdown sheet: %w", err)
	}

	addHeaderRow(sheet, "Dimension", "Key", "Revenue", "Orders")
	addBreakdown(sheet, "Status", report.SalesByStatus, report.OrdersByStatus)
	addBreakdown(sheet, "Payment Method", report.SalesByPaymentMethod, report.OrdersByPaymentMethod)
	addBreakdown(sheet, "Category", report.SalesByCategory, nil)
	addBreakdown(sheet, "Type", report.SalesByType, nil)
	addBreakdown(sheet, "City", report.SalesByCity, nil)
	return nil
}

func addBreakdown(sheet *xlsx.Sheet, dimension string, revenue map[string]decimal.Decimal, orders map[string]int) {
	keys := make([]string, 0, len(revenue))
	for k := range revenue {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		row := sheet.AddRow()
		row.AddCell().SetString(dimension)
		row.AddCell().SetString(k)
		row.AddCell().SetFloat(revenue[k].InexactFloat64())
		if orders != nil {
			row.AddCell().SetInt(orders[k])
		}
	}
}

func addHeaderRow(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetValue(h)
	}
}

func addCountRow(sheet *xlsx.Sheet, label string, n int) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetInt(n)
}

func addAmountRow(sheet *xlsx.Sheet, label string, amount decimal.Decimal) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetFloat(amount.InexactFloat64())
}
