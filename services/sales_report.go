package services

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shahzadcollection/storefront-api/models"
	"github.com/shahzadcollection/storefront-api/utils"
	"github.com/shopspring/decimal"
)

// GroupBy selects the time bucket of the sales-by-date series
type GroupBy string

const (
	GroupByDay   GroupBy = "day"
	GroupByWeek  GroupBy = "week"
	GroupByMonth GroupBy = "month"
	GroupByYear  GroupBy = "year"
)

const (
	topProductsLimit = 10
	unknownLabel     = "Unknown"
	dateLayout       = "2006-01-02"
)

// ReportRequest is the body of a sales report request
type ReportRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	GroupBy   string `json:"group_by"`
}

// ReportParams is a validated report request. Nil bounds are open.
type ReportParams struct {
	Start   *time.Time
	End     *time.Time
	GroupBy GroupBy
}

// Params validates the request. Dates may be RFC 3339 timestamps or plain
// dates; a plain end date covers that whole day.
func (r ReportRequest) Params() (ReportParams, error) {
	fields := map[string]string{}
	params := ReportParams{}

	switch g := GroupBy(strings.ToLower(strings.TrimSpace(r.GroupBy))); g {
	case "":
		params.GroupBy = GroupByDay
	case GroupByDay, GroupByWeek, GroupByMonth, GroupByYear:
		params.GroupBy = g
	default:
		fields["group_by"] = "must be one of: day, week, month, year"
	}

	if r.StartDate != "" {
		start, _, err := parseReportDate(r.StartDate)
		if err != nil {
			fields["start_date"] = "must be a date (YYYY-MM-DD) or RFC 3339 timestamp"
		} else {
			params.Start = &start
		}
	}
	if r.EndDate != "" {
		end, dateOnly, err := parseReportDate(r.EndDate)
		if err != nil {
			fields["end_date"] = "must be a date (YYYY-MM-DD) or RFC 3339 timestamp"
		} else {
			if dateOnly {
				end = end.Add(24*time.Hour - time.Nanosecond)
			}
			params.End = &end
		}
	}
	if params.Start != nil && params.End != nil && params.Start.After(*params.End) {
		fields["end_date"] = "must not be before start_date"
	}

	if len(fields) > 0 {
		return ReportParams{}, ValidationError("INVALID_REPORT_PARAMS", "Invalid report parameters", fields)
	}
	return params, nil
}

func parseReportDate(value string) (t time.Time, dateOnly bool, err error) {
	value = strings.TrimSpace(value)
	if t, err = time.ParseInLocation(dateLayout, value, time.UTC); err == nil {
		return t, true, nil
	}
	t, err = time.Parse(time.RFC3339Nano, value)
	return t.UTC(), false, err
}

// SalesSummary holds the headline figures of a report
type SalesSummary struct {
	TotalOrders       int             `json:"total_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	DeliveredOrders   int             `json:"delivered_orders"`
	DeliveredRevenue  decimal.Decimal `json:"delivered_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// DateBucket is one point of the sales-by-date series
type DateBucket struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

// ProductSales aggregates one product across all order snapshots
type ProductSales struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
	Image    string          `json:"image"`

	key string
}

// ReportDateRange echoes the resolved window and bucket size
type ReportDateRange struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	GroupBy   GroupBy    `json:"group_by"`
}

// SalesReport is derived on every request from the stored orders
type SalesReport struct {
	Summary               SalesSummary               `json:"summary"`
	SalesByStatus         map[string]decimal.Decimal `json:"sales_by_status"`
	OrdersByStatus        map[string]int             `json:"orders_by_status"`
	SalesByPaymentMethod  map[string]decimal.Decimal `json:"sales_by_payment_method"`
	OrdersByPaymentMethod map[string]int             `json:"orders_by_payment_method"`
	SalesByDate           []DateBucket               `json:"sales_by_date"`
	TopProducts           []ProductSales             `json:"top_products"`
	SalesByCategory       map[string]decimal.Decimal `json:"sales_by_category"`
	SalesByType           map[string]decimal.Decimal `json:"sales_by_type"`
	SalesByCity           map[string]decimal.Decimal `json:"sales_by_city"`
	DateRange             ReportDateRange            `json:"date_range"`
}

// SalesReport loads the orders in the window and aggregates them
func (s *OrderService) SalesReport(ctx context.Context, params ReportParams) (*SalesReport, error) {
	orders, err := s.OrdersForReport(ctx, params.Start, params.End)
	if err != nil {
		return nil, err
	}
	return BuildSalesReport(orders, params), nil
}

// BuildSalesReport aggregates orders into a report. Inactive orders and
// orders outside the window are skipped. Item revenue is the parsed display
// price times quantity, so unparseable prices add nothing.
func BuildSalesReport(orders []models.Order, params ReportParams) *SalesReport {
	groupBy := params.GroupBy
	if groupBy == "" {
		groupBy = GroupByDay
	}

	report := &SalesReport{
		SalesByStatus:         map[string]decimal.Decimal{},
		OrdersByStatus:        map[string]int{},
		SalesByPaymentMethod:  map[string]decimal.Decimal{},
		OrdersByPaymentMethod: map[string]int{},
		SalesByDate:           []DateBucket{},
		TopProducts:           []ProductSales{},
		SalesByCategory:       map[string]decimal.Decimal{},
		SalesByType:           map[string]decimal.Decimal{},
		SalesByCity:           map[string]decimal.Decimal{},
		DateRange:             ReportDateRange{StartDate: params.Start, EndDate: params.End, GroupBy: groupBy},
	}
	summary := &report.Summary
	summary.TotalRevenue = decimal.Zero
	summary.DeliveredRevenue = decimal.Zero
	summary.AverageOrderValue = decimal.Zero

	buckets := map[string]*DateBucket{}
	products := map[string]*ProductSales{}

	for _, order := range orders {
		if !order.Active || !inWindow(order.CreatedAt, params) {
			continue
		}

		summary.TotalOrders++
		summary.TotalRevenue = summary.TotalRevenue.Add(order.TotalAmount)
		if order.Status == models.OrderStatusDelivered {
			summary.DeliveredOrders++
			summary.DeliveredRevenue = summary.DeliveredRevenue.Add(order.TotalAmount)
		}

		addAmount(report.SalesByStatus, order.Status, order.TotalAmount)
		report.OrdersByStatus[order.Status]++
		addAmount(report.SalesByPaymentMethod, order.PaymentMethod, order.TotalAmount)
		report.OrdersByPaymentMethod[order.PaymentMethod]++
		addAmount(report.SalesByCity, labelOrUnknown(order.City), order.TotalAmount)

		key := BucketKey(order.CreatedAt, groupBy)
		b, ok := buckets[key]
		if !ok {
			b = &DateBucket{Date: key, Revenue: decimal.Zero}
			buckets[key] = b
		}
		b.Revenue = b.Revenue.Add(order.TotalAmount)
		b.Orders++

		for _, item := range order.Items {
			quantity := item.Quantity
			if quantity == 0 {
				quantity = 1
			}
			revenue := utils.LineTotal(item.Price, quantity)

			pk := productKey(item)
			p, ok := products[pk]
			if !ok {
				p = &ProductSales{ID: item.ID, Name: labelOrUnknown(item.Name), Image: item.Image, Revenue: decimal.Zero, key: pk}
				products[pk] = p
			}
			p.Quantity += quantity
			p.Revenue = p.Revenue.Add(revenue)

			addAmount(report.SalesByCategory, labelOrUnknown(item.Category), revenue)
			addAmount(report.SalesByType, labelOrUnknown(item.Type), revenue)
		}
	}

	if summary.TotalOrders > 0 {
		summary.AverageOrderValue = summary.TotalRevenue.
			Div(decimal.NewFromInt(int64(summary.TotalOrders))).Round(2)
	}

	for _, b := range buckets {
		report.SalesByDate = append(report.SalesByDate, *b)
	}
	slices.SortFunc(report.SalesByDate, func(a, b DateBucket) int {
		return strings.Compare(a.Date, b.Date)
	})

	for _, p := range products {
		report.TopProducts = append(report.TopProducts, *p)
	}
	slices.SortFunc(report.TopProducts, func(a, b ProductSales) int {
		if c := b.Revenue.Cmp(a.Revenue); c != 0 {
			return c
		}
		return cmp.Compare(a.key, b.key)
	})
	if len(report.TopProducts) > topProductsLimit {
		report.TopProducts = report.TopProducts[:topProductsLimit]
	}

	return report
}

// BucketKey formats t (in UTC) as the bucket it falls into. Weeks start on Sunday.
func BucketKey(t time.Time, groupBy GroupBy) string {
	t = t.UTC()
	switch groupBy {
	case GroupByWeek:
		return t.AddDate(0, 0, -int(t.Weekday())).Format(dateLayout)
	case GroupByMonth:
		return t.Format("2006-01")
	case GroupByYear:
		return t.Format("2006")
	default:
		return t.Format(dateLayout)
	}
}

func inWindow(t time.Time, params ReportParams) bool {
	if params.Start != nil && t.Before(*params.Start) {
		return false
	}
	if params.End != nil && t.After(*params.End) {
		return false
	}
	return true
}

// productKey groups snapshots by product id, or by name for items without one
func productKey(item models.OrderItem) string {
	if item.ID != 0 {
		return "id:" + strconv.FormatUint(uint64(item.ID), 10)
	}
	return "name:" + item.Name
}

func addAmount(m map[string]decimal.Decimal, key string, amount decimal.Decimal) {
	m[key] = m[key].Add(amount)
}

func labelOrUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknownLabel
	}
	return s
}
