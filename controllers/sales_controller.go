package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/middleware"
	"github.com/shahzadcollection/storefront-api/services"
)

// salesReport validates the request body and builds the report
func salesReport(c *gin.Context) (*services.SalesReport, bool) {
	var req services.ReportRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return nil, false
	}

	params, err := req.Params()
	if err != nil {
		middleware.RespondError(c, err)
		return nil, false
	}

	report, err := orderService().SalesReport(c.Request.Context(), params)
	if err != nil {
		middleware.RespondError(c, err)
		return nil, false
	}
	return report, true
}

// SalesReport handles POST /api/v1/admin/sales/report
func SalesReport(c *gin.Context) {
	report, ok := salesReport(c)
	if !ok {
		return
	}
	middleware.RespondOK(c, http.StatusOK, report)
}

// ExportSalesReport handles POST /api/v1/admin/sales/report/export - the report as an xlsx attachment
func ExportSalesReport(c *gin.Context) {
	report, ok := salesReport(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := services.WriteSalesReportXLSX(&buf, report); err != nil {
		middleware.RespondError(c, services.InternalError("EXPORT_FAILED", err))
		return
	}

	filename := fmt.Sprintf("sales-report-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, services.XLSXContentType, buf.Bytes())
}
