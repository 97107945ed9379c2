package handler

import (
	"time"

	"go-coffee-ops/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetOverview returns the dashboard headline numbers
// GET /api/v1/reports/overview
func (h *ReportHandler) GetOverview(c *fiber.Ctx) error {
	report, err := h.reportService.GetOverview(getTenantID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(report)
}

// GetSales returns period revenue vs the previous period
// GET /api/v1/reports/sales?range=7d|1m|3m|6m|12m
func (h *ReportHandler) GetSales(c *fiber.Ctx) error {
	rangeParam := c.Query("range", "7d") // Default 7 days
	now := time.Now()
	var startDate time.Time

	switch rangeParam {
	case "7d":
		startDate = now.AddDate(0, 0, -7)
	case "1m":
		startDate = now.AddDate(0, -1, 0)
	case "3m":
		startDate = now.AddDate(0, -3, 0)
	case "6m":
		startDate = now.AddDate(0, -6, 0)
	case "12m":
		startDate = now.AddDate(0, -12, 0)
	default:
		startDate = now.AddDate(0, 0, -7)
	}

	report, err := h.reportService.GetSalesReport(getTenantID(c), startDate, now)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(report)
}
