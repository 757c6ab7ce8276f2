package handlers

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the receipt and summary endpoints under api
func RegisterRoutes(api *echo.Group, receipts *ReceiptHandler, summaries *SummaryHandler) {
	api.POST("/receipts/scan", receipts.Scan)
	api.POST("/receipts/scan/batch", receipts.BatchScan)
	api.GET("/receipts", receipts.List)
	api.GET("/receipts/categories", receipts.Categories)
	api.GET("/receipts/export/csv", receipts.ExportCSV)
	api.GET("/receipts/:id", receipts.Get)
	api.PUT("/receipts/:id", receipts.Update)
	api.DELETE("/receipts/:id", receipts.Delete)

	api.GET("/summary/monthly", summaries.Monthly)
	api.GET("/summary/monthly-list", summaries.MonthlyList)
}
