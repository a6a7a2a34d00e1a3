package controllers

import (
	"fmt"
	"time"

	"github.com/Govind-619/quickcart-payments/models"
	"github.com/Govind-619/quickcart-payments/services"
	"github.com/Govind-619/quickcart-payments/store"
	"github.com/Govind-619/quickcart-payments/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"
)

var reportHeaders = []string{"Session ID", "User ID", "Gateway", "Provider Ref", "Amount", "Currency", "Status", "Created", "Paid"}

func sessionFilter(c *gin.Context) (store.ListFilter, bool) {
	filter := store.ListFilter{UserID: c.Query("userId")}

	if raw := c.Query("gateway"); raw != "" {
		gateway, ok := models.ParseGateway(raw)
		if !ok {
			utils.BadRequest(c, "gateway must be RAZORPAY or STRIPE")
			return filter, false
		}
		filter.Gateway = gateway
	}

	switch status := models.PaymentStatus(c.Query("status")); status {
	case "":
	case models.PaymentStatusPending, models.PaymentStatusPaid:
		filter.Status = status
	default:
		utils.BadRequest(c, "status must be PENDING or PAID")
		return filter, false
	}

	return filter, true
}

func (pc *PaymentController) loadSessions(c *gin.Context) ([]models.PaymentSession, bool) {
	filter, ok := sessionFilter(c)
	if !ok {
		return nil, false
	}
	sessions, err := pc.Broker.ListSessions(c.Request.Context(), filter)
	if err != nil {
		utils.RespondWithError(c, err)
		return nil, false
	}
	return sessions, true
}

func formatPaidAt(s models.PaymentSession) string {
	if s.PaidAt == nil {
		return ""
	}
	return s.PaidAt.Format("2006-01-02 15:04")
}

// GET /admin/payments/sessions
func (pc *PaymentController) ListSessions(c *gin.Context) {
	sessions, ok := pc.loadSessions(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	pagination.SetTotal(int64(len(sessions)))
	start, end := pagination.Bounds(len(sessions))

	utils.Success(c, gin.H{
		"sessions":   sessions[start:end],
		"summary":    services.SummarizeSessions(sessions),
		"pagination": pagination,
	})
}

// GET /admin/payments/report/excel
func (pc *PaymentController) DownloadReportExcel(c *gin.Context) {
	sessions, ok := pc.loadSessions(c)
	if !ok {
		return
	}
	summary := services.SummarizeSessions(sessions)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Payment Sessions")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet")
		return
	}

	bold := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	bold.Font = *font

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("QUICKCART - Payment Sessions")
	sheet.AddRow().AddCell().SetString("Generated: " + time.Now().Format("2006-01-02 15:04"))
	sheet.AddRow()

	headerRow := sheet.AddRow()
	for _, h := range reportHeaders {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(bold)
	}

	for _, s := range sessions {
		row := sheet.AddRow()
		row.AddCell().SetString(s.SessionID)
		row.AddCell().SetString(s.UserID)
		row.AddCell().SetString(string(s.Gateway))
		row.AddCell().SetString(s.ProviderReferenceID)
		row.AddCell().SetFloat(s.Amount)
		row.AddCell().SetString(s.Currency)
		row.AddCell().SetString(string(s.Status))
		row.AddCell().SetString(s.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(formatPaidAt(s))
	}

	sheet.AddRow()
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	summaryRow.Cells[0].SetStyle(bold)

	summaryData := [][]string{
		{"Total Sessions", fmt.Sprintf("%d", summary.TotalSessions)},
		{"Paid Sessions", fmt.Sprintf("%d", summary.PaidSessions)},
		{"Pending Sessions", fmt.Sprintf("%d", summary.PendingSessions)},
	}
	for _, total := range summary.PaidByCurrency {
		summaryData = append(summaryData, []string{"Paid " + total.Currency, fmt.Sprintf("%.2f", total.Amount)})
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=payment_sessions.xlsx")
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		return
	}
	utils.LogInfo("Generated Excel payment report with %d sessions", len(sessions))
}

// GET /admin/payments/report/pdf
func (pc *PaymentController) DownloadReportPDF(c *gin.Context) {
	sessions, ok := pc.loadSessions(c)
	if !ok {
		return
	}
	summary := services.SummarizeSessions(sessions)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "QUICKCART - Payment Sessions")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, "Generated: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(12)

	colWidths := []float64{62, 40, 22, 50, 22, 18, 20, 22, 22}
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(200, 200, 200)
	for i, h := range reportHeaders {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for i, s := range sessions {
		fill := i%2 == 1
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(colWidths[0], 7, s.SessionID, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[1], 7, s.UserID, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[2], 7, string(s.Gateway), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[3], 7, s.ProviderReferenceID, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[4], 7, fmt.Sprintf("%.2f", s.Amount), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[5], 7, s.Currency, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[6], 7, string(s.Status), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[7], 7, s.CreatedAt.Format("2006-01-02"), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[8], 7, formatPaidAt(s), "1", 0, "C", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(220, 230, 250)
	pdf.CellFormat(80, 9, "Summary", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	summaryRows := [][]string{
		{"Total Sessions", fmt.Sprintf("%d", summary.TotalSessions)},
		{"Paid Sessions", fmt.Sprintf("%d", summary.PaidSessions)},
		{"Pending Sessions", fmt.Sprintf("%d", summary.PendingSessions)},
	}
	for _, total := range summary.PaidByCurrency {
		summaryRows = append(summaryRows, []string{"Paid " + total.Currency, fmt.Sprintf("%.2f", total.Amount)})
	}
	for _, row := range summaryRows {
		pdf.CellFormat(50, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, row[1], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=payment_sessions.pdf")
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		return
	}
	utils.LogInfo("Generated PDF payment report with %d sessions", len(sessions))
}
