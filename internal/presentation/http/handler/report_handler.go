package handler

import (
	"github.com/fagundes/debt-ledger/internal/application/service"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/fagundes/debt-ledger/internal/presentation/http/dto/request"
	"github.com/fagundes/debt-ledger/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ReportHandler renders and exports customer statements
type ReportHandler struct {
	exportService *service.ExportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(exportService *service.ExportService) *ReportHandler {
	return &ReportHandler{exportService: exportService}
}

// Report returns the A4 statement markup for preview
func (h *ReportHandler) Report(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	doc, err := h.exportService.RenderReport(c.Request.Context(), id, enum.ParseReportScope(c.Query("scope")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Relatório gerado", doc)
}

// Ticket returns the receipt-width statement markup for preview
func (h *ReportHandler) Ticket(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	doc, err := h.exportService.RenderTicket(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Extrato gerado", doc)
}

// Export saves the statement as pdf, html or xlsx
func (h *ReportHandler) Export(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req request.ExportReportRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.exportService.ExportReport(c.Request.Context(), id, enum.ParseReportScope(req.Scope), req.Format)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Arquivo exportado", out)
}

// ExportPDF converts finished markup to a PDF file
func (h *ReportHandler) ExportPDF(c *gin.Context) {
	var req request.ExportDocumentRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.exportService.ExportPDF(c.Request.Context(), req.HTML, req.FileName)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "PDF exportado", out)
}
