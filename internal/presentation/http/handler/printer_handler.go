package handler

import (
	"github.com/fagundes/debt-ledger/internal/application/service"
	"github.com/fagundes/debt-ledger/internal/presentation/http/dto/request"
	"github.com/fagundes/debt-ledger/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// PrinterHandler handles receipt printer HTTP requests
type PrinterHandler struct {
	printerService *service.PrinterService
	exportService  *service.ExportService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService, exportService *service.ExportService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService, exportService: exportService}
}

// GetStatus handles getting the printer status
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Status da impressora", h.printerService.GetStatus())
}

// TestPrint handles printing a sample ticket
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	ticket, err := h.printerService.TestPrint(c.Request.Context())
	if err != nil {
		response.ErrorWithData(c, err, ticket)
		return
	}

	response.OK(c, "Página de teste enviada", ticket)
}

// PrintTicket handles printing a customer's statement ticket
func (h *PrinterHandler) PrintTicket(c *gin.Context) {
	var req request.PrintTicketRequest
	if !bindJSON(c, &req) {
		return
	}

	ticket, err := h.exportService.PrintTicket(c.Request.Context(), req.CustomerID)
	if err != nil {
		response.ErrorWithData(c, err, ticket)
		return
	}

	response.OK(c, "Extrato enviado para a impressora", ticket)
}
