package service

import (
	"context"
	"fmt"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/logger"
	"github.com/fagundes/debt-ledger/pkg/apperror"
	"github.com/fagundes/debt-ledger/pkg/printer"
)

// PrinterService handles ticket formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	printerType string
	width       int
}

// NewPrinterService creates a new printer service. width is the number of
// characters per line (48 for 80mm paper, 32 for 58mm).
func NewPrinterService(p printer.Printer, printerType string, width int) *PrinterService {
	if width <= 0 {
		width = 48
	}
	return &PrinterService{
		printer:     p,
		printerType: printerType,
		width:       width,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != printer.TypeNone && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
		Width:      s.width,
	}
}

// TestPrint sends a sample ticket to the printer.
// Returns the ticket so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Ticket, error) {
	ticket := &entity.Ticket{
		Header: entity.TicketHeader{
			StoreName:   "TESTE DE IMPRESSÃO",
			Customer:    "Cliente de teste",
			Document:    "-",
			Phone:       "-",
			Balance:     "R$ 0,00",
			GeneratedAt: "-",
		},
		Entries: []entity.TicketEntry{
			{Kind: "VENDA", Amount: "R$ 12,50", Date: "01/01/2026, 08:00:00", BalanceAfter: "R$ 12,50", Operator: "admin", Note: "Pão e leite"},
			{Kind: "PAGTO", Amount: "-R$ 12,50", Date: "02/01/2026, 09:30:00", BalanceAfter: "R$ 0,00", Operator: "admin", Note: "-"},
		},
	}

	if err := s.PrintTicket(ctx, ticket); err != nil {
		return ticket, apperror.NewTransientError("Falha ao imprimir a página de teste.")
	}
	return ticket, nil
}

// PrintTicket prints a statement ticket.
func (s *PrinterService) PrintTicket(ctx context.Context, t *entity.Ticket) error {
	data := FormatTicket(t, s.width)
	if err := s.printer.Print(data); err != nil {
		log := logger.FromContext(ctx)
		log.Error().Err(err).Str("printer", s.printerType).Msg("ticket print failed")
		return fmt.Errorf("failed to print ticket: %w", err)
	}
	return nil
}

// FormatTicket converts a statement Ticket into ESC/POS bytes.
func FormatTicket(t *entity.Ticket, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	title := "Extrato"
	if t.Header.StoreName != "" {
		title = t.Header.StoreName
	}
	doc.SetAlign(printer.AlignCenter).
		SetFontSize(printer.FontDouble).
		Wrapped("", title).
		SetFontSize(printer.FontNormal).
		SetBold(true).
		Text("Extrato do cliente").
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('-')

	doc.Wrapped("Cliente: ", t.Header.Customer).
		Wrapped("Documento: ", t.Header.Document).
		Wrapped("Telefone: ", t.Header.Phone).
		SetBold(true).
		KeyValue("Saldo atual:", t.Header.Balance).
		SetBold(false).
		Wrapped("Gerado em: ", t.Header.GeneratedAt).
		Separator('=')

	// Entries
	if len(t.Entries) == 0 {
		empty := t.Empty
		if empty == "" {
			empty = "Sem movimentações no extrato."
		}
		doc.SetAlign(printer.AlignCenter).
			Wrapped("", empty).
			SetAlign(printer.AlignLeft).
			Separator('-')
	}
	for _, e := range t.Entries {
		doc.SetBold(true).
			KeyValue(e.Kind, e.Amount).
			SetBold(false).
			Text(e.Date).
			Wrapped("Saldo depois: ", e.BalanceAfter).
			Wrapped("Operador: ", e.Operator).
			Wrapped("Obs: ", e.Note).
			Separator('-')
	}

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
