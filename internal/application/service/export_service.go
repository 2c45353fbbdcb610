package service

import (
	"context"
	"errors"
	"strings"

	"github.com/fagundes/debt-ledger/internal/application/report"
	"github.com/fagundes/debt-ledger/internal/application/statement"
	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/fagundes/debt-ledger/pkg/apperror"
	"github.com/fagundes/debt-ledger/pkg/export"
)

// Export formats.
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// Export messages.
const (
	MsgEmptyDocument = "Conteúdo do relatório não informado."
	MsgInvalidFormat = "Formato de exportação inválido."
)

// PDFRenderer turns self-contained markup into a PDF.
type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// DocumentSink stores a finished document under a suggested name.
type DocumentSink interface {
	Save(ctx context.Context, base, ext string, data []byte) (export.Result, error)
}

// ExportService renders statements into documents and hands them to the
// export sink or the receipt printer.
type ExportService struct {
	statements *StatementService
	renderer   *report.Renderer
	pdf        PDFRenderer
	sink       DocumentSink
	printer    *PrinterService
}

// NewExportService creates a new export service
func NewExportService(
	statements *StatementService,
	renderer *report.Renderer,
	pdf PDFRenderer,
	sink DocumentSink,
	printer *PrinterService,
) *ExportService {
	return &ExportService{
		statements: statements,
		renderer:   renderer,
		pdf:        pdf,
		sink:       sink,
		printer:    printer,
	}
}

// Document is rendered markup plus the name it should be saved under.
type Document struct {
	HTML     string `json:"html"`
	FileName string `json:"file_name"`
}

// ExportOutput reports where an exported statement was written.
type ExportOutput struct {
	Format   string `json:"format"`
	FileName string `json:"file_name"`
	export.Result
}

// RenderReport loads the statement and renders the A4 report.
func (s *ExportService) RenderReport(ctx context.Context, customerID int64, scope enum.ReportScope) (*Document, error) {
	st, err := s.statements.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.reportDocument(st, scope)
}

// RenderTicket loads the statement and renders the receipt-printer document.
func (s *ExportService) RenderTicket(ctx context.Context, customerID int64) (*Document, error) {
	st, err := s.statements.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	html, err := s.renderer.RenderReceiptTicket(st.Customer, st.Rows)
	if err != nil {
		return nil, err
	}
	return &Document{
		HTML:     html,
		FileName: export.SanitizeFileName("extrato-" + st.Customer.Name + "-ticket"),
	}, nil
}

// ExportReport renders the statement in the requested format and saves it.
func (s *ExportService) ExportReport(ctx context.Context, customerID int64, scope enum.ReportScope, format string) (*ExportOutput, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatPDF
	}
	if format != FormatHTML && format != FormatPDF && format != FormatXLSX {
		return nil, apperror.NewFieldError("format", MsgInvalidFormat)
	}

	st, err := s.statements.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var data []byte
	base := report.SuggestedFileName(st.Customer, scope)
	switch format {
	case FormatXLSX:
		data, err = export.Workbook(report.Sheets(st.Rows, st.DebtRows, scope.IncludesHistory())...)
		if err != nil {
			return nil, err
		}
	default:
		doc, err := s.reportDocument(st, scope)
		if err != nil {
			return nil, err
		}
		if format == FormatHTML {
			data = []byte(doc.HTML)
			break
		}
		if data, err = s.renderPDF(ctx, doc.HTML); err != nil {
			return nil, err
		}
	}

	return s.save(ctx, base, format, data)
}

// ExportPDF is the generic sink: it prints caller-supplied markup to PDF
// without touching it and saves it as <fileName>.pdf.
func (s *ExportService) ExportPDF(ctx context.Context, html, fileName string) (*ExportOutput, error) {
	data, err := s.renderPDF(ctx, html)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, fileName, FormatPDF, data)
}

// PrintTicket loads the statement and sends it to the receipt printer.
func (s *ExportService) PrintTicket(ctx context.Context, customerID int64) (*entity.Ticket, error) {
	st, err := s.statements.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	ticket := s.renderer.Ticket(st.Customer, st.Rows)
	if err := s.printer.PrintTicket(ctx, &ticket); err != nil {
		return &ticket, apperror.NewTransientError("Falha ao imprimir o extrato.")
	}
	return &ticket, nil
}

func (s *ExportService) reportDocument(st *statement.Statement, scope enum.ReportScope) (*Document, error) {
	html, err := s.renderer.RenderFullReport(st.Customer, st.Rows, st.DebtRows, scope)
	if err != nil {
		return nil, err
	}
	return &Document{
		HTML:     html,
		FileName: export.SanitizeFileName(report.SuggestedFileName(st.Customer, scope)),
	}, nil
}

func (s *ExportService) renderPDF(ctx context.Context, html string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, apperror.NewFieldError("html", MsgEmptyDocument)
	}
	data, err := s.pdf.Render(ctx, html)
	if err != nil {
		return nil, mapExportError(err)
	}
	return data, nil
}

func (s *ExportService) save(ctx context.Context, base, format string, data []byte) (*ExportOutput, error) {
	res, err := s.sink.Save(ctx, base, format, data)
	if err != nil {
		return nil, mapExportError(err)
	}
	return &ExportOutput{
		Format:   format,
		FileName: export.FileName(base, format),
		Result:   res,
	}, nil
}

func mapExportError(err error) error {
	if errors.Is(err, export.ErrEmptyDocument) {
		return apperror.NewFieldError("html", MsgEmptyDocument)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewTransientError(err.Error())
}
