package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fagundes/debt-ledger/internal/application/report"
	"github.com/fagundes/debt-ledger/internal/application/service"
	"github.com/fagundes/debt-ledger/internal/application/statement"
	"github.com/fagundes/debt-ledger/internal/config"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/fagundes/debt-ledger/internal/infrastructure/database"
	"github.com/fagundes/debt-ledger/internal/infrastructure/repository"
	"github.com/fagundes/debt-ledger/internal/logger"
	"github.com/fagundes/debt-ledger/pkg/export"
	"github.com/fagundes/debt-ledger/pkg/money"
	"github.com/fagundes/debt-ledger/pkg/printer"
	"github.com/olekukonko/tablewriter"
)

var (
	app = kingpin.New("ledgerctl", "Read customer statements from the ledger backend.")

	statementCmd      = app.Command("statement", "Print a customer's statement.")
	statementCustomer = statementCmd.Flag("customer", "Customer ID.").Short('c').Required().Int64()
	statementDebtOnly = statementCmd.Flag("debt-only", "Only rows that still form the current debt.").Bool()

	exportCmd      = app.Command("export", "Save a customer's statement report to a file.")
	exportCustomer = exportCmd.Flag("customer", "Customer ID.").Short('c').Required().Int64()
	exportScope    = exportCmd.Flag("scope", "Report scope.").Default("full").Enum("full", "debt")
	exportFormat   = exportCmd.Flag("format", "Output format.").Short('f').Default("pdf").Enum("pdf", "html", "xlsx")
	exportOut      = exportCmd.Flag("out", "Output directory. Defaults to EXPORT_OUTPUT_DIR.").Short('o').String()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, log)

	db, err := database.NewPostgresDB(&cfg.Database, false, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to the ledger backend")
	}

	loc := cfg.Ledger.Location()
	customerRepo := repository.NewCustomerRepository(db)
	statements := service.NewStatementService(
		customerRepo,
		repository.NewStatementRepository(db),
		repository.NewOperatorRepository(db),
		statement.NewBuilder(loc),
	)

	switch command {
	case statementCmd.FullCommand():
		err = printStatement(ctx, os.Stdout, statements, *statementCustomer, *statementDebtOnly)
	case exportCmd.FullCommand():
		outDir := *exportOut
		if outDir == "" {
			outDir = cfg.Export.OutputDir
		}
		exports := service.NewExportService(
			statements,
			report.NewRenderer(cfg.Ledger.StoreName, loc),
			export.NewChromePDF(cfg.Export.ChromePath, cfg.Export.Timeout),
			export.NewFileSink(outDir),
			service.NewPrinterService(printer.NewNullPrinter(), printer.TypeNone, cfg.Printer.Width),
		)
		err = exportReport(ctx, os.Stdout, exports, *exportCustomer, enum.ParseReportScope(*exportScope), *exportFormat)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "ledgerctl:", err)
		os.Exit(1)
	}
}

func printStatement(ctx context.Context, w io.Writer, svc *service.StatementService, customerID int64, debtOnly bool) error {
	st, err := svc.Load(ctx, customerID)
	if err != nil {
		return err
	}

	rows := st.Rows
	if debtOnly {
		rows = st.DebtRows
	}

	fmt.Fprintf(w, "%s | saldo %s\n", st.Customer.DisplayName(), money.Format(st.Customer.Balance()))
	writeRows(w, rows)
	fmt.Fprintf(w, "%d vendas, %d pagamentos\n", st.Summary.SaleCount, st.Summary.PaymentCount)
	return nil
}

func writeRows(w io.Writer, rows []statement.Row) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Data", "Tipo", "Valor", "Saldo antes", "Saldo depois", "Operador", "Obs"})
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})
	for _, r := range rows {
		table.Append([]string{
			r.CreatedAtLabel,
			r.KindLabel,
			r.AmountLabel,
			r.BalanceBeforeLabel,
			r.BalanceAfterLabel,
			r.OperatorLabel,
			r.NoteLabel,
		})
	}
	table.Render()
}

func exportReport(ctx context.Context, w io.Writer, svc *service.ExportService, customerID int64, scope enum.ReportScope, format string) error {
	out, err := svc.ExportReport(ctx, customerID, scope, format)
	if err != nil {
		return err
	}
	if out.Canceled {
		fmt.Fprintln(w, "exportação cancelada")
		return nil
	}
	fmt.Fprintln(w, out.FilePath)
	return nil
}
