package enum

import "strings"

// ReportScope selects which sections the full statement report carries
type ReportScope string

const (
	// ReportScopeFullWithDebt prints the debt section and the full history.
	ReportScopeFullWithDebt ReportScope = "FULL_WITH_DEBT"
	// ReportScopeDebtOnly prints only the debt section.
	ReportScopeDebtOnly ReportScope = "DEBT_ONLY"
)

// ParseReportScope accepts the enum names plus the short forms "full" and
// "debt". Anything else falls back to the full report.
func ParseReportScope(s string) ReportScope {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBT_ONLY", "DEBT":
		return ReportScopeDebtOnly
	default:
		return ReportScopeFullWithDebt
	}
}

// IncludesHistory reports whether the full history section is rendered.
func (s ReportScope) IncludesHistory() bool {
	return s != ReportScopeDebtOnly
}

// Label is the scope description printed in the report header.
func (s ReportScope) Label() string {
	if s == ReportScopeDebtOnly {
		return "Somente extrato de dívida"
	}
	return "Histórico completo + extrato de dívida"
}

// FileSuffix is appended to suggested export file names.
func (s ReportScope) FileSuffix() string {
	if s == ReportScopeDebtOnly {
		return "divida"
	}
	return "completo-divida"
}
