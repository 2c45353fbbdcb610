package request

// ExportReportRequest asks for a customer statement to be saved as a file.
type ExportReportRequest struct {
	Scope  string `json:"scope"`
	Format string `json:"format"`
}

// ExportDocumentRequest hands finished markup to the PDF export sink.
type ExportDocumentRequest struct {
	HTML     string `json:"html"`
	FileName string `json:"fileName"`
}
