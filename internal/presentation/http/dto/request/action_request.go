package request

// OpenActionRequest starts a sale, payment, settlement or soft delete.
type OpenActionRequest struct {
	Kind       string `json:"kind" binding:"required"`
	CustomerID int64  `json:"customer_id" binding:"required,min=1"`
	Amount     string `json:"valor"`
	Note       string `json:"obs"`
}

// ReviseActionRequest edits the pending action. Absent fields are kept.
type ReviseActionRequest struct {
	Amount *string `json:"valor"`
	Note   *string `json:"obs"`
}

// ConfirmActionRequest confirms the pending action. A blank credential
// reuses the one kept from a failed attempt.
type ConfirmActionRequest struct {
	Credential string `json:"senha"`
}
