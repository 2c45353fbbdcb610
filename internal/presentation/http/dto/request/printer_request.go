package request

// PrintTicketRequest is the request body for printing a customer's statement ticket.
type PrintTicketRequest struct {
	CustomerID int64 `json:"customer_id" binding:"required,min=1"`
}
