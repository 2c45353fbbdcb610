package entity

// TicketHeader holds the store/customer header printed at the top of a statement ticket.
type TicketHeader struct {
	StoreName   string `json:"store_name"`
	Customer    string `json:"customer"`
	Document    string `json:"document"`
	Phone       string `json:"phone"`
	Balance     string `json:"balance"`
	GeneratedAt string `json:"generated_at"`
}

// TicketEntry is one statement stanza on a ticket.
type TicketEntry struct {
	Kind         string `json:"kind"` // VENDA / PAGTO
	Amount       string `json:"amount"`
	Date         string `json:"date"`
	BalanceAfter string `json:"balance_after"`
	Operator     string `json:"operator"`
	Note         string `json:"note"`
}

// Ticket is a value object representing a printable statement ticket.
// It is NOT a database entity; it is composed from statement rows at print time.
type Ticket struct {
	Header  TicketHeader  `json:"header"`
	Entries []TicketEntry `json:"entries"`
	// Empty is printed instead of entries when there are none.
	Empty string `json:"empty,omitempty"`
}
