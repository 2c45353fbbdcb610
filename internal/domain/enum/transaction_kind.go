package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TransactionKind is the type of a ledger movement as stored by the backend
type TransactionKind string

const (
	TransactionKindSale    TransactionKind = "SALE"
	TransactionKindPayment TransactionKind = "PAYMENT"
)

func (k TransactionKind) String() string {
	return string(k)
}

// Valid reports whether k is a known kind.
func (k TransactionKind) Valid() bool {
	return k == TransactionKindSale || k == TransactionKindPayment
}

// Label is the display name used on screens and the full report.
func (k TransactionKind) Label() string {
	if k == TransactionKindSale {
		return "Venda"
	}
	return "Pagamento"
}

// TicketLabel is the short upper-case name printed on receipt tickets.
func (k TransactionKind) TicketLabel() string {
	if k == TransactionKindSale {
		return "VENDA"
	}
	return "PAGTO"
}

func (k TransactionKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(k))
}

func (k *TransactionKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v := TransactionKind(str)
	if !v.Valid() {
		return fmt.Errorf("unknown transaction kind %q", str)
	}
	*k = v
	return nil
}

func (k TransactionKind) Value() (driver.Value, error) {
	return string(k), nil
}

func (k *TransactionKind) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*k = TransactionKind(v)
	case []byte:
		*k = TransactionKind(v)
	case nil:
		*k = ""
	default:
		return fmt.Errorf("cannot scan %T into TransactionKind", value)
	}
	return nil
}
