package enum

// ActionKind identifies what a pending confirmation will do once approved
type ActionKind string

const (
	ActionPostSale     ActionKind = "POST_SALE"
	ActionPostPayment  ActionKind = "POST_PAYMENT"
	ActionSettleInFull ActionKind = "SETTLE_IN_FULL"
	ActionSoftDelete   ActionKind = "SOFT_DELETE"
)

func (k ActionKind) Valid() bool {
	switch k {
	case ActionPostSale, ActionPostPayment, ActionSettleInFull, ActionSoftDelete:
		return true
	}
	return false
}

// RequiresCredential reports whether the operator must re-enter their
// password before the action runs.
func (k ActionKind) RequiresCredential() bool {
	return k == ActionSettleInFull || k == ActionSoftDelete
}

// RequiresAmount reports whether the action carries a money amount.
func (k ActionKind) RequiresAmount() bool {
	return k != ActionSoftDelete
}

// TransactionKind is the ledger movement the action posts, if any.
func (k ActionKind) TransactionKind() (TransactionKind, bool) {
	switch k {
	case ActionPostSale:
		return TransactionKindSale, true
	case ActionPostPayment, ActionSettleInFull:
		return TransactionKindPayment, true
	}
	return "", false
}
