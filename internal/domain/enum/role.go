package enum

// Role is an operator's permission level
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOperator
}

func (r Role) String() string {
	return string(r)
}
