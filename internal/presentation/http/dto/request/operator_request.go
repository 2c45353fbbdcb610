package request

// CreateOperatorRequest represents an operator creation request
type CreateOperatorRequest struct {
	Username string `json:"usuario"`
	Password string `json:"senha"`
	Role     string `json:"role"`
}

// SetOperatorActiveRequest enables or disables an operator
type SetOperatorActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetOperatorRoleRequest changes an operator's role
type SetOperatorRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ResetOperatorPasswordRequest sets a new password for an operator
type ResetOperatorPasswordRequest struct {
	Password string `json:"senha"`
}
