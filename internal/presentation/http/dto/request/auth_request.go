package request

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"usuario" binding:"required"`
	Password string `json:"senha" binding:"required"`
}
