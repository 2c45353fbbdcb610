package handler

import (
	"github.com/fagundes/debt-ledger/internal/application/service"
	"github.com/fagundes/debt-ledger/internal/presentation/http/dto/request"
	"github.com/fagundes/debt-ledger/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles session HTTP requests
type AuthHandler struct {
	authService   *service.AuthService
	actionService *service.ActionService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, actionService *service.ActionService) *AuthHandler {
	return &AuthHandler{authService: authService, actionService: actionService}
}

// Login handles operator login
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sessão iniciada", out)
}

// Logout ends the session and discards its pending action
func (h *AuthHandler) Logout(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}

	h.actionService.Drop(session.ID)
	h.authService.Logout(session)

	response.OK(c, "Sessão encerrada", nil)
}

// Me returns the current session
func (h *AuthHandler) Me(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}

	response.OK(c, "Sessão ativa", session)
}
