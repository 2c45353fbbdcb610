package handler

import (
	"github.com/fagundes/debt-ledger/internal/application/service"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/fagundes/debt-ledger/internal/presentation/http/dto/request"
	"github.com/fagundes/debt-ledger/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// OperatorHandler handles operator management requests
type OperatorHandler struct {
	operatorService *service.OperatorService
}

// NewOperatorHandler creates a new operator handler
func NewOperatorHandler(operatorService *service.OperatorService) *OperatorHandler {
	return &OperatorHandler{operatorService: operatorService}
}

// List handles listing operators
func (h *OperatorHandler) List(c *gin.Context) {
	ops, err := h.operatorService.ListOperators(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Operadores carregados", ops)
}

// Create handles creating an operator
func (h *OperatorHandler) Create(c *gin.Context) {
	var req request.CreateOperatorRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.operatorService.CreateOperator(c.Request.Context(), &service.CreateOperatorInput{
		Username: req.Username,
		Password: req.Password,
		Role:     enum.Role(req.Role),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Operador criado", nil)
}

// SetActive handles enabling or disabling an operator
func (h *OperatorHandler) SetActive(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req request.SetOperatorActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	op, err := h.operatorService.SetActive(c.Request.Context(), session, id, *req.Active)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Operador atualizado", op)
}

// SetRole handles changing an operator's role
func (h *OperatorHandler) SetRole(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req request.SetOperatorRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	op, err := h.operatorService.SetRole(c.Request.Context(), session, id, enum.Role(req.Role))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Operador atualizado", op)
}

// ResetPassword handles setting a new password for an operator
func (h *OperatorHandler) ResetPassword(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req request.ResetOperatorPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.operatorService.ResetPassword(c.Request.Context(), id, req.Password); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Senha redefinida", nil)
}
