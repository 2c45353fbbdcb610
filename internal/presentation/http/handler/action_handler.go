package handler

import (
	"github.com/fagundes/debt-ledger/internal/application/service"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/fagundes/debt-ledger/internal/presentation/http/dto/request"
	"github.com/fagundes/debt-ledger/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ActionHandler drives the session's confirmation slot
type ActionHandler struct {
	actionService *service.ActionService
}

// NewActionHandler creates a new action handler
func NewActionHandler(actionService *service.ActionService) *ActionHandler {
	return &ActionHandler{actionService: actionService}
}

// Slot returns the current state of the session's slot
func (h *ActionHandler) Slot(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}

	response.OK(c, "Ação atual", h.actionService.Slot(session))
}

// Open starts a new pending action
func (h *ActionHandler) Open(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}

	var req request.OpenActionRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.actionService.Open(c.Request.Context(), session, &service.OpenActionInput{
		Kind:       enum.ActionKind(req.Kind),
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Note:       req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Ação aguardando confirmação", view)
}

// Revise edits the pending action's amount or note
func (h *ActionHandler) Revise(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}

	var req request.ReviseActionRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.actionService.Revise(session, &service.ReviseActionInput{
		Amount: req.Amount,
		Note:   req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ação atualizada", view)
}

// Cancel discards the pending action
func (h *ActionHandler) Cancel(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}

	view, err := h.actionService.Cancel(session)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ação cancelada", view)
}

// Confirm runs the pending action. A failed attempt still returns the slot
// so the form can be shown again with the operator's input.
func (h *ActionHandler) Confirm(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}

	var req request.ConfirmActionRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	view, err := h.actionService.Confirm(c.Request.Context(), session, req.Credential)
	if err != nil {
		response.ErrorWithData(c, err, view)
		return
	}

	response.OK(c, "Ação concluída", view)
}
