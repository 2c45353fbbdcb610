package handler

import (
	"github.com/fagundes/debt-ledger/internal/application/service"
	"github.com/fagundes/debt-ledger/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// TrashHandler handles soft-deleted customer requests
type TrashHandler struct {
	trashService *service.TrashService
}

// NewTrashHandler creates a new trash handler
func NewTrashHandler(trashService *service.TrashService) *TrashHandler {
	return &TrashHandler{trashService: trashService}
}

// List handles listing customers in the trash
func (h *TrashHandler) List(c *gin.Context) {
	rows, err := h.trashService.ListTrash(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lixeira carregada", rows)
}

// Restore handles bringing a customer back from the trash
func (h *TrashHandler) Restore(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.trashService.Restore(c.Request.Context(), session, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cliente restaurado", nil)
}

// Delete handles permanently removing a trashed customer
func (h *TrashHandler) Delete(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.trashService.DeletePermanently(c.Request.Context(), session, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cliente excluído definitivamente", nil)
}
