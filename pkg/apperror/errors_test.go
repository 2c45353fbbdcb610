package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValidationError(t *testing.T) {
	err := NewValidationError([]FieldError{{Field: "senha", Message: "Campo obrigatório."}})

	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, MsgInvalidData, err.Error())
	assert.Len(t, err.Errors, 1)
	assert.False(t, err.Retryable())
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Cliente não encontrado.")

	assert.Equal(t, http.StatusNotFound, err.Code)
	assert.Equal(t, "Cliente não encontrado.", err.Error())
	assert.True(t, IsKind(fmt.Errorf("load: %w", err), KindNotFound))
}

func TestGetAppError(t *testing.T) {
	wrapped := fmt.Errorf("confirm: %w", NewTransientError("Falha"))
	assert.True(t, IsAppError(wrapped))
	assert.True(t, GetAppError(wrapped).Retryable())

	plain := GetAppError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
	assert.Equal(t, KindInternal, plain.Kind)
	assert.Equal(t, "boom", plain.Message)
}
