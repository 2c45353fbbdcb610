package handler

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/presentation/http/dto/response"
	"github.com/fagundes/debt-ledger/internal/presentation/http/middleware"
	"github.com/fagundes/debt-ledger/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Field-level bind messages.
const (
	MsgFieldRequired = "Campo obrigatório."
	MsgFieldInvalid  = "Valor inválido."
)

// GetSession extracts the operator session from the Gin context. It writes
// a session-expired response and returns nil when there is none.
func GetSession(c *gin.Context) *entity.Session {
	session := middleware.GetSession(c)
	if session == nil {
		response.Error(c, apperror.ErrSessionExpired)
		return nil
	}
	return session
}

// parseID reads a positive int64 path parameter. It writes a bad request
// response and returns false when the value is not usable.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Identificador inválido")
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body. Failed binding tags produce a validation
// response naming each JSON field; malformed bodies produce a bad request.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		response.ValidationError(c, fieldErrors(req, verrs))
		return false
	}
	response.BadRequest(c, "Requisição inválida: "+err.Error())
	return false
}

func fieldErrors(req interface{}, verrs validator.ValidationErrors) []apperror.FieldError {
	out := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := MsgFieldInvalid
		if fe.Tag() == "required" {
			msg = MsgFieldRequired
		}
		out = append(out, apperror.FieldError{Field: jsonName(req, fe.StructField()), Message: msg})
	}
	return out
}

func jsonName(req interface{}, field string) string {
	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return field
	}
	sf, ok := t.FieldByName(field)
	if !ok {
		return field
	}
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field
	}
	return name
}
