package service

import (
	"context"
	"strings"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/fagundes/debt-ledger/internal/domain/repository"
	"github.com/fagundes/debt-ledger/pkg/apperror"
	"github.com/fagundes/debt-ledger/pkg/utils"
)

// Operator management messages.
const (
	MsgUsernameRequired    = "Informe o usuário."
	MsgPasswordRequired    = "Informe a senha."
	MsgNewPasswordRequired = "Informe a nova senha."
	MsgPasswordDigitsOnly  = "A senha deve ser somente números."
	MsgInvalidRole         = "Papel inválido."
	MsgSelfLockout         = "Você não pode remover o próprio acesso de administrador."
)

// ErrOperatorNotFound is returned for unknown operator ids.
var ErrOperatorNotFound = apperror.NewNotFoundError("Operador não encontrado.")

// OperatorService handles operator management. Callers must be administrators.
type OperatorService struct {
	operatorRepo repository.OperatorRepository
}

// NewOperatorService creates a new operator service
func NewOperatorService(operatorRepo repository.OperatorRepository) *OperatorService {
	return &OperatorService{operatorRepo: operatorRepo}
}

// ListOperators returns every operator ordered by id
func (s *OperatorService) ListOperators(ctx context.Context) ([]entity.Operator, error) {
	ops, err := s.operatorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if ops == nil {
		ops = []entity.Operator{}
	}
	return ops, nil
}

// CreateOperatorInput represents the create operator input
type CreateOperatorInput struct {
	Username string
	Password string
	Role     enum.Role
}

// CreateOperator registers a new operator. The backend hashes the password.
func (s *OperatorService) CreateOperator(ctx context.Context, input *CreateOperatorInput) error {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	role := input.Role
	if role == "" {
		role = enum.RoleOperator
	}

	if username == "" {
		return apperror.NewFieldError("usuario", MsgUsernameRequired)
	}
	if password == "" {
		return apperror.NewFieldError("senha", MsgPasswordRequired)
	}
	if !utils.IsNumeric(password) {
		return apperror.NewFieldError("senha", MsgPasswordDigitsOnly)
	}
	if !role.Valid() {
		return apperror.NewFieldError("role", MsgInvalidRole)
	}

	return s.operatorRepo.Create(ctx, username, password, role)
}

// SetActive enables or disables an operator
func (s *OperatorService) SetActive(ctx context.Context, session *entity.Session, id int64, active bool) (*entity.Operator, error) {
	op, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !active && session != nil && session.OperatorID == id {
		return nil, apperror.NewBadRequestError(MsgSelfLockout)
	}

	if err := s.operatorRepo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	op.Active = active
	return op, nil
}

// SetRole changes an operator's permission level
func (s *OperatorService) SetRole(ctx context.Context, session *entity.Session, id int64, role enum.Role) (*entity.Operator, error) {
	if !role.Valid() {
		return nil, apperror.NewFieldError("role", MsgInvalidRole)
	}
	op, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if op.Role == role {
		return op, nil
	}
	if role != enum.RoleAdmin && session != nil && session.OperatorID == id {
		return nil, apperror.NewBadRequestError(MsgSelfLockout)
	}

	if err := s.operatorRepo.SetRole(ctx, id, role); err != nil {
		return nil, err
	}
	op.Role = role
	return op, nil
}

// ResetPassword replaces an operator's password with a digits-only value.
// The value is stored as typed, the same way CreateOperator hands it over.
func (s *OperatorService) ResetPassword(ctx context.Context, id int64, password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return apperror.NewFieldError("senha", MsgNewPasswordRequired)
	}
	if !utils.IsNumeric(password) {
		return apperror.NewFieldError("senha", MsgPasswordDigitsOnly)
	}
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	return s.operatorRepo.SetPassword(ctx, id, password)
}

func (s *OperatorService) get(ctx context.Context, id int64) (*entity.Operator, error) {
	op, err := s.operatorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, ErrOperatorNotFound
	}
	return op, nil
}
