package service

import (
	"context"
	"strings"
	"time"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/fagundes/debt-ledger/internal/domain/repository"
	"github.com/fagundes/debt-ledger/internal/logger"
	"github.com/fagundes/debt-ledger/pkg/apperror"
	"github.com/fagundes/debt-ledger/pkg/utils"
	"github.com/google/uuid"
)

// ErrLoginRejected is returned when the backend refuses a username/password pair.
var ErrLoginRejected = apperror.ErrInvalidCredentials

// AuthService handles operator sessions and credential checks
type AuthService struct {
	operatorRepo repository.OperatorRepository
	jwtManager   *utils.JWTManager
	revoked      *RevokedSessions
	now          func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	operatorRepo repository.OperatorRepository,
	jwtManager *utils.JWTManager,
	revoked *RevokedSessions,
) *AuthService {
	if revoked == nil {
		revoked = NewRevokedSessions()
	}
	return &AuthService{
		operatorRepo: operatorRepo,
		jwtManager:   jwtManager,
		revoked:      revoked,
		now:          time.Now,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Session     *entity.Session `json:"session"`
	AccessToken string          `json:"access_token"`
}

// Login checks the credentials remotely and opens a new session
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	if username == "" {
		return nil, apperror.NewFieldError("username", "Informe o usuário.")
	}
	if password == "" {
		return nil, apperror.NewFieldError("password", "Informe a senha.")
	}

	op, err := s.operatorRepo.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, ErrLoginRejected
	}
	if !op.Role.Valid() {
		log := logger.FromContext(ctx)
		log.Warn().Int64("operator_id", op.ID).Str("role", string(op.Role)).Msg("operator has an unknown role")
		return nil, ErrLoginRejected
	}

	session := &entity.Session{
		ID:         uuid.New(),
		OperatorID: op.ID,
		Username:   op.Username,
		Role:       op.Role,
	}
	token, expiresAt, err := s.jwtManager.GenerateSessionToken(session.ID, op.ID, op.Username, op.Role.String())
	if err != nil {
		return nil, err
	}
	session.ExpiresAt = expiresAt

	return &LoginOutput{
		Session:     session,
		AccessToken: token,
	}, nil
}

// Authenticate turns a session token back into a Session. Revoked, expired
// and malformed tokens are rejected, never repaired.
func (s *AuthService) Authenticate(token string) (*entity.Session, error) {
	claims, err := s.jwtManager.ValidateSessionToken(token)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	role := enum.Role(claims.Role)
	if !role.Valid() || claims.OperatorID <= 0 {
		return nil, apperror.ErrInvalidToken
	}
	if s.revoked.IsRevoked(claims.SessionID) {
		return nil, apperror.ErrSessionExpired
	}

	session := &entity.Session{
		ID:         claims.SessionID,
		OperatorID: claims.OperatorID,
		Username:   claims.Username,
		Role:       role,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	if session.Expired(s.now()) {
		return nil, apperror.ErrSessionExpired
	}
	return session, nil
}

// Logout invalidates the session for the rest of its lifetime
func (s *AuthService) Logout(session *entity.Session) {
	if session == nil {
		return
	}
	expiresAt := session.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = s.now().Add(s.jwtManager.Expiry())
	}
	s.revoked.Revoke(session.ID, expiresAt)
}

// Verify re-checks an operator password and confirms it belongs to the
// expected operator.
func (s *AuthService) Verify(ctx context.Context, username, credential string, operatorID int64) (bool, error) {
	op, err := s.operatorRepo.Authenticate(ctx, username, credential)
	if err != nil {
		return false, err
	}
	return op != nil && op.ID == operatorID, nil
}
