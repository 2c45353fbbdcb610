package repository

import (
	"context"
	"errors"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	domainRepo "github.com/fagundes/debt-ledger/internal/domain/repository"
	"gorm.io/gorm"
)

// UnknownOperatorName labels operators whose username is blank.
const UnknownOperatorName = "Não informado"

type operatorRepository struct {
	db *gorm.DB
}

// NewOperatorRepository creates a new operator repository
func NewOperatorRepository(db *gorm.DB) domainRepo.OperatorRepository {
	return &operatorRepository{db: db}
}

type loginRow struct {
	ID       int64     `gorm:"column:id"`
	Username string    `gorm:"column:usuario"`
	Role     enum.Role `gorm:"column:role"`
}

func (r *operatorRepository) Authenticate(ctx context.Context, username, password string) (*entity.Operator, error) {
	var rows []loginRow
	err := r.db.WithContext(ctx).
		Raw("SELECT id, usuario, role FROM login_operador(p_usuario => ?, p_senha => ?)", username, password).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &entity.Operator{
		ID:       rows[0].ID,
		Username: rows[0].Username,
		Role:     rows[0].Role,
		Active:   true,
	}, nil
}

func (r *operatorRepository) NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var ops []entity.Operator
	err := r.db.WithContext(ctx).
		Select("id, usuario").
		Where("id IN ?", ids).
		Find(&ops).Error
	if err != nil {
		return nil, err
	}

	for _, op := range ops {
		if op.Username == "" {
			names[op.ID] = UnknownOperatorName
			continue
		}
		names[op.ID] = op.Username
	}
	return names, nil
}

func (r *operatorRepository) List(ctx context.Context) ([]entity.Operator, error) {
	var ops []entity.Operator
	err := r.db.WithContext(ctx).
		Select("id, usuario, role, active, created_at").
		Order("id ASC").
		Find(&ops).Error
	return ops, err
}

func (r *operatorRepository) GetByID(ctx context.Context, id int64) (*entity.Operator, error) {
	var op entity.Operator
	err := r.db.WithContext(ctx).
		Select("id, usuario, role, active, created_at").
		First(&op, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *operatorRepository) Create(ctx context.Context, username, password string, role enum.Role) error {
	return r.db.WithContext(ctx).
		Exec("SELECT criar_operador(p_usuario => ?, p_senha => ?, p_role => ?)", username, password, string(role)).
		Error
}

func (r *operatorRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.update(ctx, id, "active", active)
}

func (r *operatorRepository) SetRole(ctx context.Context, id int64, role enum.Role) error {
	return r.update(ctx, id, "role", string(role))
}

func (r *operatorRepository) SetPassword(ctx context.Context, id int64, password string) error {
	return r.update(ctx, id, "senha", password)
}

func (r *operatorRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Operator{}).Count(&n).Error
	return n, err
}

func (r *operatorRepository) update(ctx context.Context, id int64, column string, value interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Operator{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
