package repository

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/fagundes/debt-ledger/internal/logger"
	"github.com/fagundes/debt-ledger/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type recordedStmt struct {
	SQL  string
	Vars []interface{}
}

// sqlRecorder captures every statement a dry-run session builds. fail may
// inject a backend error for a given statement; rowsAffected is reported
// back to updates.
type sqlRecorder struct {
	mu           sync.Mutex
	stmts        []recordedStmt
	fail         func(sql string) error
	rowsAffected int64
}

func (r *sqlRecorder) capture(tx *gorm.DB) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sql := tx.Statement.SQL.String()
	r.stmts = append(r.stmts, recordedStmt{
		SQL:  sql,
		Vars: append([]interface{}(nil), tx.Statement.Vars...),
	})
	if r.fail != nil {
		if err := r.fail(sql); err != nil {
			tx.AddError(err)
		}
	}
	if strings.HasPrefix(sql, "UPDATE") {
		tx.RowsAffected = r.rowsAffected
	}
}

func (r *sqlRecorder) all() []recordedStmt {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedStmt(nil), r.stmts...)
}

func (r *sqlRecorder) last(t *testing.T) recordedStmt {
	t.Helper()
	stmts := r.all()
	require.NotEmpty(t, stmts)
	return stmts[len(stmts)-1]
}

// newDryRunDB opens a postgres-dialect session that builds SQL without
// connecting. Raw scans end in gorm.ErrDryRunModeUnsupported since there
// are no rows to read.
func newDryRunDB(t *testing.T) (*gorm.DB, *sqlRecorder) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=ledger dbname=ledger sslmode=disable",
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)

	rec := &sqlRecorder{rowsAffected: 1}
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("ledger:record", rec.capture))
	require.NoError(t, db.Callback().Row().After("gorm:row").Register("ledger:record", rec.capture))
	require.NoError(t, db.Callback().Raw().After("gorm:raw").Register("ledger:record", rec.capture))
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("ledger:record", rec.capture))
	return db, rec
}

func TestCustomerRepository_ListWideColumns(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewCustomerRepository(db)

	_, _, err := repo.List(context.Background(), &pagination.PaginationParams{Page: 2, PerPage: 10}, " joão ")
	require.NoError(t, err)

	stmts := rec.all()
	require.Len(t, stmts, 2)

	count := stmts[0]
	assert.Contains(t, count.SQL, "count(*)")
	assert.Contains(t, count.SQL, `"vw_clientes_ativos_saldo"`)
	assert.Contains(t, count.SQL, "nome ILIKE $1 OR telefone ILIKE $2")
	assert.Equal(t, []interface{}{"%joão%", "%joão%"}, count.Vars)

	list := stmts[1]
	assert.Contains(t, list.SQL, "SELECT "+customerWideColumns+` FROM "vw_clientes_ativos_saldo"`)
	assert.Contains(t, list.SQL, "ORDER BY nome ASC")
	assert.Contains(t, list.SQL, "LIMIT 10 OFFSET 10")
}

func TestCustomerRepository_ListFallsBackToNarrowColumns(t *testing.T) {
	db, rec := newDryRunDB(t)
	rec.fail = func(sql string) error {
		if strings.Contains(sql, "endereco") {
			return errors.New(`ERROR: column "endereco" does not exist (SQLSTATE 42703)`)
		}
		return nil
	}
	repo := NewCustomerRepository(db)

	var buf bytes.Buffer
	ctx := logger.WithContext(context.Background(), logger.NewWithWriter(&buf))

	_, _, err := repo.List(ctx, nil, "")
	require.NoError(t, err)

	stmts := rec.all()
	require.Len(t, stmts, 3)
	assert.Contains(t, stmts[1].SQL, customerWideColumns)
	assert.Contains(t, stmts[2].SQL, "SELECT "+customerNarrowColumns+" FROM")
	assert.NotContains(t, stmts[2].SQL, "endereco")
	assert.Contains(t, buf.String(), "retrying with narrow columns")
}

func TestCustomerRepository_ListReportsNarrowFailure(t *testing.T) {
	db, rec := newDryRunDB(t)
	backendDown := errors.New("connection refused")
	rec.fail = func(sql string) error {
		if strings.Contains(sql, "saldo_centavos FROM") {
			return backendDown
		}
		return nil
	}

	_, _, err := NewCustomerRepository(db).List(context.Background(), nil, "")
	assert.ErrorIs(t, err, backendDown)
	assert.Len(t, rec.all(), 3)
}

func TestCustomerRepository_GetByIDNotFound(t *testing.T) {
	db, rec := newDryRunDB(t)
	rec.fail = func(string) error { return gorm.ErrRecordNotFound }

	customer, err := NewCustomerRepository(db).GetByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, customer)

	last := rec.last(t)
	assert.Contains(t, last.SQL, "id = $1")
	assert.Equal(t, []interface{}{int64(404)}, last.Vars[:1])
}

func TestCustomerRepository_CreateCallsNamedFunction(t *testing.T) {
	db, rec := newDryRunDB(t)
	phone := "11 99999-0000"

	_, err := NewCustomerRepository(db).Create(context.Background(), &entity.CustomerInput{Name: "Maria", Phone: &phone})
	assert.ErrorIs(t, err, gorm.ErrDryRunModeUnsupported)

	last := rec.last(t)
	assert.Equal(t, "SELECT cadastrar_cliente(p_nome => $1, p_telefone => $2, p_endereco => $3, p_cpf => $4, p_rg => $5)", last.SQL)
	require.Len(t, last.Vars, 5)
	assert.Equal(t, "Maria", last.Vars[0])
	assert.Equal(t, &phone, last.Vars[1])
}

func TestStatementRepository_RPCs(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewStatementRepository(db)
	ctx := context.Background()

	_, err := repo.GetStatement(ctx, 7)
	assert.ErrorIs(t, err, gorm.ErrDryRunModeUnsupported)
	last := rec.last(t)
	assert.Equal(t, "SELECT * FROM get_extrato_cliente_saldos(p_cliente_id => $1)", last.SQL)
	assert.Equal(t, []interface{}{int64(7)}, last.Vars)

	require.NoError(t, repo.PostSale(ctx, 7, 1250, "arroz", 2))
	last = rec.last(t)
	assert.Equal(t, "SELECT lancar_venda(p_cliente_id => $1, p_valor_centavos => $2, p_obs => $3, p_operador_id => $4)", last.SQL)
	assert.Equal(t, []interface{}{int64(7), int64(1250), "arroz", int64(2)}, last.Vars)

	require.NoError(t, repo.PostPayment(ctx, 7, 500, "", 2))
	last = rec.last(t)
	assert.Equal(t, "SELECT receber_pagamento(p_cliente_id => $1, p_valor_centavos => $2, p_obs => $3, p_operador_id => $4)", last.SQL)
	assert.Equal(t, []interface{}{int64(7), int64(500), "", int64(2)}, last.Vars)
}

func TestStatementRepository_PropagatesBackendError(t *testing.T) {
	db, rec := newDryRunDB(t)
	rejected := errors.New("ERROR: valor deve ser positivo")
	rec.fail = func(string) error { return rejected }

	err := NewStatementRepository(db).PostSale(context.Background(), 7, 0, "", 2)
	assert.ErrorIs(t, err, rejected)
}

func TestTrashRepository_RPCs(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewTrashRepository(db)
	ctx := context.Background()
	reason := "duplicado"

	require.NoError(t, repo.SoftDelete(ctx, 7, 1, &reason))
	last := rec.last(t)
	assert.Equal(t, "SELECT mandar_para_lixeira(p_cliente_id => $1, p_operador_id => $2, p_motivo => $3)", last.SQL)
	assert.Equal(t, []interface{}{int64(7), int64(1), &reason}, last.Vars)

	require.NoError(t, repo.Restore(ctx, 7))
	assert.Equal(t, "SELECT restaurar_cliente(p_cliente_id => $1)", rec.last(t).SQL)

	require.NoError(t, repo.DeletePermanently(ctx, 7))
	assert.Equal(t, "SELECT excluir_cliente_permanente(p_cliente_id => $1)", rec.last(t).SQL)

	_, err := repo.List(ctx)
	require.NoError(t, err)
	last = rec.last(t)
	assert.Contains(t, last.SQL, `FROM "vw_clientes_lixeira_saldo"`)
	assert.Contains(t, last.SQL, "ORDER BY deleted_at DESC")
}

func TestOperatorRepository_AuthenticateAndCreate(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewOperatorRepository(db)
	ctx := context.Background()

	_, err := repo.Authenticate(ctx, "ana", "5678")
	assert.ErrorIs(t, err, gorm.ErrDryRunModeUnsupported)
	last := rec.last(t)
	assert.Equal(t, "SELECT id, usuario, role FROM login_operador(p_usuario => $1, p_senha => $2)", last.SQL)
	assert.Equal(t, []interface{}{"ana", "5678"}, last.Vars)

	require.NoError(t, repo.Create(ctx, "bia", "4321", enum.RoleOperator))
	last = rec.last(t)
	assert.Equal(t, "SELECT criar_operador(p_usuario => $1, p_senha => $2, p_role => $3)", last.SQL)
	assert.Equal(t, []interface{}{"bia", "4321", "operator"}, last.Vars)
}

func TestOperatorRepository_SetPasswordStoresTypedValue(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewOperatorRepository(db)

	require.NoError(t, repo.SetPassword(context.Background(), 2, "2468"))
	last := rec.last(t)
	assert.Contains(t, last.SQL, `UPDATE "operadores" SET "senha"=$1`)
	assert.Contains(t, last.SQL, "id = $2")
	assert.Equal(t, []interface{}{"2468", int64(2)}, last.Vars)

	rec.rowsAffected = 0
	err := repo.SetPassword(context.Background(), 99, "1111")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOperatorRepository_GetByIDNotFound(t *testing.T) {
	db, rec := newDryRunDB(t)
	rec.fail = func(string) error { return gorm.ErrRecordNotFound }

	op, err := NewOperatorRepository(db).GetByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, op)
}

func TestOperatorRepository_NamesByIDs(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewOperatorRepository(db)

	names, err := repo.NamesByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.Empty(t, rec.all())

	_, err = repo.NamesByIDs(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	last := rec.last(t)
	assert.Contains(t, last.SQL, "id IN ($1,$2)")
	assert.Equal(t, []interface{}{int64(1), int64(2)}, last.Vars)
}
