package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/fagundes/debt-ledger/pkg/export"
	"github.com/fagundes/debt-ledger/pkg/pagination"
)

var errBackend = errors.New("backend unavailable")

func strPtr(s string) *string { return &s }
func int64Ptr(n int64) *int64 { return &n }

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[int64]*entity.Customer
	getErr    error
	nextID    int64
	created   []entity.CustomerInput
	updated   map[int64]entity.CustomerInput
	summary   *entity.DashboardSummary
}

func newFakeCustomerRepo(cs ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{
		customers: make(map[int64]*entity.Customer),
		updated:   make(map[int64]entity.CustomerInput),
		nextID:    100,
	}
	for _, c := range cs {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) List(_ context.Context, params *pagination.PaginationParams, _ string) ([]entity.Customer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) Create(_ context.Context, in *entity.CustomerInput) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.created = append(r.created, *in)
	r.customers[r.nextID] = &entity.Customer{ID: r.nextID, Name: in.Name, Phone: in.Phone, Address: in.Address, CPF: in.CPF, RG: in.RG, BalanceMinor: int64Ptr(0)}
	return r.nextID, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, id int64, in *entity.CustomerInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated[id] = *in
	return nil
}

func (r *fakeCustomerRepo) Summary(_ context.Context) (*entity.DashboardSummary, error) {
	return r.summary, nil
}

type posting struct {
	CustomerID  int64
	AmountMinor int64
	Note        string
	OperatorID  int64
}

type fakeStatementRepo struct {
	mu       sync.Mutex
	txs      map[int64][]entity.Transaction
	getErr   error
	postErr  error
	sales    []posting
	payments []posting
}

func newFakeStatementRepo() *fakeStatementRepo {
	return &fakeStatementRepo{txs: make(map[int64][]entity.Transaction)}
}

func (r *fakeStatementRepo) GetStatement(_ context.Context, customerID int64) ([]entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.txs[customerID], nil
}

func (r *fakeStatementRepo) PostSale(_ context.Context, customerID, amountMinor int64, note string, operatorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.postErr != nil {
		return r.postErr
	}
	r.sales = append(r.sales, posting{customerID, amountMinor, note, operatorID})
	return nil
}

func (r *fakeStatementRepo) PostPayment(_ context.Context, customerID, amountMinor int64, note string, operatorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.postErr != nil {
		return r.postErr
	}
	r.payments = append(r.payments, posting{customerID, amountMinor, note, operatorID})
	return nil
}

type softDelete struct {
	CustomerID int64
	OperatorID int64
	Reason     *string
}

type fakeTrashRepo struct {
	mu          sync.Mutex
	rows        []entity.TrashedCustomer
	softDeleted []softDelete
	restored    []int64
	purged      []int64
}

func (r *fakeTrashRepo) List(_ context.Context) ([]entity.TrashedCustomer, error) {
	return r.rows, nil
}

func (r *fakeTrashRepo) SoftDelete(_ context.Context, customerID, operatorID int64, reason *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.softDeleted = append(r.softDeleted, softDelete{customerID, operatorID, reason})
	return nil
}

func (r *fakeTrashRepo) Restore(_ context.Context, customerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.restored = append(r.restored, customerID)
	return nil
}

func (r *fakeTrashRepo) DeletePermanently(_ context.Context, customerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purged = append(r.purged, customerID)
	return nil
}

type fakeOperatorRepo struct {
	mu        sync.Mutex
	ops       map[int64]*entity.Operator
	passwords map[string]string
	namesErr  error
	authErr   error
	created   []entity.Operator
	stored    map[int64]string
}

func newFakeOperatorRepo() *fakeOperatorRepo {
	return &fakeOperatorRepo{
		ops:       make(map[int64]*entity.Operator),
		passwords: make(map[string]string),
		stored:    make(map[int64]string),
	}
}

func (r *fakeOperatorRepo) add(id int64, username, password string, role enum.Role) {
	r.ops[id] = &entity.Operator{ID: id, Username: username, Role: role, Active: true, CreatedAt: time.Now()}
	r.passwords[username] = password
}

func (r *fakeOperatorRepo) Authenticate(_ context.Context, username, password string) (*entity.Operator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.authErr != nil {
		return nil, r.authErr
	}
	if pw, ok := r.passwords[username]; !ok || pw != password {
		return nil, nil
	}
	for _, op := range r.ops {
		if op.Username == username {
			cp := *op
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOperatorRepo) NamesByIDs(_ context.Context, ids []int64) (map[int64]string, error) {
	if r.namesErr != nil {
		return nil, r.namesErr
	}
	names := make(map[int64]string)
	for _, id := range ids {
		if op, ok := r.ops[id]; ok {
			names[id] = op.Username
		}
	}
	return names, nil
}

func (r *fakeOperatorRepo) List(_ context.Context) ([]entity.Operator, error) {
	var out []entity.Operator
	for _, op := range r.ops {
		out = append(out, *op)
	}
	return out, nil
}

func (r *fakeOperatorRepo) GetByID(_ context.Context, id int64) (*entity.Operator, error) {
	op, ok := r.ops[id]
	if !ok {
		return nil, nil
	}
	cp := *op
	return &cp, nil
}

func (r *fakeOperatorRepo) Create(_ context.Context, username, password string, role enum.Role) error {
	r.created = append(r.created, entity.Operator{Username: username, Role: role})
	r.passwords[username] = password
	return nil
}

func (r *fakeOperatorRepo) SetActive(_ context.Context, id int64, active bool) error {
	r.ops[id].Active = active
	return nil
}

func (r *fakeOperatorRepo) SetRole(_ context.Context, id int64, role enum.Role) error {
	r.ops[id].Role = role
	return nil
}

func (r *fakeOperatorRepo) SetPassword(_ context.Context, id int64, password string) error {
	r.stored[id] = password
	if op, ok := r.ops[id]; ok {
		r.passwords[op.Username] = password
	}
	return nil
}

func (r *fakeOperatorRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.ops)), nil
}

type fakePDF struct {
	html string
	err  error
}

func (f *fakePDF) Render(_ context.Context, html string) ([]byte, error) {
	f.html = html
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

type savedDoc struct {
	Base string
	Ext  string
	Data []byte
}

type fakeSink struct {
	saved []savedDoc
}

func (f *fakeSink) Save(_ context.Context, base, ext string, data []byte) (export.Result, error) {
	if len(data) == 0 {
		return export.Result{}, export.ErrEmptyDocument
	}
	f.saved = append(f.saved, savedDoc{base, ext, data})
	return export.Result{FilePath: "/tmp/exports/" + export.FileName(base, ext)}, nil
}

type fakePrinter struct {
	printed [][]byte
	err     error
}

func (p *fakePrinter) Print(data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.printed = append(p.printed, data)
	return nil
}

func (p *fakePrinter) Close() error      { return nil }
func (p *fakePrinter) IsConnected() bool { return p.err == nil }
