package services_test

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tsmfield/os-backend/internal/domain/entities"
	"github.com/tsmfield/os-backend/internal/domain/ports"
	"github.com/tsmfield/os-backend/internal/domain/repositories"
)

// fakeLogger descarta tudo
type fakeLogger struct{}

func (l *fakeLogger) Info(msg string, args ...any)  {}
func (l *fakeLogger) Error(msg string, args ...any) {}
func (l *fakeLogger) Debug(msg string, args ...any) {}
func (l *fakeLogger) Warn(msg string, args ...any)  {}
func (l *fakeLogger) With(args ...any) ports.Logger { return l }

// fakeUnitOfWork executa a função direto, sem transação real
type fakeUnitOfWork struct{}

func (u *fakeUnitOfWork) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (u *fakeUnitOfWork) Commit(ctx context.Context) error                   { return nil }
func (u *fakeUnitOfWork) Rollback(ctx context.Context) error                 { return nil }
func (u *fakeUnitOfWork) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// fakeHasher usa um prefixo reconhecível no lugar de hashing real
type fakeHasher struct{}

func (h *fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (h *fakeHasher) Verify(plain, digest string) bool  { return digest == "hashed:"+plain }

// fakeTokenManager emite tokens transparentes "token:<userID>"
type fakeTokenManager struct {
	verifyErr error
}

func (m *fakeTokenManager) Issue(userID string) (string, error) {
	return "token:" + userID, nil
}

func (m *fakeTokenManager) Verify(token string) (string, error) {
	if m.verifyErr != nil {
		return "", m.verifyErr
	}
	subject, ok := strings.CutPrefix(token, "token:")
	if !ok {
		return "", fmt.Errorf("malformed fake token %q", token)
	}
	return subject, nil
}

// fakeUserRepository guarda usuários em memória
type fakeUserRepository struct {
	users []*entities.User
	seq   int
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{}
}

func (r *fakeUserRepository) Create(ctx context.Context, user *entities.User) error {
	r.seq++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	user.CreatedAt = time.Now().UTC()
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Username.String() == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) List(ctx context.Context) ([]*entities.User, error) {
	return append([]*entities.User{}, r.users...), nil
}

func (r *fakeUserRepository) Delete(ctx context.Context, id string) error {
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// fakeOrderRepository guarda ordens em memória, em ordem de criação
type fakeOrderRepository struct {
	orders []*entities.ServiceOrder
	seq    int
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{}
}

func (r *fakeOrderRepository) Create(ctx context.Context, order *entities.ServiceOrder) error {
	r.seq++
	if order.ID == "" {
		order.ID = fmt.Sprintf("order-%d", r.seq)
	}
	if order.Status == "" {
		order.Status = entities.StatusAberto
	}
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	r.orders = append(r.orders, order)
	return nil
}

func (r *fakeOrderRepository) FindByID(ctx context.Context, id string) (*entities.ServiceOrder, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepository) List(ctx context.Context, filters repositories.OrderFilters) ([]*entities.ServiceOrder, error) {
	result := make([]*entities.ServiceOrder, 0, len(r.orders))
	for _, o := range r.orders {
		if filters.Status != "" && o.Status != filters.Status {
			continue
		}
		if !containsFold(o.PAT, filters.PAT) {
			continue
		}
		if !containsFold(o.TicketNumber, filters.TicketNumber) {
			continue
		}
		if !containsFold(o.OSNumber, filters.OSNumber) {
			continue
		}
		if !containsFold(o.EquipmentSerial, filters.EquipmentSerial) {
			continue
		}
		if !containsFold(o.Unit, filters.Unit) {
			continue
		}
		// Período de abertura: comparação lexical, como no repositório real
		if filters.DateStart != "" && (o.OpeningDate == nil || *o.OpeningDate < filters.DateStart) {
			continue
		}
		if filters.DateEnd != "" && (o.OpeningDate == nil || *o.OpeningDate > filters.DateEnd) {
			continue
		}
		result = append(result, o)
	}
	return result, nil
}

func containsFold(value *string, filter string) bool {
	if filter == "" {
		return true
	}
	if value == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*value), strings.ToLower(filter))
}

func (r *fakeOrderRepository) Update(ctx context.Context, id string, patch repositories.OrderPatch) (*entities.ServiceOrder, error) {
	order, _ := r.FindByID(ctx, id)
	if order == nil {
		return nil, nil
	}

	if patch.TicketNumber != nil {
		order.TicketNumber = patch.TicketNumber
	}
	if patch.OSNumber != nil {
		order.OSNumber = patch.OSNumber
	}
	if patch.PAT != nil {
		order.PAT = patch.PAT
	}
	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.OpeningDate != nil {
		order.OpeningDate = patch.OpeningDate
	}
	if patch.ResponsibleOpening != nil {
		order.ResponsibleOpening = patch.ResponsibleOpening
	}
	if patch.ResponsibleTech != nil {
		order.ResponsibleTech = patch.ResponsibleTech
	}
	if patch.Phone != nil {
		order.Phone = patch.Phone
	}
	if patch.ClientName != nil {
		order.ClientName = patch.ClientName
	}
	if patch.Unit != nil {
		order.Unit = patch.Unit
	}
	if patch.ServiceAddress != nil {
		order.ServiceAddress = patch.ServiceAddress
	}
	if patch.EquipmentType != nil {
		order.EquipmentType = patch.EquipmentType
	}
	if patch.EquipmentBrand != nil {
		order.EquipmentBrand = patch.EquipmentBrand
	}
	if patch.EquipmentModel != nil {
		order.EquipmentModel = patch.EquipmentModel
	}
	if patch.EquipmentSerial != nil {
		order.EquipmentSerial = patch.EquipmentSerial
	}
	if patch.EquipmentBoardSerial != nil {
		order.EquipmentBoardSerial = patch.EquipmentBoardSerial
	}
	if patch.CallInfo != nil {
		order.CallInfo = patch.CallInfo
	}
	if patch.Materials != nil {
		order.Materials = patch.Materials
	}
	if patch.TechnicalReport != nil {
		order.TechnicalReport = patch.TechnicalReport
	}
	if patch.Verifications != nil {
		order.Verifications = *patch.Verifications
	}
	if patch.TotalPageCount != nil {
		order.TotalPageCount = patch.TotalPageCount
	}
	if patch.PendingIssues != nil {
		order.PendingIssues = patch.PendingIssues
	}
	if patch.NextVisit != nil {
		order.NextVisit = patch.NextVisit
	}
	if patch.EquipmentReplaced != nil {
		order.EquipmentReplaced = *patch.EquipmentReplaced
	}
	if patch.Observations != nil {
		order.Observations = patch.Observations
	}

	// updated_at renova sempre, estritamente crescente
	now := time.Now().UTC()
	if !now.After(order.UpdatedAt) {
		now = order.UpdatedAt.Add(time.Millisecond)
	}
	order.UpdatedAt = now

	return order, nil
}

func (r *fakeOrderRepository) Delete(ctx context.Context, id string) error {
	for i, o := range r.orders {
		if o.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeOrderRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, o := range r.orders {
		counts[o.Status]++
	}
	return counts, nil
}

// fakeVisionClient responde com um texto fixo e registra a chamada
type fakeVisionClient struct {
	response string
	err      error
	called   bool
}

func (c *fakeVisionClient) ExtractText(ctx context.Context, imageBase64, mimeType string) (string, error) {
	c.called = true
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

// fakeExporter registra a lista recebida e devolve bytes fixos
type fakeExporter struct {
	received []*entities.ServiceOrder
	content  []byte
}

func (e *fakeExporter) Export(orders []*entities.ServiceOrder) ([]byte, error) {
	e.received = orders
	if e.content == nil {
		return []byte("xlsx"), nil
	}
	return e.content, nil
}

func strPtr(s string) *string { return &s }
