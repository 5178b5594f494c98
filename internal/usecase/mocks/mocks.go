package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/usecase"
)

func membershipKey(tenantID, actorID string) string {
	return tenantID + "|" + actorID
}

// MockMembershipRepository is an in-memory implementation of
// MembershipRepository. Each method can be overridden per test.
type MockMembershipRepository struct {
	mu          sync.RWMutex
	memberships map[string]*domain.Membership

	CreateFunc        func(ctx context.Context, m *domain.Membership) error
	GetFunc           func(ctx context.Context, tenantID, actorID string) (*domain.Membership, error)
	GetByEmailFunc    func(ctx context.Context, tenantID, email string) (*domain.Membership, error)
	GetForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, tenantID, actorID string) (*domain.Membership, error)
	UpdateBalanceFunc func(ctx context.Context, tx usecase.Transaction, tenantID, actorID string, balance decimal.Decimal, updatedAt time.Time) error
	UpdatePointsFunc  func(ctx context.Context, tx usecase.Transaction, tenantID, actorID string, points int64, updatedAt time.Time) error
	UpdateRoleFunc    func(ctx context.Context, tenantID, actorID string, role domain.Role, updatedAt time.Time) error
	ListFunc          func(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Membership, error)
}

func NewMockMembershipRepository() *MockMembershipRepository {
	return &MockMembershipRepository{memberships: make(map[string]*domain.Membership)}
}

// Seed stores a membership directly, bypassing Create overrides.
func (m *MockMembershipRepository) Seed(mem *domain.Membership) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.memberships[membershipKey(mem.TenantID, mem.ActorID)] = mem
}

func (m *MockMembershipRepository) Create(ctx context.Context, mem *domain.Membership) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, mem)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := membershipKey(mem.TenantID, mem.ActorID)
	if _, ok := m.memberships[key]; ok {
		return domain.ErrMembershipExists
	}
	m.memberships[key] = mem
	return nil
}

func (m *MockMembershipRepository) Get(ctx context.Context, tenantID, actorID string) (*domain.Membership, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, tenantID, actorID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if mem, ok := m.memberships[membershipKey(tenantID, actorID)]; ok {
		return mem, nil
	}
	return nil, domain.ErrMembershipNotFound
}

func (m *MockMembershipRepository) GetByEmail(ctx context.Context, tenantID, email string) (*domain.Membership, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, tenantID, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, mem := range m.memberships {
		if mem.TenantID == tenantID && mem.Email == email {
			return mem, nil
		}
	}
	return nil, nil
}

func (m *MockMembershipRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, tenantID, actorID string) (*domain.Membership, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, tx, tenantID, actorID)
	}
	return m.Get(ctx, tenantID, actorID)
}

func (m *MockMembershipRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, tenantID, actorID string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, tenantID, actorID, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, ok := m.memberships[membershipKey(tenantID, actorID)]
	if !ok {
		return domain.ErrMembershipNotFound
	}
	mem.Balance = balance
	mem.UpdatedAt = updatedAt
	return nil
}

func (m *MockMembershipRepository) UpdatePoints(ctx context.Context, tx usecase.Transaction, tenantID, actorID string, points int64, updatedAt time.Time) error {
	if m.UpdatePointsFunc != nil {
		return m.UpdatePointsFunc(ctx, tx, tenantID, actorID, points, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, ok := m.memberships[membershipKey(tenantID, actorID)]
	if !ok {
		return domain.ErrMembershipNotFound
	}
	mem.Points = points
	mem.UpdatedAt = updatedAt
	return nil
}

func (m *MockMembershipRepository) UpdateRole(ctx context.Context, tenantID, actorID string, role domain.Role, updatedAt time.Time) error {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, tenantID, actorID, role, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, ok := m.memberships[membershipKey(tenantID, actorID)]
	if !ok {
		return domain.ErrMembershipNotFound
	}
	mem.Role = role
	mem.UpdatedAt = updatedAt
	return nil
}

func (m *MockMembershipRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Membership, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, tenantID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Membership
	for _, mem := range m.memberships {
		if mem.TenantID == tenantID {
			out = append(out, mem)
		}
	}
	return out, nil
}

// MockTransactionRepository is an in-memory append-only ledger.
type MockTransactionRepository struct {
	mu      sync.RWMutex
	byRef   map[string]*domain.Transaction
	ordered []*domain.Transaction

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error
	GetByReferenceFunc   func(ctx context.Context, tenantID, reference string) (*domain.Transaction, error)
	ListByMembershipFunc func(ctx context.Context, tenantID, actorID string, limit, offset int) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{byRef: make(map[string]*domain.Transaction)}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byRef[t.Reference]; ok {
		return domain.ErrReferenceConflict
	}
	m.byRef[t.Reference] = t
	m.ordered = append(m.ordered, t)
	return nil
}

func (m *MockTransactionRepository) GetByReference(ctx context.Context, tenantID, reference string) (*domain.Transaction, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, tenantID, reference)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.byRef[reference]
	if !ok || t.TenantID != tenantID {
		return nil, fmt.Errorf("transaction %s not found", reference)
	}
	return t, nil
}

func (m *MockTransactionRepository) ListByMembership(ctx context.Context, tenantID, actorID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByMembershipFunc != nil {
		return m.ListByMembershipFunc(ctx, tenantID, actorID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, t := range m.ordered {
		if t.TenantID == tenantID && t.ActorID == actorID {
			out = append(out, t)
		}
	}
	return out, nil
}

// All returns every recorded transaction in insertion order.
func (m *MockTransactionRepository) All() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Transaction, len(m.ordered))
	copy(out, m.ordered)
	return out
}

// MockTournamentRepository is an in-memory tournament store.
type MockTournamentRepository struct {
	mu          sync.RWMutex
	tournaments map[string]*domain.Tournament

	CreateFunc           func(ctx context.Context, t *domain.Tournament) error
	GetByIDFunc          func(ctx context.Context, tenantID, id string) (*domain.Tournament, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.Tournament, error)
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id string, status domain.TournamentStatus, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Tournament, error)
	ListDueFunc          func(ctx context.Context, now time.Time) ([]*domain.Tournament, error)
}

func NewMockTournamentRepository() *MockTournamentRepository {
	return &MockTournamentRepository{tournaments: make(map[string]*domain.Tournament)}
}

func (m *MockTournamentRepository) Seed(t *domain.Tournament) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournaments[t.ID] = t
}

func (m *MockTournamentRepository) Create(ctx context.Context, t *domain.Tournament) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournaments[t.ID] = t
	return nil
}

func (m *MockTournamentRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Tournament, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, tenantID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tournaments[id]
	if !ok || t.TenantID != tenantID {
		return nil, domain.ErrTournamentNotFound
	}
	return t, nil
}

func (m *MockTournamentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.Tournament, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, tenantID, id)
	}
	return m.GetByID(ctx, tenantID, id)
}

func (m *MockTournamentRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TournamentStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tournaments[id]
	if !ok {
		return domain.ErrTournamentNotFound
	}
	t.Status = status
	t.UpdatedAt = updatedAt
	return nil
}

func (m *MockTournamentRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Tournament, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, tenantID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Tournament
	for _, t := range m.tournaments {
		if t.TenantID == tenantID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MockTournamentRepository) ListDue(ctx context.Context, now time.Time) ([]*domain.Tournament, error) {
	if m.ListDueFunc != nil {
		return m.ListDueFunc(ctx, now)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Tournament
	for _, t := range m.tournaments {
		switch t.Status {
		case domain.TournamentScheduled, domain.TournamentRegistering:
			if !now.Before(t.StartTime) {
				out = append(out, t)
			}
		case domain.TournamentInProgress:
			if t.EndTime != nil && !now.Before(*t.EndTime) {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

// MockRegistrationRepository is an in-memory registration store.
type MockRegistrationRepository struct {
	mu   sync.RWMutex
	regs map[string]*domain.Registration

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, r *domain.Registration) error
	GetFunc               func(ctx context.Context, tenantID, tournamentID, actorID string) (*domain.Registration, error)
	GetTxFunc             func(ctx context.Context, tx usecase.Transaction, tenantID, tournamentID, actorID string) (*domain.Registration, error)
	DeleteFunc            func(ctx context.Context, tx usecase.Transaction, tournamentID, actorID string) error
	CountByTournamentFunc func(ctx context.Context, tx usecase.Transaction, tournamentID string) (int, error)
	ListByTournamentFunc  func(ctx context.Context, tx usecase.Transaction, tournamentID string) ([]*domain.Registration, error)
}

func NewMockRegistrationRepository() *MockRegistrationRepository {
	return &MockRegistrationRepository{regs: make(map[string]*domain.Registration)}
}

func regKey(tournamentID, actorID string) string {
	return tournamentID + "|" + actorID
}

func (m *MockRegistrationRepository) Create(ctx context.Context, tx usecase.Transaction, r *domain.Registration) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, r)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := regKey(r.TournamentID, r.ActorID)
	if _, ok := m.regs[key]; ok {
		return domain.ErrAlreadyRegistered
	}
	m.regs[key] = r
	return nil
}

func (m *MockRegistrationRepository) Get(ctx context.Context, tenantID, tournamentID, actorID string) (*domain.Registration, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, tenantID, tournamentID, actorID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.regs[regKey(tournamentID, actorID)]
	if !ok || r.TenantID != tenantID {
		return nil, nil
	}
	return r, nil
}

func (m *MockRegistrationRepository) GetTx(ctx context.Context, tx usecase.Transaction, tenantID, tournamentID, actorID string) (*domain.Registration, error) {
	if m.GetTxFunc != nil {
		return m.GetTxFunc(ctx, tx, tenantID, tournamentID, actorID)
	}
	return m.Get(ctx, tenantID, tournamentID, actorID)
}

func (m *MockRegistrationRepository) Delete(ctx context.Context, tx usecase.Transaction, tournamentID, actorID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, tournamentID, actorID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.regs, regKey(tournamentID, actorID))
	return nil
}

func (m *MockRegistrationRepository) CountByTournament(ctx context.Context, tx usecase.Transaction, tournamentID string) (int, error) {
	if m.CountByTournamentFunc != nil {
		return m.CountByTournamentFunc(ctx, tx, tournamentID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, r := range m.regs {
		if r.TournamentID == tournamentID {
			count++
		}
	}
	return count, nil
}

func (m *MockRegistrationRepository) ListByTournament(ctx context.Context, tx usecase.Transaction, tournamentID string) ([]*domain.Registration, error) {
	if m.ListByTournamentFunc != nil {
		return m.ListByTournamentFunc(ctx, tx, tournamentID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Registration
	for _, r := range m.regs {
		if r.TournamentID == tournamentID {
			out = append(out, r)
		}
	}
	return out, nil
}

// MockTransaction is a no-op database transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out MockTransactions. The per-manager mutex
// serializes Begin..Commit windows the way row locks do in Postgres, which
// lets concurrency tests exercise the single-winner property.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	Serialize bool
	mu        sync.Mutex
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	if !m.Serialize {
		return &MockTransaction{}, nil
	}
	m.mu.Lock()
	tx := &MockTransaction{}
	release := func() { m.mu.Unlock() }
	var once sync.Once
	tx.CommitFunc = func(ctx context.Context) error {
		tx.Committed = true
		once.Do(release)
		return nil
	}
	tx.RollbackFunc = func(ctx context.Context) error {
		once.Do(release)
		return nil
	}
	return tx, nil
}

// MockIDGenerator generates deterministic sequential IDs.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu   sync.Mutex
	next int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (g *MockIDGenerator) Generate() string {
	if g.GenerateFunc != nil {
		return g.GenerateFunc()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%04d", g.next)
}

// MockConfirmationStore is an in-memory confirmation store. TTLs are ignored.
type MockConfirmationStore struct {
	mu      sync.RWMutex
	entries map[string][]byte

	PutFunc    func(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockConfirmationStore() *MockConfirmationStore {
	return &MockConfirmationStore{entries: make(map[string][]byte)}
}

func (s *MockConfirmationStore) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if s.PutFunc != nil {
		return s.PutFunc(ctx, key, payload, ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = payload
	return nil
}

func (s *MockConfirmationStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.GetFunc != nil {
		return s.GetFunc(ctx, key)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[key], nil
}

func (s *MockConfirmationStore) Delete(ctx context.Context, key string) error {
	if s.DeleteFunc != nil {
		return s.DeleteFunc(ctx, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
