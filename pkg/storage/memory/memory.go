// Package memory is a thread-safe in-memory Storage used for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/storage"
)

// Store is a thread-safe in-memory store implementation.
type Store struct {
	mu           sync.RWMutex
	transactions []models.Transaction
	txIndex      map[string]struct{}
	workers      map[string]*models.Worker
	orders       map[string]*models.Order
	settings     *models.Settings
	rates        map[string]*models.Rate
	requests     map[string]*models.Request
	locks        map[string]*storage.PayoutLock
	connections  map[string]struct{}

	// FailAppendAfter, when positive, makes the n+1th AppendTransaction call fail.
	// Tests use it to simulate a partial cascade.
	FailAppendAfter int
	// AppendErr, when set, is returned by every AppendTransaction call.
	AppendErr   error
	appendCalls int
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		txIndex:     make(map[string]struct{}),
		workers:     make(map[string]*models.Worker),
		orders:      make(map[string]*models.Order),
		rates:       make(map[string]*models.Rate),
		requests:    make(map[string]*models.Request),
		locks:       make(map[string]*storage.PayoutLock),
		connections: make(map[string]struct{}),
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// AppendTransaction appends tx to the ledger.
func (s *Store) AppendTransaction(ctx context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.AppendErr != nil {
		return fmt.Errorf("failed to append transaction %s: %w", tx.Id, s.AppendErr)
	}
	s.appendCalls++
	if s.FailAppendAfter > 0 && s.appendCalls > s.FailAppendAfter {
		return fmt.Errorf("failed to append transaction %s: injected failure", tx.Id)
	}
	if _, ok := s.txIndex[tx.Id]; ok {
		return storage.ErrDuplicateEntry
	}
	s.txIndex[tx.Id] = struct{}{}
	s.transactions = append(s.transactions, *tx)
	return nil
}

// ListTransactionsByOwner returns the owner's transactions in insertion order.
func (s *Store) ListTransactionsByOwner(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Transaction
	for _, tx := range s.transactions {
		if tx.OwnerId == ownerID {
			out = append(out, tx)
		}
	}
	return out, nil
}

// ListRecentTransactions returns up to limit transactions, newest first.
func (s *Store) ListRecentTransactions(ctx context.Context, limit int32) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Transaction
	for i := len(s.transactions) - 1; i >= 0 && int32(len(out)) < limit; i-- {
		out = append(out, s.transactions[i])
	}
	return out, nil
}

// AllTransactions returns a copy of the whole ledger in insertion order.
func (s *Store) AllTransactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// GetWorker retrieves a worker by id.
func (s *Store) GetWorker(ctx context.Context, id string) (*models.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.workers[id]
	if !ok {
		return nil, fmt.Errorf("worker %s: %w", id, storage.ErrNotFound)
	}
	cp := *w
	return &cp, nil
}

// ListDirects retrieves the workers sponsored by sponsorID.
func (s *Store) ListDirects(ctx context.Context, sponsorID string) ([]models.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Worker
	for _, w := range s.workers {
		if w.UplineId == sponsorID {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

// ListMagicDirects retrieves the workers whose magic upline is sponsorID.
func (s *Store) ListMagicDirects(ctx context.Context, sponsorID string) ([]models.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Worker
	for _, w := range s.workers {
		if w.MagicUplineId == sponsorID {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

// PutWorker creates or replaces a worker.
func (s *Store) PutWorker(ctx context.Context, w *models.Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *w
	s.workers[w.Id] = &cp
	return nil
}

// ListWorkersByRole retrieves workers holding role.
func (s *Store) ListWorkersByRole(ctx context.Context, role models.Role) ([]models.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Worker
	for _, w := range s.workers {
		if w.Role == role {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

// GetOrder retrieves an order by id.
func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, storage.ErrNotFound)
	}
	return cloneOrder(o), nil
}

// CreateOrder stores a new order.
func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[o.Id]; ok {
		return fmt.Errorf("order %s: %w", o.Id, storage.ErrConflict)
	}
	s.orders[o.Id] = cloneOrder(o)
	return nil
}

// UpdateOrder replaces an order under an optimistic version check.
func (s *Store) UpdateOrder(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.orders[o.Id]
	if !ok {
		return fmt.Errorf("order %s: %w", o.Id, storage.ErrNotFound)
	}
	if cur.Version != o.Version {
		return storage.ErrConflict
	}
	o.Version++
	s.orders[o.Id] = cloneOrder(o)
	return nil
}

// ListOrdersByHolder retrieves the orders assigned to workerID.
func (s *Store) ListOrdersByHolder(ctx context.Context, workerID string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Order
	for _, o := range s.orders {
		if o.AssignedWorkerId == workerID {
			out = append(out, *cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ListOrdersByBill retrieves the orders booked under billNumber.
func (s *Store) ListOrdersByBill(ctx context.Context, billNumber string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Order
	for _, o := range s.orders {
		if o.BillNumber == billNumber {
			out = append(out, *cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// GetSettings returns the stored settings.
func (s *Store) GetSettings(ctx context.Context) (*models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, fmt.Errorf("settings: %w", storage.ErrNotFound)
	}
	cp := *s.settings
	return &cp, nil
}

// PutSettings replaces the settings singleton.
func (s *Store) PutSettings(ctx context.Context, st *models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *st
	s.settings = &cp
	return nil
}

// ListRates returns all rates ordered by id.
func (s *Store) ListRates(ctx context.Context) ([]models.Rate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Rate, 0, len(s.rates))
	for _, r := range s.rates {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

// PutRate creates or replaces a rate.
func (s *Store) PutRate(ctx context.Context, r *models.Rate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *r
	s.rates[r.Id] = &cp
	return nil
}

// CreateRequest stores a new request.
func (s *Store) CreateRequest(ctx context.Context, r *models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *r
	s.requests[r.Id] = &cp
	return nil
}

// GetRequest retrieves a request by id.
func (s *Store) GetRequest(ctx context.Context, id string) (*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("request %s: %w", id, storage.ErrNotFound)
	}
	cp := *r
	return &cp, nil
}

// ListPendingRequests retrieves PENDING requests created before cutoff.
func (s *Store) ListPendingRequests(ctx context.Context, cutoff time.Time) ([]models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Request
	for _, r := range s.requests {
		if r.Status == models.PENDING && r.CreatedAt.Before(cutoff) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// DecideRequest flips a PENDING request and appends tx in one critical section.
func (s *Store) DecideRequest(ctx context.Context, r *models.Request, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.requests[r.Id]
	if !ok {
		return fmt.Errorf("request %s: %w", r.Id, storage.ErrNotFound)
	}
	if cur.Status != models.PENDING {
		return storage.ErrRequestNotPending
	}
	if tx != nil {
		if _, dup := s.txIndex[tx.Id]; dup {
			return storage.ErrDuplicateEntry
		}
		s.txIndex[tx.Id] = struct{}{}
		s.transactions = append(s.transactions, *tx)
	}
	cp := *r
	s.requests[r.Id] = &cp
	return nil
}

// AcquirePayoutLock claims key.
func (s *Store) AcquirePayoutLock(ctx context.Context, key, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.locks[key]; ok {
		return storage.ErrLockHeld
	}
	now := time.Now()
	s.locks[key] = &storage.PayoutLock{Key: key, OrderId: orderID, Status: storage.WORKING, CreatedAt: now, UpdatedAt: now}
	return nil
}

// ReleasePayoutLock removes key.
func (s *Store) ReleasePayoutLock(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, key)
	return nil
}

// CompletePayoutLock marks key as DONE.
func (s *Store) CompletePayoutLock(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[key]
	if !ok {
		return fmt.Errorf("payout lock %s: %w", key, storage.ErrNotFound)
	}
	l.Status = storage.DONE
	l.UpdatedAt = time.Now()
	return nil
}

// ListStuckPayoutLocks retrieves WORKING locks claimed before cutoff.
func (s *Store) ListStuckPayoutLocks(ctx context.Context, cutoff time.Time) ([]storage.PayoutLock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []storage.PayoutLock
	for _, l := range s.locks {
		if l.Status == storage.WORKING && l.CreatedAt.Before(cutoff) {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// AddConnection registers a websocket connection.
func (s *Store) AddConnection(ctx context.Context, connectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connections[connectionID] = struct{}{}
	return nil
}

// RemoveConnection forgets a websocket connection.
func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.connections, connectionID)
	return nil
}

// GetAllConnections lists registered websocket connections.
func (s *Store) GetAllConnections(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.connections))
	for id := range s.connections {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func cloneOrder(o *models.Order) *models.Order {
	cp := *o
	cp.WorkerHistory = append([]string(nil), o.WorkerHistory...)
	if o.Measurements != nil {
		cp.Measurements = make(map[string]string, len(o.Measurements))
		for k, v := range o.Measurements {
			cp.Measurements[k] = v
		}
	}
	return &cp
}
