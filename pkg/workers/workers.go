// Package workers registers staff and maintains their sponsorship links.
package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/storage"
	"github.com/google/uuid"
)

var (
	ErrInvalidWorker  = errors.New("invalid worker")
	ErrRoleNotAllowed = errors.New("role cannot self-register")
	ErrUnknownSponsor = errors.New("sponsor does not exist or is blocked")
)

// Registration is the input of Register and Add.
type Registration struct {
	// Id is optional; a new id is generated when empty.
	Id            string
	Name          string
	Mobile        string
	Role          models.Role
	UplineId      string
	MagicUplineId string
	UpiId         string
	BankDetails   *models.BankDetails
}

// Update changes administrative fields of a worker. Nil fields are left as
// they are. An empty MagicUplineId clears the magic sponsor.
type Update struct {
	Status        *models.WorkerStatus
	MagicUplineId *string
	CanWithdraw   *bool
}

// Service manages worker records.
type Service struct {
	store storage.WorkerStore
	now   func() time.Time
}

// New creates a Service.
func New(store storage.WorkerStore) *Service {
	return &Service{store: store, now: time.Now}
}

// Register signs up a worker under the sponsor in in.UplineId. Admin,
// Manager and Customer accounts cannot be self-registered.
func (s *Service) Register(ctx context.Context, in Registration) (*models.Worker, error) {
	switch in.Role {
	case models.RoleAdmin, models.RoleManager, models.RoleCustomer:
		return nil, fmt.Errorf("%w: %s", ErrRoleNotAllowed, in.Role)
	}
	return s.Add(ctx, in)
}

// Add creates a worker with any role. Sponsors named in in must exist and be
// active.
func (s *Service) Add(ctx context.Context, in Registration) (*models.Worker, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Mobile = strings.TrimSpace(in.Mobile)
	if in.Name == "" || in.Mobile == "" {
		return nil, fmt.Errorf("%w: name and mobile are required", ErrInvalidWorker)
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: role %q", ErrInvalidWorker, in.Role)
	}
	if in.Id == "" {
		in.Id = uuid.NewString()
	}
	if in.Id == in.UplineId || in.Id == in.MagicUplineId {
		return nil, fmt.Errorf("%w: a worker cannot sponsor itself", ErrInvalidWorker)
	}
	if _, err := s.store.GetWorker(ctx, in.Id); err == nil {
		return nil, fmt.Errorf("worker %s: %w", in.Id, storage.ErrConflict)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to get worker %s: %w", in.Id, err)
	}
	for _, sponsor := range []string{in.UplineId, in.MagicUplineId} {
		if err := s.requireSponsor(ctx, sponsor); err != nil {
			return nil, err
		}
	}

	w := &models.Worker{
		Id:            in.Id,
		Name:          in.Name,
		Role:          in.Role,
		Mobile:        in.Mobile,
		Status:        models.WorkerActive,
		JoinDate:      s.now(),
		UplineId:      in.UplineId,
		MagicUplineId: in.MagicUplineId,
		CanWithdraw:   true,
		UpiId:         in.UpiId,
		BankDetails:   in.BankDetails,
	}
	if err := s.store.PutWorker(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to save worker %s: %w", w.Id, err)
	}

	slog.Info("worker registered", "worker_id", w.Id, "role", w.Role, "upline_id", w.UplineId)
	return w, nil
}

// Update applies u to the worker with id.
func (s *Service) Update(ctx context.Context, id string, u Update) (*models.Worker, error) {
	w, err := s.store.GetWorker(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.Status != nil {
		if *u.Status != models.WorkerActive && *u.Status != models.WorkerBlocked {
			return nil, fmt.Errorf("%w: status %q", ErrInvalidWorker, *u.Status)
		}
		w.Status = *u.Status
	}
	if u.MagicUplineId != nil {
		magic := *u.MagicUplineId
		if magic == id {
			return nil, fmt.Errorf("%w: a worker cannot sponsor itself", ErrInvalidWorker)
		}
		if err := s.requireSponsor(ctx, magic); err != nil {
			return nil, err
		}
		w.MagicUplineId = magic
	}
	if u.CanWithdraw != nil {
		w.CanWithdraw = *u.CanWithdraw
	}

	if err := s.store.PutWorker(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to save worker %s: %w", id, err)
	}
	return w, nil
}

// Get returns a worker by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Worker, error) {
	return s.store.GetWorker(ctx, id)
}

// ListByRole returns the workers holding role. With activeOnly, blocked
// workers are left out, which is the list a sender picks a receiver from.
func (s *Service) ListByRole(ctx context.Context, role models.Role, activeOnly bool) ([]models.Worker, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role %q", ErrInvalidWorker, role)
	}
	all, err := s.store.ListWorkersByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s workers: %w", role, err)
	}
	if !activeOnly {
		return all, nil
	}
	out := all[:0]
	for _, w := range all {
		if w.Active() {
			out = append(out, w)
		}
	}
	return out, nil
}

// requireSponsor checks that a non-empty sponsor id names an active worker.
func (s *Service) requireSponsor(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	w, err := s.store.GetWorker(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrUnknownSponsor, id)
	}
	if err != nil {
		return fmt.Errorf("failed to get sponsor %s: %w", id, err)
	}
	if !w.Active() {
		return fmt.Errorf("%w: %s", ErrUnknownSponsor, id)
	}
	return nil
}
