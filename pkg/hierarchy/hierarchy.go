// Package hierarchy answers sponsorship questions over the worker table.
package hierarchy

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/storage"
)

// MaxDepth bounds every upline walk.
const MaxDepth = models.LevelCount

// Service reads sponsorship links from the worker table. It holds no cache;
// every call reflects the store at the time of the read.
type Service struct {
	workers storage.WorkerReader
}

// New creates a Service.
func New(workers storage.WorkerReader) *Service {
	return &Service{workers: workers}
}

// Worker returns the worker record for id.
func (s *Service) Worker(ctx context.Context, id string) (*models.Worker, error) {
	return s.workers.GetWorker(ctx, id)
}

// UplineOf returns the direct sponsor of workerID.
func (s *Service) UplineOf(ctx context.Context, workerID string) (string, bool, error) {
	w, err := s.lookup(ctx, workerID)
	if err != nil || w == nil || w.UplineId == "" {
		return "", false, err
	}
	return w.UplineId, true, nil
}

// MagicUplineOf returns the magic-matrix sponsor of workerID.
func (s *Service) MagicUplineOf(ctx context.Context, workerID string) (string, bool, error) {
	w, err := s.lookup(ctx, workerID)
	if err != nil || w == nil || w.MagicUplineId == "" {
		return "", false, err
	}
	return w.MagicUplineId, true, nil
}

// Ancestors walks the upline chain from workerID's sponsor and returns at
// most depth ids, nearest first. A depth outside 1..MaxDepth means MaxDepth.
func (s *Service) Ancestors(ctx context.Context, workerID string, depth int) ([]string, error) {
	if depth <= 0 || depth > MaxDepth {
		depth = MaxDepth
	}

	chain := make([]string, 0, depth)
	current := workerID
	for len(chain) < depth {
		next, ok, err := s.UplineOf(ctx, current)
		if err != nil {
			return chain, err
		}
		if !ok {
			break
		}
		chain = append(chain, next)
		current = next
	}
	return chain, nil
}

// Directs counts the workers sponsored directly by workerID.
func (s *Service) Directs(ctx context.Context, workerID string) (int, error) {
	directs, err := s.workers.ListDirects(ctx, workerID)
	if err != nil {
		return 0, fmt.Errorf("failed to list directs of %s: %w", workerID, err)
	}
	return len(directs), nil
}

// TreeKind selects the sponsorship link a team tree follows.
type TreeKind string

const (
	TreeUpline TreeKind = "upline"
	TreeMagic  TreeKind = "magic"
)

// Valid reports whether k is a known tree kind.
func (k TreeKind) Valid() bool {
	return k == TreeUpline || k == TreeMagic
}

// TeamLevel is one depth of a team tree. Level 1 holds the root's directs.
type TeamLevel struct {
	Level   int
	Members []models.Worker
}

// Tree returns depth levels of the team below rootID, following upline or
// magic links downward. Levels with no members are included. A worker
// reached twice is listed at its first level only. A depth outside
// 1..MaxDepth means MaxDepth.
func (s *Service) Tree(ctx context.Context, rootID string, kind TreeKind, depth int) ([]TeamLevel, error) {
	if depth <= 0 || depth > MaxDepth {
		depth = MaxDepth
	}
	list := s.workers.ListDirects
	if kind == TreeMagic {
		list = s.workers.ListMagicDirects
	}

	seen := map[string]bool{rootID: true}
	frontier := []string{rootID}
	levels := make([]TeamLevel, depth)
	for i := range levels {
		levels[i].Level = i + 1

		var next []string
		for _, id := range frontier {
			directs, err := list(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("failed to list %s team of %s: %w", kind, id, err)
			}
			for _, w := range directs {
				if seen[w.Id] {
					continue
				}
				seen[w.Id] = true
				levels[i].Members = append(levels[i].Members, w)
				next = append(next, w.Id)
			}
		}
		frontier = next
	}
	return levels, nil
}

// lookup treats a missing worker as a worker with no links.
func (s *Service) lookup(ctx context.Context, id string) (*models.Worker, error) {
	w, err := s.workers.GetWorker(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get worker %s: %w", id, err)
	}
	return w, nil
}
