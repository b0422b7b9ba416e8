package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/whopu/challenge/pkg/domain"
	"github.com/whopu/challenge/pkg/domain/submission"
)

// MemorySubmissionRepository keeps submissions in process memory. It is used
// when no database is configured and loses everything on restart.
type MemorySubmissionRepository struct {
	mu    sync.RWMutex
	items map[string]submission.Submission
	now   func() time.Time
}

func NewMemorySubmissionRepository() *MemorySubmissionRepository {
	return &MemorySubmissionRepository{
		items: make(map[string]submission.Submission),
		now:   time.Now,
	}
}

func (r *MemorySubmissionRepository) Create(_ context.Context, s *submission.Submission) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[s.ID]; exists {
		return fmt.Errorf("submission %s already exists", s.ID)
	}
	now := r.now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	r.items[s.ID] = *s
	return nil
}

func (r *MemorySubmissionRepository) Get(_ context.Context, id string) (*submission.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Submission", id)
	}
	return &s, nil
}

func (r *MemorySubmissionRepository) List(_ context.Context, filter submission.ListFilter) ([]submission.Submission, error) {
	r.mu.RLock()
	out := make([]submission.Submission, 0, len(r.items))
	for _, s := range r.items {
		if filter.Day > 0 && s.Day != filter.Day {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		out = append(out, s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if filter.Offset >= len(out) {
		return []submission.Submission{}, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *MemorySubmissionRepository) UpdateStatus(_ context.Context, id string, status submission.Status) (*submission.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Submission", id)
	}
	s.Status = status
	s.UpdatedAt = r.now()
	r.items[id] = s
	return &s, nil
}
