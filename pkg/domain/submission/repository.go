package submission

import "context"

type ListFilter struct {
	Day    int
	Status Status
	Offset int
	Limit  int
}

type Repository interface {
	Create(ctx context.Context, s *Submission) error
	Get(ctx context.Context, id string) (*Submission, error)
	List(ctx context.Context, filter ListFilter) ([]Submission, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Submission, error)
}
