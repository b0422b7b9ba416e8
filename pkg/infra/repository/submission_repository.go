package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/whopu/challenge/pkg/domain"
	"github.com/whopu/challenge/pkg/domain/submission"
	"gorm.io/gorm"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) submission.Repository {
	return &SubmissionRepository{
		db: db,
	}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *submission.Submission) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) Get(ctx context.Context, id string) (*submission.Submission, error) {
	var entity submission.Submission
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Submission", id)
		}
		return nil, fmt.Errorf("submission: %w", err)
	}
	return &entity, nil
}

func (r *SubmissionRepository) List(ctx context.Context, filter submission.ListFilter) ([]submission.Submission, error) {
	query := r.db.WithContext(ctx).Model(&submission.Submission{})
	if filter.Day > 0 {
		query = query.Where("day = ?", filter.Day)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var entities []submission.Submission
	if err := query.Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("submissions: %w", err)
	}
	return entities, nil
}

func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id string, status submission.Status) (*submission.Submission, error) {
	entity, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	entity.Status = status
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return nil, fmt.Errorf("submission: %w", err)
	}
	return entity, nil
}
