package request

import (
	"fmt"
	"strconv"

	"github.com/whopu/challenge/pkg/domain/submission"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() (submission.Status, error) {
	if r.Status == "" {
		return "", fmt.Errorf("status is required")
	}
	return submission.ParseStatus(r.Status)
}

type ListSubmissionsQuery struct {
	Day    string
	Status string
	Offset string
	Limit  string
}

func (q ListSubmissionsQuery) Filter() (submission.ListFilter, error) {
	f := submission.ListFilter{Limit: DefaultListLimit}

	if q.Day != "" {
		day, err := strconv.Atoi(q.Day)
		if err != nil || day < submission.FirstDay || day > submission.LastDay {
			return f, fmt.Errorf("invalid day: %s", q.Day)
		}
		f.Day = day
	}
	if q.Status != "" {
		st, err := submission.ParseStatus(q.Status)
		if err != nil {
			return f, err
		}
		f.Status = st
	}
	if q.Offset != "" {
		offset, err := strconv.Atoi(q.Offset)
		if err != nil || offset < 0 {
			return f, fmt.Errorf("invalid offset: %s", q.Offset)
		}
		f.Offset = offset
	}
	if q.Limit != "" {
		limit, err := strconv.Atoi(q.Limit)
		if err != nil || limit <= 0 {
			return f, fmt.Errorf("invalid limit: %s", q.Limit)
		}
		if limit > MaxListLimit {
			limit = MaxListLimit
		}
		f.Limit = limit
	}
	return f, nil
}
