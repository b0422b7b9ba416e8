package submission

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/whopu/challenge/pkg/domain"
	"gorm.io/gorm"
)

type Kind string

const (
	KindWorksheet      Kind = "worksheet"
	KindMarketResearch Kind = "market_research"
	KindDocLink        Kind = "doc_link"
	KindStoreLink      Kind = "store_link"
	KindProfileLink    Kind = "profile_link"
)

type Status string

const (
	StatusPendingReview     Status = "Pending Review"
	StatusReviewed          Status = "Reviewed"
	StatusNeedsRevision     Status = "Needs Revision"
	StatusChallengeComplete Status = "Challenge Complete"
)

const (
	FirstDay = 1
	LastDay  = 5
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPendingReview, StatusReviewed, StatusNeedsRevision, StatusChallengeComplete:
		return st, nil
	default:
		return "", domain.ErrInvalidStatus
	}
}

// WorksheetRow is one reframe: a limiting belief, whether it was reframed and
// the reframed statement.
type WorksheetRow struct {
	CantBecause        string `json:"cantBecause"`
	Reframed           bool   `json:"reframed"`
	NeverEasierBecause string `json:"neverEasierBecause"`
}

// Details holds the kind specific answers of a submission.
type Details struct {
	WorksheetRows  []WorksheetRow `json:"worksheetData,omitempty"`
	WorksheetLink  string         `json:"worksheetLink,omitempty"`
	Market         string         `json:"market,omitempty"`
	WhyProfitable  string         `json:"whyProfitable,omitempty"`
	Problem        string         `json:"problem,omitempty"`
	DesiredOutcome string         `json:"desiredOutcome,omitempty"`
	ResearchLink   string         `json:"researchLink,omitempty"`
	DocLink        string         `json:"docLink,omitempty"`
	StoreLink      string         `json:"storeLink,omitempty"`
	ProfileLink    string         `json:"profileLink,omitempty"`
}

func (d Details) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *Details) Scan(value interface{}) error {
	if value == nil {
		*d = Details{}
		return nil
	}
	return domain.ScanJSON(value, d)
}

type Submission struct {
	ID        string                `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Day       int                   `json:"day" gorm:"not null;index:idx_submission_day_status"`
	Kind      Kind                  `json:"kind" gorm:"type:varchar(32);not null"`
	Username  string                `json:"username" gorm:"not null"`
	Email     string                `json:"email" gorm:"not null;index"`
	Notes     string                `json:"notes,omitempty"`
	Status    Status                `json:"status" gorm:"type:varchar(32);not null;index:idx_submission_day_status"`
	Details   Details               `json:"details" gorm:"type:jsonb"`
	Client    domain.ClientInfoJSON `json:"client,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	return s.Validate()
}

func (s *Submission) BeforeUpdate(tx *gorm.DB) error {
	s.UpdatedAt = time.Now()
	return s.Validate()
}

func (s *Submission) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("id is required")
	}
	if s.Day < FirstDay || s.Day > LastDay {
		return domain.ErrInvalidDay
	}
	if _, err := ParseStatus(string(s.Status)); err != nil {
		return err
	}
	return nil
}

// ReframeCount counts the completed worksheet rows.
func (s *Submission) ReframeCount() int {
	return len(s.Details.WorksheetRows)
}

// IsCompletion reports whether the submission finishes the challenge. The
// profile link is only collected by the final submission, whatever day the
// client sends with it.
func (s *Submission) IsCompletion() bool {
	return s.Kind == KindProfileLink
}
