package request

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/whopu/challenge/pkg/domain/submission"
)

const (
	MsgUsername       = "Username must be at least 2 characters (letters, numbers, underscores only)"
	MsgEmail          = "Please enter a valid email address"
	MsgNotes          = "Notes must be 500 characters or less"
	MsgDay            = "Day must be between 1 and 5"
	MsgWorksheetEmpty = "Please complete at least one reframe"
	MsgWorksheetHalf  = "Please complete both columns for each row you fill out"
	MsgWorksheetLink  = "Please enter a valid URL"
	MsgMarket         = "Please describe your market"
	MsgWhyProfitable  = "Please explain why this market is profitable"
	MsgProblem        = "Please describe the problem your audience has"
	MsgDesiredOutcome = "Please describe what outcome they want"
	MsgDocLink        = "Please paste your one-page doc link"
	MsgStoreLink      = "Please paste your store link"
	MsgProfileLink    = "Please paste your profile/socials link"

	MaxNotesLength = 500
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{2,}$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HomeworkForm is implemented by every homework submission body.
type HomeworkForm interface {
	Validate() FieldErrors
	ToSubmission(defaultDay int) *submission.Submission
}

// HomeworkRequest carries the fields shared by all homework forms.
type HomeworkRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Day      int    `json:"day"`
	Notes    string `json:"notes,omitempty"`
}

func (r *HomeworkRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.Notes = strings.TrimSpace(r.Notes)
}

func (r *HomeworkRequest) validate(errs FieldErrors) {
	r.normalize()
	if !usernameRegex.MatchString(r.Username) {
		errs["username"] = MsgUsername
	}
	if !emailRegex.MatchString(r.Email) {
		errs["email"] = MsgEmail
	}
	if utf8.RuneCountInString(r.Notes) > MaxNotesLength {
		errs["notes"] = MsgNotes
	}
	if r.Day != 0 && (r.Day < submission.FirstDay || r.Day > submission.LastDay) {
		errs["day"] = MsgDay
	}
}

func (r *HomeworkRequest) toSubmission(kind submission.Kind, defaultDay int) *submission.Submission {
	day := r.Day
	if day == 0 {
		day = defaultDay
	}
	return &submission.Submission{
		Day:      day,
		Kind:     kind,
		Username: r.Username,
		Email:    r.Email,
		Notes:    r.Notes,
		Status:   submission.StatusPendingReview,
	}
}

func requireMin(errs FieldErrors, field, value string, min int, msg string) string {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) < min {
		errs[field] = msg
	}
	return value
}

func finish(errs FieldErrors) FieldErrors {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// WorksheetSubmissionRequest is the day 1 reframe worksheet. A worksheet
// link may be sent instead of rows.
type WorksheetSubmissionRequest struct {
	HomeworkRequest
	WorksheetData []submission.WorksheetRow `json:"worksheetData"`
	WorksheetLink string                    `json:"worksheetLink,omitempty"`
}

func (r *WorksheetSubmissionRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	r.validate(errs)

	rows := make([]submission.WorksheetRow, 0, len(r.WorksheetData))
	halfFilled := false
	for _, row := range r.WorksheetData {
		row.CantBecause = strings.TrimSpace(row.CantBecause)
		row.NeverEasierBecause = strings.TrimSpace(row.NeverEasierBecause)
		switch {
		case row.CantBecause == "" && row.NeverEasierBecause == "":
			continue
		case row.CantBecause == "" || row.NeverEasierBecause == "":
			halfFilled = true
		default:
			rows = append(rows, row)
		}
	}
	r.WorksheetData = rows
	r.WorksheetLink = strings.TrimSpace(r.WorksheetLink)

	if r.WorksheetLink != "" && !isAbsoluteURL(r.WorksheetLink) {
		errs["worksheetLink"] = MsgWorksheetLink
	}
	switch {
	case halfFilled:
		errs["worksheet"] = MsgWorksheetHalf
	case len(rows) == 0 && r.WorksheetLink == "":
		errs["worksheet"] = MsgWorksheetEmpty
	}
	return finish(errs)
}

func (r *WorksheetSubmissionRequest) ToSubmission(defaultDay int) *submission.Submission {
	s := r.toSubmission(submission.KindWorksheet, defaultDay)
	s.Details = submission.Details{
		WorksheetRows: r.WorksheetData,
		WorksheetLink: r.WorksheetLink,
	}
	return s
}

// MarketResearchSubmissionRequest is the day 2 market research form.
type MarketResearchSubmissionRequest struct {
	HomeworkRequest
	Market         string `json:"market"`
	WhyProfitable  string `json:"whyProfitable"`
	Problem        string `json:"problem"`
	DesiredOutcome string `json:"desiredOutcome"`
	ResearchLink   string `json:"researchLink,omitempty"`
}

func (r *MarketResearchSubmissionRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	r.validate(errs)
	r.Market = requireMin(errs, "market", r.Market, 3, MsgMarket)
	r.WhyProfitable = requireMin(errs, "whyProfitable", r.WhyProfitable, 10, MsgWhyProfitable)
	r.Problem = requireMin(errs, "problem", r.Problem, 10, MsgProblem)
	r.DesiredOutcome = requireMin(errs, "desiredOutcome", r.DesiredOutcome, 10, MsgDesiredOutcome)
	r.ResearchLink = strings.TrimSpace(r.ResearchLink)
	return finish(errs)
}

func (r *MarketResearchSubmissionRequest) ToSubmission(defaultDay int) *submission.Submission {
	s := r.toSubmission(submission.KindMarketResearch, defaultDay)
	s.Details = submission.Details{
		Market:         r.Market,
		WhyProfitable:  r.WhyProfitable,
		Problem:        r.Problem,
		DesiredOutcome: r.DesiredOutcome,
		ResearchLink:   r.ResearchLink,
	}
	return s
}

// DocLinkSubmissionRequest is the day 3 one-page doc.
type DocLinkSubmissionRequest struct {
	HomeworkRequest
	DocLink string `json:"docLink"`
}

func (r *DocLinkSubmissionRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	r.validate(errs)
	r.DocLink = requireMin(errs, "docLink", r.DocLink, 5, MsgDocLink)
	return finish(errs)
}

func (r *DocLinkSubmissionRequest) ToSubmission(defaultDay int) *submission.Submission {
	s := r.toSubmission(submission.KindDocLink, defaultDay)
	s.Details = submission.Details{DocLink: r.DocLink}
	return s
}

// StoreLinkSubmissionRequest is the day 4 store link.
type StoreLinkSubmissionRequest struct {
	HomeworkRequest
	StoreLink string `json:"storeLink"`
}

func (r *StoreLinkSubmissionRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	r.validate(errs)
	r.StoreLink = requireMin(errs, "storeLink", r.StoreLink, 5, MsgStoreLink)
	return finish(errs)
}

func (r *StoreLinkSubmissionRequest) ToSubmission(defaultDay int) *submission.Submission {
	s := r.toSubmission(submission.KindStoreLink, defaultDay)
	s.Details = submission.Details{StoreLink: r.StoreLink}
	return s
}

// ProfileLinkSubmissionRequest is the day 5 final submission.
type ProfileLinkSubmissionRequest struct {
	HomeworkRequest
	ProfileLink string `json:"profileLink"`
}

func (r *ProfileLinkSubmissionRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	r.validate(errs)
	r.ProfileLink = requireMin(errs, "profileLink", r.ProfileLink, 5, MsgProfileLink)
	return finish(errs)
}

func (r *ProfileLinkSubmissionRequest) ToSubmission(defaultDay int) *submission.Submission {
	s := r.toSubmission(submission.KindProfileLink, defaultDay)
	s.Details = submission.Details{ProfileLink: r.ProfileLink}
	if s.IsCompletion() {
		s.Status = submission.StatusChallengeComplete
	}
	return s
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
