package response

import "github.com/whopu/challenge/pkg/domain/submission"

const (
	MsgSubmitted        = "Homework submitted successfully!"
	MsgChallengeDone    = "Congratulations! You've completed the 5 Day Challenge!"
	MsgValidationFailed = "Validation failed"
	MsgSubmitFailed     = "Failed to submit homework. Please try again."
	MsgRSVPFailed       = "Failed to update RSVP count"
)

type SubmitResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type RSVPResponse struct {
	Count   int64 `json:"count"`
	Success bool  `json:"success,omitempty"`
}

type CheckoutResponse struct {
	Received bool   `json:"received"`
	Counted  bool   `json:"counted"`
	Count    *int64 `json:"count,omitempty"`
}

type SubmissionListOutput struct {
	Items  []submission.Submission `json:"items"`
	Count  int                     `json:"count"`
	Offset int                     `json:"offset"`
	Limit  int                     `json:"limit"`
}
