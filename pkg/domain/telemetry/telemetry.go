package telemetry

import "time"

const (
	EventSubmissionCreated       = "submission.created"
	EventSubmissionStatusChanged = "submission.status_changed"
	EventRSVPIncremented         = "rsvp.incremented"
	EventCheckoutCompleted       = "checkout.completed"
)

// Event is what exporters receive for every business action.
type Event struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	Timestamp    time.Time         `json:"timestamp"`
	SubmissionID string            `json:"submission_id,omitempty"`
	Day          int               `json:"day,omitempty"`
	Username     string            `json:"username,omitempty"`
	Status       string            `json:"status,omitempty"`
	Count        int64             `json:"count,omitempty"`
	Source       string            `json:"source,omitempty"`
	IP           string            `json:"user_ip,omitempty"`
	Device       string            `json:"device,omitempty"`
	Os           string            `json:"os,omitempty"`
	Browser      string            `json:"browser,omitempty"`
	Locale       string            `json:"locale,omitempty"`
	Params       map[string]string `json:"params,omitempty"`
}

type ExporterConfig struct {
	Name     string                 `json:"name" mapstructure:"name"`
	Settings map[string]interface{} `json:"settings" mapstructure:"settings"`
}
