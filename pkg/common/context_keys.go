package common

type contextKey string

const (
	RequestIDKey    contextKey = "request_id"
	AdminSubjectKey contextKey = "admin_subject"
)
