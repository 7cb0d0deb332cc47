package types

import "time"

// LogEntry represents a log entry to be stored in the database
type LogEntry struct {
	ID              uint
	RequestID       string
	Method          string
	URL             string
	RequestBody     string
	ResponseBody    string
	RequestHeaders  string
	ResponseHeaders string
	StatusCode      int
	CreatedAt       time.Time
}

// TrackingFailureEntry is queued when a tracking event could not be appended.
type TrackingFailureEntry struct {
	TrackingID string
	Status     string
	Details    string
	Location   string
	UpdatedBy  string
	Error      string
	OccurredAt time.Time
}
