package log

import (
	"time"
)

// Log represents an HTTP request/response log entry.
type Log struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RequestID       string    `gorm:"type:varchar(64);index" json:"request_id"`
	Method          string    `gorm:"type:varchar(10);not null" json:"method"`
	URL             string    `gorm:"type:text;not null" json:"url"`
	RequestBody     string    `gorm:"type:text" json:"request_body"`
	RequestHeaders  string    `gorm:"type:text" json:"request_headers"`
	ResponseBody    string    `gorm:"type:text" json:"response_body"`
	ResponseHeaders string    `gorm:"type:text" json:"response_headers"`
	StatusCode      int       `gorm:"type:int" json:"status_code"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TrackingFailure records a tracking event the backend refused or never received.
type TrackingFailure struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TrackingID string    `gorm:"type:varchar(32);not null;index" json:"tracking_id"`
	Status     string    `gorm:"type:varchar(64);not null" json:"status"`
	Details    string    `gorm:"type:text" json:"details"`
	Location   string    `gorm:"type:varchar(255)" json:"location"`
	UpdatedBy  string    `gorm:"type:varchar(255)" json:"updated_by"`
	Error      string    `gorm:"type:text" json:"error"`
	OccurredAt time.Time `gorm:"not null" json:"occurred_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
