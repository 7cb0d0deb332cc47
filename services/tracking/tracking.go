package tracking

import (
	"context"
	"fmt"
	"time"

	"parcel-delivery/logger"
	tracking_model "parcel-delivery/models/tracking"
	"parcel-delivery/services/metrics"
	"parcel-delivery/types"
)

// Appender posts an event to the backend tracking log.
type Appender interface {
	AppendTracking(ctx context.Context, event tracking_model.Event) error
}

// FailureRecorder persists events that could not be appended.
type FailureRecorder interface {
	LogTrackingFailure(entry types.TrackingFailureEntry)
}

// Logger appends tracking events best-effort. A failed append is recorded in
// the failure table and returned; it never undoes the transition that caused it.
type Logger struct {
	appender Appender
	failures FailureRecorder
	now      func() time.Time
}

func NewLogger(appender Appender, failures FailureRecorder) *Logger {
	return &Logger{appender: appender, failures: failures, now: time.Now}
}

func (l *Logger) Log(ctx context.Context, event tracking_model.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = l.now()
	}

	// the request may already be finishing; the append must still go out
	err := l.appender.AppendTracking(context.WithoutCancel(ctx), event)
	if err == nil {
		return nil
	}

	logger.Error(fmt.Sprintf("Tracking log failed for %s (%s)", event.TrackingID, event.Status), err)
	metrics.TrackingFailuresTotal.Inc()
	if l.failures != nil {
		l.failures.LogTrackingFailure(types.TrackingFailureEntry{
			TrackingID: event.TrackingID,
			Status:     event.Status,
			Details:    event.Details,
			Location:   event.Location,
			UpdatedBy:  event.UpdatedBy,
			Error:      err.Error(),
			OccurredAt: event.Timestamp,
		})
	}
	return err
}
