package logger

import (
	"fmt"
	"sync"

	log_model "parcel-delivery/models/log"
	"parcel-delivery/types"

	"gorm.io/gorm"
)

// Sink persists what the async logger drains.
type Sink interface {
	SaveRequestLog(entry *log_model.Log) error
	SaveTrackingFailure(entry *log_model.TrackingFailure) error
}

type gormSink struct {
	db *gorm.DB
}

func (s gormSink) SaveRequestLog(entry *log_model.Log) error {
	return s.db.Create(entry).Error
}

func (s gormSink) SaveTrackingFailure(entry *log_model.TrackingFailure) error {
	return s.db.Create(entry).Error
}

// GormSink writes rows through gorm.
func GormSink(db *gorm.DB) Sink {
	return gormSink{db: db}
}

type asyncItem struct {
	request *types.LogEntry
	failure *types.TrackingFailureEntry
}

type AsyncLogger struct {
	sink    Sink
	channel chan asyncItem
	done    chan struct{}
	once    sync.Once
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return NewAsyncLoggerWithSink(GormSink(db), 100)
}

func NewAsyncLoggerWithSink(sink Sink, buffer int) *AsyncLogger {
	return &AsyncLogger{
		sink:    sink,
		channel: make(chan asyncItem, buffer),
		done:    make(chan struct{}),
	}
}

// ProcessLog drains the queue until Close is called.
func (l *AsyncLogger) ProcessLog() {
	Info("Starting asynchronous logger...")
	defer close(l.done)

	for item := range l.channel {
		switch {
		case item.request != nil:
			l.saveRequest(item.request)
		case item.failure != nil:
			l.saveFailure(item.failure)
		}
	}
}

func (l *AsyncLogger) saveRequest(entry *types.LogEntry) {
	dbLog := log_model.Log{
		RequestID:       entry.RequestID,
		Method:          entry.Method,
		URL:             entry.URL,
		RequestBody:     entry.RequestBody,
		ResponseBody:    entry.ResponseBody,
		RequestHeaders:  entry.RequestHeaders,
		ResponseHeaders: entry.ResponseHeaders,
		StatusCode:      entry.StatusCode,
		CreatedAt:       entry.CreatedAt,
	}

	if err := l.sink.SaveRequestLog(&dbLog); err != nil {
		Error("Failed to insert request log", err)
		return
	}
	Debug(fmt.Sprintf("Inserted request log: %s %s", dbLog.Method, dbLog.URL))
}

func (l *AsyncLogger) saveFailure(entry *types.TrackingFailureEntry) {
	row := log_model.TrackingFailure{
		TrackingID: entry.TrackingID,
		Status:     entry.Status,
		Details:    entry.Details,
		Location:   entry.Location,
		UpdatedBy:  entry.UpdatedBy,
		Error:      entry.Error,
		OccurredAt: entry.OccurredAt,
	}

	if err := l.sink.SaveTrackingFailure(&row); err != nil {
		Error("Failed to insert tracking failure", err)
	}
}

// Log pushes a request log entry; entries are dropped when the buffer is full.
func (l *AsyncLogger) Log(entry types.LogEntry) {
	l.enqueue(asyncItem{request: &entry})
}

// LogTrackingFailure queues a tracking failure report.
func (l *AsyncLogger) LogTrackingFailure(entry types.TrackingFailureEntry) {
	l.enqueue(asyncItem{failure: &entry})
}

func (l *AsyncLogger) enqueue(item asyncItem) {
	defer func() {
		// send on closed channel after shutdown
		if recover() != nil {
			Warning("Async logger is closed, entry dropped")
		}
	}()

	select {
	case l.channel <- item:
	default:
		Warning("Async logger buffer full, entry dropped")
	}
}

// Close stops accepting entries and waits for the queue to drain.
func (l *AsyncLogger) Close() {
	l.once.Do(func() {
		close(l.channel)
	})
	<-l.done
}
