package logger

import (
	"errors"
	"sync"
	"testing"
	"time"

	log_model "parcel-delivery/models/log"
	"parcel-delivery/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySink struct {
	mu       sync.Mutex
	requests []log_model.Log
	failures []log_model.TrackingFailure
	err      error
}

func (s *memorySink) SaveRequestLog(entry *log_model.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.requests = append(s.requests, *entry)
	return nil
}

func (s *memorySink) SaveTrackingFailure(entry *log_model.TrackingFailure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.failures = append(s.failures, *entry)
	return nil
}

func TestAsyncLogger_DrainsOnClose(t *testing.T) {
	sink := &memorySink{}
	l := NewAsyncLoggerWithSink(sink, 10)
	go l.ProcessLog()

	l.Log(types.LogEntry{RequestID: "req-1", Method: "GET", URL: "/api/parcels", StatusCode: 200})
	l.LogTrackingFailure(types.TrackingFailureEntry{
		TrackingID: "PCL-20240305-AB12C",
		Status:     "Picked Up",
		Error:      "backend unavailable",
		OccurredAt: time.Now(),
	})
	l.Close()

	require.Len(t, sink.requests, 1)
	assert.Equal(t, "req-1", sink.requests[0].RequestID)
	assert.Equal(t, "/api/parcels", sink.requests[0].URL)

	require.Len(t, sink.failures, 1)
	assert.Equal(t, "PCL-20240305-AB12C", sink.failures[0].TrackingID)
	assert.Equal(t, "backend unavailable", sink.failures[0].Error)
}

func TestAsyncLogger_SinkErrorDoesNotStopProcessing(t *testing.T) {
	sink := &memorySink{err: errors.New("db down")}
	l := NewAsyncLoggerWithSink(sink, 10)
	go l.ProcessLog()

	l.Log(types.LogEntry{Method: "GET"})
	l.Log(types.LogEntry{Method: "POST"})
	l.Close()

	assert.Empty(t, sink.requests)
}

func TestAsyncLogger_DropsWhenFull(t *testing.T) {
	sink := &memorySink{}
	l := NewAsyncLoggerWithSink(sink, 1)

	// nothing drains yet
	l.Log(types.LogEntry{Method: "GET"})
	assert.NotPanics(t, func() { l.Log(types.LogEntry{Method: "POST"}) })

	go l.ProcessLog()
	l.Close()
	assert.Len(t, sink.requests, 1)

	assert.NotPanics(t, func() { l.Log(types.LogEntry{Method: "PUT"}) })
}
