package tracking

import (
	"context"
	"errors"
	"testing"
	"time"

	tracking_model "parcel-delivery/models/tracking"
	"parcel-delivery/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appenderFunc func(ctx context.Context, event tracking_model.Event) error

func (f appenderFunc) AppendTracking(ctx context.Context, event tracking_model.Event) error {
	return f(ctx, event)
}

type recordedFailures struct {
	entries []types.TrackingFailureEntry
}

func (r *recordedFailures) LogTrackingFailure(entry types.TrackingFailureEntry) {
	r.entries = append(r.entries, entry)
}

func TestLogger_Log(t *testing.T) {
	fixed := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	t.Run("stamps and appends", func(t *testing.T) {
		var got tracking_model.Event
		failures := &recordedFailures{}
		l := NewLogger(appenderFunc(func(_ context.Context, ev tracking_model.Event) error {
			got = ev
			return nil
		}), failures)
		l.now = func() time.Time { return fixed }

		err := l.Log(context.Background(), tracking_model.Event{TrackingID: "PCL-20240305-AB12C", Status: tracking_model.StatusPickedUp})

		require.NoError(t, err)
		assert.Equal(t, fixed, got.Timestamp)
		assert.Empty(t, failures.entries)
	})

	t.Run("failure is recorded and returned", func(t *testing.T) {
		boom := errors.New("backend down")
		failures := &recordedFailures{}
		l := NewLogger(appenderFunc(func(context.Context, tracking_model.Event) error { return boom }), failures)
		l.now = func() time.Time { return fixed }

		err := l.Log(context.Background(), tracking_model.Event{
			TrackingID: "PCL-20240305-AB12C",
			Status:     tracking_model.StatusDelivered,
			Location:   "Khulna Sadar",
			UpdatedBy:  "rider@example.com",
		})

		assert.ErrorIs(t, err, boom)
		require.Len(t, failures.entries, 1)
		assert.Equal(t, "backend down", failures.entries[0].Error)
		assert.Equal(t, "Khulna Sadar", failures.entries[0].Location)
		assert.Equal(t, fixed, failures.entries[0].OccurredAt)
	})

	t.Run("cancelled request still appends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		l := NewLogger(appenderFunc(func(ctx context.Context, _ tracking_model.Event) error {
			return ctx.Err()
		}), nil)

		assert.NoError(t, l.Log(ctx, tracking_model.Event{TrackingID: "x"}))
	})
}
