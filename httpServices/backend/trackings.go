package backend

import (
	"context"

	"parcel-delivery/models/tracking"
)

// AppendTracking posts one event to the parcel's tracking log.
func (c *Client) AppendTracking(ctx context.Context, event tracking.Event) error {
	return c.post(ctx, "/trackings", event, nil)
}

func (c *Client) Trackings(ctx context.Context, trackingID string) ([]tracking.Event, error) {
	var events []tracking.Event
	if err := c.get(ctx, "/trackings/"+escape(trackingID), nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}
