package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"parcel-delivery/models/rider"
)

func (c *Client) CreateRider(ctx context.Context, r *rider.Rider) (string, error) {
	var ack Ack
	if err := c.post(ctx, "/riders", r, &ack); err != nil {
		return "", err
	}
	return ack.insertedID("/riders")
}

// RidersByStatus lists riders from /riders/pending, /approved or /deactivated.
func (c *Client) RidersByStatus(ctx context.Context, status rider.Status) ([]rider.Rider, error) {
	switch status {
	case rider.StatusPending, rider.StatusApproved, rider.StatusDeactivated:
	default:
		return nil, fmt.Errorf("no rider listing for status %q", status)
	}

	var riders []rider.Rider
	if err := c.get(ctx, "/riders/"+string(status), nil, &riders); err != nil {
		return nil, err
	}
	return riders, nil
}

// AvailableRiders accepts either a bare array or {"riders": [...]}.
func (c *Client) AvailableRiders(ctx context.Context, area string) ([]rider.Rider, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/riders/available", url.Values{"area": {area}}, &raw); err != nil {
		return nil, err
	}
	return decodeRiderList(raw)
}

func decodeRiderList(raw json.RawMessage) ([]rider.Rider, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var riders []rider.Rider
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &riders); err != nil {
			return nil, fmt.Errorf("decode riders: %w", err)
		}
		return riders, nil
	}

	var wrapped struct {
		Riders []rider.Rider `json:"riders"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode riders: %w", err)
	}
	return wrapped.Riders, nil
}

// UpdateRiderStatus records an admin review decision on an application.
func (c *Client) UpdateRiderStatus(ctx context.Context, id string, status rider.Status) error {
	body := map[string]string{"status": string(status)}
	return c.patch(ctx, "/riders/"+escape(id)+"/status", body, nil)
}

func (c *Client) ActivateRider(ctx context.Context, id string) error {
	return c.patch(ctx, "/riders/"+escape(id)+"/activate", nil, nil)
}

func (c *Client) DeactivateRider(ctx context.Context, id string) error {
	return c.patch(ctx, "/riders/"+escape(id)+"/deactivate", nil, nil)
}

func (c *Client) DeleteRider(ctx context.Context, id string) (int, error) {
	var ack Ack
	if err := c.delete(ctx, "/riders/"+escape(id), &ack); err != nil {
		return 0, err
	}
	return ack.DeletedCount, nil
}
