package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"parcel-delivery/models/parcel"
)

// AssignRiderPayload identifies the rider taking a parcel.
type AssignRiderPayload struct {
	RiderID      string `json:"riderId"`
	RiderName    string `json:"riderName,omitempty"`
	RiderEmail   string `json:"riderEmail,omitempty"`
	RiderContact string `json:"riderContact,omitempty"`
}

type riderEmailPayload struct {
	RiderEmail string `json:"riderEmail"`
}

// ListParcels returns the parcels booked by email.
func (c *Client) ListParcels(ctx context.Context, email string) ([]parcel.Parcel, error) {
	var parcels []parcel.Parcel
	if err := c.get(ctx, "/parcels", url.Values{"email": {email}}, &parcels); err != nil {
		return nil, err
	}
	return parcels, nil
}

func (c *Client) GetParcel(ctx context.Context, id string) (*parcel.Parcel, error) {
	var p parcel.Parcel
	if err := c.get(ctx, "/parcels/"+escape(id), nil, &p); err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, fmt.Errorf("GET /parcels/%s: %w", id, ErrNotFound)
	}
	return &p, nil
}

// CreateParcel stores a booked parcel and returns the server-assigned id.
func (c *Client) CreateParcel(ctx context.Context, p *parcel.Parcel) (string, error) {
	var ack Ack
	if err := c.post(ctx, "/parcels", p, &ack); err != nil {
		return "", err
	}
	return ack.insertedID("/parcels")
}

func (c *Client) DeleteParcel(ctx context.Context, id string) (int, error) {
	var ack Ack
	if err := c.delete(ctx, "/parcels/"+escape(id), &ack); err != nil {
		return 0, err
	}
	return ack.DeletedCount, nil
}

// AssignableParcels lists paid parcels still waiting for a rider.
func (c *Client) AssignableParcels(ctx context.Context) ([]parcel.Parcel, error) {
	query := url.Values{
		"payment_status":  {string(parcel.PaymentPaid)},
		"delivery_status": {string(parcel.DeliveryNotCollected)},
	}
	var parcels []parcel.Parcel
	if err := c.get(ctx, "/admin/parcels", query, &parcels); err != nil {
		return nil, err
	}
	return parcels, nil
}

// AssignRider returns the updated parcel when the backend echoes it, nil on a bare ack.
func (c *Client) AssignRider(ctx context.Context, parcelID string, payload AssignRiderPayload) (*parcel.Parcel, error) {
	return c.mutateParcel(ctx, "/parcels/"+escape(parcelID)+"/assign-rider", payload)
}

func (c *Client) MarkPickedUp(ctx context.Context, parcelID, riderEmail string) (*parcel.Parcel, error) {
	return c.mutateParcel(ctx, "/parcels/"+escape(parcelID)+"/pickup", riderEmailPayload{RiderEmail: riderEmail})
}

func (c *Client) MarkDelivered(ctx context.Context, parcelID, riderEmail string) (*parcel.Parcel, error) {
	return c.mutateParcel(ctx, "/parcels/"+escape(parcelID)+"/deliver", riderEmailPayload{RiderEmail: riderEmail})
}

func (c *Client) CashOut(ctx context.Context, parcelID string) (*parcel.Parcel, error) {
	return c.mutateParcel(ctx, "/parcels/"+escape(parcelID)+"/cashout", nil)
}

func (c *Client) mutateParcel(ctx context.Context, path string, body interface{}) (*parcel.Parcel, error) {
	var raw json.RawMessage
	if err := c.patch(ctx, path, body, &raw); err != nil {
		return nil, err
	}
	return decodeEchoedParcel(raw), nil
}

// decodeEchoedParcel tells a returned parcel apart from an {modifiedCount} ack.
func decodeEchoedParcel(raw json.RawMessage) *parcel.Parcel {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var p parcel.Parcel
	if err := json.Unmarshal(raw, &p); err != nil || p.ID == "" {
		return nil
	}
	return &p
}

// RiderParcels lists parcels assigned to a rider that are not yet delivered.
func (c *Client) RiderParcels(ctx context.Context, riderEmail string) ([]parcel.Parcel, error) {
	var parcels []parcel.Parcel
	if err := c.get(ctx, "/rider/parcels", url.Values{"email": {riderEmail}}, &parcels); err != nil {
		return nil, err
	}
	return parcels, nil
}

// RiderCompletedParcels lists a rider's delivered parcels.
func (c *Client) RiderCompletedParcels(ctx context.Context, riderEmail string) ([]parcel.Parcel, error) {
	var parcels []parcel.Parcel
	if err := c.get(ctx, "/rider/completed-parcels", url.Values{"email": {riderEmail}}, &parcels); err != nil {
		return nil, err
	}
	return parcels, nil
}
