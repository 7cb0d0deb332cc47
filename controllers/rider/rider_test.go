package rider

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parcel-delivery/constants"
	"parcel-delivery/httpServices/backend"
	parcel_model "parcel-delivery/models/parcel"
	rider_model "parcel-delivery/models/rider"
	"parcel-delivery/services/lifecycle"
	rider_service "parcel-delivery/services/rider"
	"parcel-delivery/services/session"
	rider_type "parcel-delivery/types/rider"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubApplications struct {
	applicant rider_service.Applicant
	err       error
}

func (s *stubApplications) Apply(_ context.Context, req *rider_type.ApplyRequest, applicant rider_service.Applicant) (*rider_model.Rider, error) {
	s.applicant = applicant
	if s.err != nil {
		return nil, s.err
	}
	return &rider_model.Rider{Name: req.Name, Email: applicant.Email, Status: rider_model.StatusPending}, nil
}

type stubDeliveries struct {
	calls   []string
	outcome *lifecycle.Outcome
	err     error
}

func (s *stubDeliveries) run(op, parcelID, riderEmail string) (*lifecycle.Outcome, error) {
	s.calls = append(s.calls, op+":"+parcelID+":"+riderEmail)
	return s.outcome, s.err
}

func (s *stubDeliveries) PickUp(_ context.Context, parcelID, riderEmail string) (*lifecycle.Outcome, error) {
	return s.run("pickup", parcelID, riderEmail)
}

func (s *stubDeliveries) Deliver(_ context.Context, parcelID, riderEmail string) (*lifecycle.Outcome, error) {
	return s.run("deliver", parcelID, riderEmail)
}

func (s *stubDeliveries) CashOut(_ context.Context, parcelID, riderEmail string) (*lifecycle.Outcome, error) {
	return s.run("cashout", parcelID, riderEmail)
}

type stubParcels struct {
	assigned  []parcel_model.Parcel
	completed []parcel_model.Parcel
	err       error
}

func (s *stubParcels) RiderParcels(context.Context, string) ([]parcel_model.Parcel, error) {
	return s.assigned, s.err
}

func (s *stubParcels) RiderCompletedParcels(context.Context, string) ([]parcel_model.Parcel, error) {
	return s.completed, s.err
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

const riderEmail = "rider@example.com"

func newApp(rc *RiderController) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(constants.LocalsIdentity, &session.Identity{UID: "uid-r", Email: riderEmail})
		c.Locals(constants.LocalsRole, constants.RoleRider)
		return c.Next()
	})
	app.Post("/riders/apply", rc.Apply)
	app.Get("/rider/parcels", rc.Parcels)
	app.Patch("/rider/parcels/:id/pickup", rc.PickUp)
	app.Patch("/rider/parcels/:id/deliver", rc.Deliver)
	app.Patch("/rider/parcels/:id/cashout", rc.CashOut)
	app.Get("/rider/completed", rc.Completed)
	app.Get("/rider/earnings", rc.Earnings)
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestApply(t *testing.T) {
	apps := &stubApplications{}
	app := newApp(NewRiderController(apps, &stubDeliveries{}, &stubParcels{}))

	status, _ := do(t, app, http.MethodPost, "/riders/apply", map[string]interface{}{"name": "Rahim"})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, rider_service.Applicant{UID: "uid-r", Email: riderEmail}, apps.applicant)

	apps.err = &rider_service.ApplicationError{Fields: map[string]string{"vehicle_registration": "required"}}
	status, _ = do(t, app, http.MethodPost, "/riders/apply", map[string]interface{}{"name": "Rahim"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSteps_UseCallerEmail(t *testing.T) {
	deliveries := &stubDeliveries{outcome: &lifecycle.Outcome{Parcel: &parcel_model.Parcel{ID: "p1"}}}
	app := newApp(NewRiderController(&stubApplications{}, deliveries, &stubParcels{}))

	for _, op := range []string{"pickup", "deliver", "cashout"} {
		status, _ := do(t, app, http.MethodPatch, "/rider/parcels/p1/"+op, nil)
		assert.Equal(t, http.StatusOK, status, op)
	}
	assert.Equal(t, []string{
		"pickup:p1:" + riderEmail,
		"deliver:p1:" + riderEmail,
		"cashout:p1:" + riderEmail,
	}, deliveries.calls)
}

func TestSteps_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"out of order", &lifecycle.TransitionError{ParcelID: "p1", From: parcel_model.DeliveryRiderAssigned, To: parcel_model.DeliveryDelivered}, http.StatusConflict},
		{"someone else's parcel", lifecycle.ErrNotAssigned, http.StatusForbidden},
		{"backend timeout", backend.ErrTimeout, http.StatusGatewayTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(NewRiderController(&stubApplications{}, &stubDeliveries{err: tt.err}, &stubParcels{}))
			status, _ := do(t, app, http.MethodPatch, "/rider/parcels/p1/deliver", nil)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestSteps_TrackingFailureStillSucceeds(t *testing.T) {
	deliveries := &stubDeliveries{outcome: &lifecycle.Outcome{
		Parcel:      &parcel_model.Parcel{ID: "p1", DeliveryStatus: parcel_model.DeliveryDelivered},
		TrackingErr: backend.ErrUnavailable,
	}}
	app := newApp(NewRiderController(&stubApplications{}, deliveries, &stubParcels{}))

	status, env := do(t, app, http.MethodPatch, "/rider/parcels/p1/deliver", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, env.Message, "tracking history could not be updated")
}

func TestCompletedAndEarnings(t *testing.T) {
	at := time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC) // Wednesday
	today := at.Add(-2 * time.Hour)
	lastMonth := time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC)

	parcels := &stubParcels{completed: []parcel_model.Parcel{
		{ID: "a", Cost: 100, SenderDistrict: "Dhaka", ReceiverDistrict: "Dhaka", DeliveryStatus: parcel_model.DeliveryDelivered, DeliveredAt: &today},
		{ID: "b", Cost: 200, SenderDistrict: "Dhaka", ReceiverDistrict: "Khulna", DeliveryStatus: parcel_model.DeliveryDelivered, DeliveredAt: &lastMonth, CashoutStatus: parcel_model.CashoutCashedOut},
		{ID: "c", Cost: 500, SenderDistrict: "Dhaka", ReceiverDistrict: "Dhaka", DeliveryStatus: parcel_model.DeliveryInTransit},
	}}
	rc := NewRiderController(&stubApplications{}, &stubDeliveries{}, parcels)
	rc.now = func() time.Time { return at }
	app := newApp(rc)

	status, env := do(t, app, http.MethodGet, "/rider/completed", nil)
	require.Equal(t, http.StatusOK, status)
	var completed []struct {
		ID      string  `json:"_id"`
		Earning float64 `json:"earning"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &completed))
	require.Len(t, completed, 2)
	assert.Equal(t, 80.0, completed[0].Earning)
	assert.Equal(t, 60.0, completed[1].Earning)

	status, env = do(t, app, http.MethodGet, "/rider/earnings", nil)
	require.Equal(t, http.StatusOK, status)
	var summary struct {
		Today     float64 `json:"today"`
		Month     float64 `json:"month"`
		Total     float64 `json:"total"`
		CashedOut float64 `json:"cashed_out"`
		Pending   float64 `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 80.0, summary.Today)
	assert.Equal(t, 80.0, summary.Month)
	assert.Equal(t, 140.0, summary.Total)
	assert.Equal(t, 60.0, summary.CashedOut)
	assert.Equal(t, 80.0, summary.Pending)
}
