package rider

import (
	"context"
	"time"

	"parcel-delivery/controllers/response"
	"parcel-delivery/logger"
	"parcel-delivery/middleware"
	parcel_model "parcel-delivery/models/parcel"
	rider_model "parcel-delivery/models/rider"
	"parcel-delivery/services/earnings"
	"parcel-delivery/services/lifecycle"
	rider_service "parcel-delivery/services/rider"
	rider_type "parcel-delivery/types/rider"

	"github.com/gofiber/fiber/v2"
)

type Applications interface {
	Apply(ctx context.Context, req *rider_type.ApplyRequest, applicant rider_service.Applicant) (*rider_model.Rider, error)
}

// Deliveries are the rider's steps of the parcel lifecycle.
type Deliveries interface {
	PickUp(ctx context.Context, parcelID, riderEmail string) (*lifecycle.Outcome, error)
	Deliver(ctx context.Context, parcelID, riderEmail string) (*lifecycle.Outcome, error)
	CashOut(ctx context.Context, parcelID, riderEmail string) (*lifecycle.Outcome, error)
}

type ParcelReader interface {
	RiderParcels(ctx context.Context, riderEmail string) ([]parcel_model.Parcel, error)
	RiderCompletedParcels(ctx context.Context, riderEmail string) ([]parcel_model.Parcel, error)
}

type RiderController struct {
	applications Applications
	deliveries   Deliveries
	parcels      ParcelReader
	now          func() time.Time
}

func NewRiderController(applications Applications, deliveries Deliveries, parcels ParcelReader) *RiderController {
	return &RiderController{
		applications: applications,
		deliveries:   deliveries,
		parcels:      parcels,
		now:          time.Now,
	}
}

// Apply submits the signed-in user's rider application.
func (rc *RiderController) Apply(c *fiber.Ctx) error {
	var req rider_type.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return response.BadRequest(c, "Invalid request body")
	}

	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return response.Unauthorized(c)
	}

	r, err := rc.applications.Apply(c.UserContext(), &req, rider_service.Applicant{UID: identity.UID, Email: identity.Email})
	if err != nil {
		return response.Error(c, err, "Failed to submit rider application")
	}
	return response.Success(c, fiber.StatusCreated, "Application submitted and pending review", r)
}

// Parcels lists what is currently assigned to the rider.
func (rc *RiderController) Parcels(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return response.Unauthorized(c)
	}

	parcels, err := rc.parcels.RiderParcels(c.UserContext(), identity.Email)
	if err != nil {
		return response.Error(c, err, "Failed to load assigned parcels")
	}
	if parcels == nil {
		parcels = []parcel_model.Parcel{}
	}
	return response.Success(c, fiber.StatusOK, "Assigned parcels fetched successfully", parcels)
}

func (rc *RiderController) PickUp(c *fiber.Ctx) error {
	return rc.step(c, rc.deliveries.PickUp, "Parcel picked up", "Failed to mark parcel as picked up")
}

func (rc *RiderController) Deliver(c *fiber.Ctx) error {
	return rc.step(c, rc.deliveries.Deliver, "Parcel delivered", "Failed to mark parcel as delivered")
}

func (rc *RiderController) CashOut(c *fiber.Ctx) error {
	return rc.step(c, rc.deliveries.CashOut, "Earning cashed out", "Failed to cash out")
}

type stepFunc func(ctx context.Context, parcelID, riderEmail string) (*lifecycle.Outcome, error)

func (rc *RiderController) step(c *fiber.Ctx, run stepFunc, okMessage, failMessage string) error {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return response.Unauthorized(c)
	}

	outcome, err := run(c.UserContext(), c.Params("id"), identity.Email)
	if err != nil {
		return response.Error(c, err, failMessage)
	}
	if outcome.TrackingFailed() {
		okMessage += "; tracking history could not be updated"
	}
	return response.Success(c, fiber.StatusOK, okMessage, outcome)
}

// Completed lists delivered parcels with the rider's share of each.
func (rc *RiderController) Completed(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return response.Unauthorized(c)
	}

	parcels, err := rc.parcels.RiderCompletedParcels(c.UserContext(), identity.Email)
	if err != nil {
		return response.Error(c, err, "Failed to load completed deliveries")
	}

	type completedParcel struct {
		parcel_model.Parcel
		Earning float64 `json:"earning"`
	}
	delivered := earnings.Delivered(parcels)
	out := make([]completedParcel, 0, len(delivered))
	for _, p := range delivered {
		out = append(out, completedParcel{
			Parcel:  p,
			Earning: earnings.RiderShare(p.Cost, p.SenderDistrict, p.ReceiverDistrict),
		})
	}
	return response.Success(c, fiber.StatusOK, "Completed deliveries fetched successfully", out)
}

// Earnings is recomputed from the completed parcels on every call.
func (rc *RiderController) Earnings(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return response.Unauthorized(c)
	}

	parcels, err := rc.parcels.RiderCompletedParcels(c.UserContext(), identity.Email)
	if err != nil {
		return response.Error(c, err, "Failed to load earnings")
	}

	summary := earnings.Summarize(earnings.Delivered(parcels), rc.now())
	return response.Success(c, fiber.StatusOK, "Earnings calculated successfully", summary)
}
