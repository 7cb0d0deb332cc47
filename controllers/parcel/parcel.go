package parcel

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"parcel-delivery/constants"
	"parcel-delivery/controllers/response"
	"parcel-delivery/httpServices/backend"
	"parcel-delivery/logger"
	parcel_model "parcel-delivery/models/parcel"
	tracking_model "parcel-delivery/models/tracking"
	"parcel-delivery/middleware"
	"parcel-delivery/services/booking"
	parcel_type "parcel-delivery/types/parcel"

	"github.com/gofiber/fiber/v2"
)

var errNoTrackingHistory = fmt.Errorf("no tracking history: %w", backend.ErrNotFound)

// Booker books and deletes a customer's parcels.
type Booker interface {
	Book(ctx context.Context, req *parcel_type.BookParcelRequest, owner string, now time.Time) (*booking.Result, error)
	Delete(ctx context.Context, id, owner string) error
}

type ParcelReader interface {
	ListParcels(ctx context.Context, email string) ([]parcel_model.Parcel, error)
	GetParcel(ctx context.Context, id string) (*parcel_model.Parcel, error)
	Trackings(ctx context.Context, trackingID string) ([]tracking_model.Event, error)
}

// ParcelController handles the customer side of parcels and public tracking.
type ParcelController struct {
	booker  Booker
	parcels ParcelReader
	now     func() time.Time
}

func NewParcelController(booker Booker, parcels ParcelReader) *ParcelController {
	return &ParcelController{booker: booker, parcels: parcels, now: time.Now}
}

// Estimate prices a shipment without booking it.
func (pc *ParcelController) Estimate(c *fiber.Ctx) error {
	var req parcel_type.PriceEstimateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return response.BadRequest(c, "Invalid request body")
	}

	quote, err := booking.Estimate(&req)
	if err != nil {
		return response.Error(c, err, "Invalid price request")
	}

	return response.Success(c, fiber.StatusOK, "Price calculated", fiber.Map{
		"pricing": quote,
		"summary": quote.Summary(),
	})
}

// Store books a parcel for the signed-in customer.
func (pc *ParcelController) Store(c *fiber.Ctx) error {
	var req parcel_type.BookParcelRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return response.BadRequest(c, "Invalid request body")
	}

	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return response.Unauthorized(c)
	}

	result, err := pc.booker.Book(c.UserContext(), &req, identity.Email, pc.now())
	if err != nil {
		return response.Error(c, err, "Failed to book parcel")
	}

	message := "Parcel booked successfully"
	if result.TrackingErr != nil {
		message = "Parcel booked successfully; tracking history will update shortly"
	}
	return response.Success(c, fiber.StatusCreated, message, result)
}

// Index lists the caller's parcels.
func (pc *ParcelController) Index(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return response.Unauthorized(c)
	}

	parcels, err := pc.parcels.ListParcels(c.UserContext(), identity.Email)
	if err != nil {
		return response.Error(c, err, "Failed to load parcels")
	}
	if parcels == nil {
		parcels = []parcel_model.Parcel{}
	}
	return response.Success(c, fiber.StatusOK, "Parcels fetched successfully", parcels)
}

// Show returns one parcel to its owner, its rider or an admin.
func (pc *ParcelController) Show(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return response.Unauthorized(c)
	}

	p, err := pc.parcels.GetParcel(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.Error(c, err, "Failed to load parcel")
	}

	if middleware.CurrentRole(c) != constants.RoleAdmin && !p.IsOwnedBy(identity.Email) && !p.IsAssignedTo(identity.Email) {
		return response.Error(c, booking.ErrNotOwner, "Parcel not available")
	}
	return response.Success(c, fiber.StatusOK, "Parcel fetched successfully", p)
}

// Destroy deletes a parcel that has not been paid for or picked up.
func (pc *ParcelController) Destroy(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return response.Unauthorized(c)
	}

	id := c.Params("id")
	if err := pc.booker.Delete(c.UserContext(), id, identity.Email); err != nil {
		return response.Error(c, err, "Failed to delete parcel")
	}

	logger.Success(fmt.Sprintf("Parcel %s deleted by %s", id, identity.Email))
	return response.Success(c, fiber.StatusOK, "Parcel deleted successfully", nil)
}

// Track is public: anyone holding a tracking id may follow the parcel.
func (pc *ParcelController) Track(c *fiber.Ctx) error {
	trackingID := strings.ToUpper(strings.TrimSpace(c.Params("trackingId")))
	if trackingID == "" {
		return response.BadRequest(c, "Tracking ID is required")
	}

	events, err := pc.parcels.Trackings(c.UserContext(), trackingID)
	if err != nil {
		return response.Error(c, err, "Failed to load tracking history")
	}
	if len(events) == 0 {
		return response.Error(c, fmt.Errorf("tracking %s: %w", trackingID, errNoTrackingHistory), "No tracking history found")
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return response.Success(c, fiber.StatusOK, "Tracking history fetched successfully", events)
}
