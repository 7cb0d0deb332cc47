package dashboard

import (
	"context"
	"time"

	"parcel-delivery/constants"
	"parcel-delivery/controllers/response"
	"parcel-delivery/middleware"
	parcel_model "parcel-delivery/models/parcel"
	rider_model "parcel-delivery/models/rider"
	dashboard_service "parcel-delivery/services/dashboard"

	"github.com/gofiber/fiber/v2"
)

type Backend interface {
	ListParcels(ctx context.Context, email string) ([]parcel_model.Parcel, error)
	RiderParcels(ctx context.Context, riderEmail string) ([]parcel_model.Parcel, error)
	RiderCompletedParcels(ctx context.Context, riderEmail string) ([]parcel_model.Parcel, error)
	RidersByStatus(ctx context.Context, status rider_model.Status) ([]rider_model.Rider, error)
	AssignableParcels(ctx context.Context) ([]parcel_model.Parcel, error)
}

type DashboardController struct {
	backend Backend
	now     func() time.Time
}

func NewDashboardController(backend Backend) *DashboardController {
	return &DashboardController{backend: backend, now: time.Now}
}

// Show renders the counts for whichever role the guard resolved.
func (dc *DashboardController) Show(c *fiber.Ctx) error {
	id := middleware.CurrentIdentity(c)
	if id == nil {
		return response.Unauthorized(c)
	}

	switch middleware.CurrentRole(c) {
	case constants.RoleAdmin:
		return dc.admin(c)
	case constants.RoleRider:
		return dc.rider(c, id.Email)
	default:
		return dc.customer(c, id.Email)
	}
}

func (dc *DashboardController) customer(c *fiber.Ctx, email string) error {
	parcels, err := dc.backend.ListParcels(c.UserContext(), email)
	if err != nil {
		return response.Error(c, err, "Failed to load dashboard")
	}
	return response.Success(c, fiber.StatusOK, "Dashboard fetched successfully", dashboard_service.ForCustomer(parcels))
}

func (dc *DashboardController) rider(c *fiber.Ctx, email string) error {
	ctx := c.UserContext()
	assigned, err := dc.backend.RiderParcels(ctx, email)
	if err != nil {
		return response.Error(c, err, "Failed to load dashboard")
	}
	completed, err := dc.backend.RiderCompletedParcels(ctx, email)
	if err != nil {
		return response.Error(c, err, "Failed to load dashboard")
	}
	return response.Success(c, fiber.StatusOK, "Dashboard fetched successfully",
		dashboard_service.ForRider(assigned, completed, dc.now()))
}

func (dc *DashboardController) admin(c *fiber.Ctx) error {
	ctx := c.UserContext()
	pending, err := dc.backend.RidersByStatus(ctx, rider_model.StatusPending)
	if err != nil {
		return response.Error(c, err, "Failed to load dashboard")
	}
	approved, err := dc.backend.RidersByStatus(ctx, rider_model.StatusApproved)
	if err != nil {
		return response.Error(c, err, "Failed to load dashboard")
	}
	assignable, err := dc.backend.AssignableParcels(ctx)
	if err != nil {
		return response.Error(c, err, "Failed to load dashboard")
	}
	return response.Success(c, fiber.StatusOK, "Dashboard fetched successfully",
		dashboard_service.ForAdmin(pending, approved, assignable))
}
