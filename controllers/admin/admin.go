package admin

import (
	"context"
	"fmt"
	"strings"

	"parcel-delivery/controllers/response"
	"parcel-delivery/logger"
	"parcel-delivery/middleware"
	parcel_model "parcel-delivery/models/parcel"
	rider_model "parcel-delivery/models/rider"
	"parcel-delivery/services/lifecycle"
	rider_service "parcel-delivery/services/rider"
	parcel_type "parcel-delivery/types/parcel"
	rider_type "parcel-delivery/types/rider"

	"github.com/gofiber/fiber/v2"
)

type Assigner interface {
	Assign(ctx context.Context, parcelID, riderID, actor string) (*lifecycle.Outcome, error)
}

// Backend is the admin slice of the REST backend.
type Backend interface {
	AssignableParcels(ctx context.Context) ([]parcel_model.Parcel, error)
	AvailableRiders(ctx context.Context, area string) ([]rider_model.Rider, error)
	RidersByStatus(ctx context.Context, status rider_model.Status) ([]rider_model.Rider, error)
	UpdateRiderStatus(ctx context.Context, id string, status rider_model.Status) error
	ActivateRider(ctx context.Context, id string) error
	DeactivateRider(ctx context.Context, id string) error
	DeleteRider(ctx context.Context, id string) (int, error)
}

// RoleCache forgets a cached role once the backend changed it.
type RoleCache interface {
	Invalidate(ctx context.Context, email string) error
}

type AdminController struct {
	assigner Assigner
	backend  Backend
	roles    RoleCache
}

func NewAdminController(assigner Assigner, backend Backend, roles RoleCache) *AdminController {
	return &AdminController{assigner: assigner, backend: backend, roles: roles}
}

// AssignableParcels lists paid parcels nobody has collected yet.
func (ac *AdminController) AssignableParcels(c *fiber.Ctx) error {
	parcels, err := ac.backend.AssignableParcels(c.UserContext())
	if err != nil {
		return response.Error(c, err, "Failed to load assignable parcels")
	}
	if parcels == nil {
		parcels = []parcel_model.Parcel{}
	}
	return response.Success(c, fiber.StatusOK, "Assignable parcels fetched successfully", parcels)
}

// AvailableRiders lists approved riders serving ?area=.
func (ac *AdminController) AvailableRiders(c *fiber.Ctx) error {
	area := strings.TrimSpace(c.Query("area"))
	if area == "" {
		return response.BadRequest(c, "area is required")
	}

	riders, err := ac.backend.AvailableRiders(c.UserContext(), area)
	if err != nil {
		return response.Error(c, err, "Failed to load riders")
	}
	// the backend list is not trusted to exclude deactivated riders
	return response.Success(c, fiber.StatusOK, "Available riders fetched successfully", rider_service.FilterAvailable(riders, area))
}

func (ac *AdminController) AssignRider(c *fiber.Ctx) error {
	var req parcel_type.AssignRiderRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.Error(c, err, "Invalid assignment")
	}

	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return response.Unauthorized(c)
	}

	outcome, err := ac.assigner.Assign(c.UserContext(), c.Params("id"), req.RiderID, identity.Email)
	if err != nil {
		return response.Error(c, err, "Failed to assign rider")
	}

	message := "Rider assigned successfully"
	if outcome.TrackingFailed() {
		message += "; tracking history could not be updated"
	}
	return response.Success(c, fiber.StatusOK, message, outcome)
}

func (ac *AdminController) PendingRiders(c *fiber.Ctx) error {
	return ac.ridersByStatus(c, rider_model.StatusPending)
}

func (ac *AdminController) ApprovedRiders(c *fiber.Ctx) error {
	return ac.ridersByStatus(c, rider_model.StatusApproved)
}

func (ac *AdminController) DeactivatedRiders(c *fiber.Ctx) error {
	return ac.ridersByStatus(c, rider_model.StatusDeactivated)
}

func (ac *AdminController) ridersByStatus(c *fiber.Ctx, status rider_model.Status) error {
	riders, err := ac.backend.RidersByStatus(c.UserContext(), status)
	if err != nil {
		return response.Error(c, err, fmt.Sprintf("Failed to load %s riders", status))
	}
	if riders == nil {
		riders = []rider_model.Rider{}
	}
	return response.Success(c, fiber.StatusOK, fmt.Sprintf("Riders (%s) fetched successfully", status), riders)
}

// UpdateRiderStatus records the review decision on a pending application.
func (ac *AdminController) UpdateRiderStatus(c *fiber.Ctx) error {
	var req rider_type.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.Error(c, err, "Invalid rider status")
	}

	ctx := c.UserContext()
	id := c.Params("id")
	status := rider_model.Status(req.Status)
	email := ac.riderEmail(ctx, id, rider_model.StatusPending)
	if err := ac.backend.UpdateRiderStatus(ctx, id, status); err != nil {
		return response.Error(c, err, "Failed to update rider status")
	}
	ac.forgetRole(ctx, email)

	logger.Success(fmt.Sprintf("Rider %s %s", id, status))
	return response.Success(c, fiber.StatusOK, "Rider status updated successfully", fiber.Map{"id": id, "status": status})
}

func (ac *AdminController) ActivateRider(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")
	email := ac.riderEmail(ctx, id, rider_model.StatusDeactivated)
	if err := ac.backend.ActivateRider(ctx, id); err != nil {
		return response.Error(c, err, "Failed to activate rider")
	}
	ac.forgetRole(ctx, email)
	logger.Success("Rider activated: " + id)
	return response.Success(c, fiber.StatusOK, "Rider activated successfully", fiber.Map{"id": id, "status": rider_model.StatusApproved})
}

func (ac *AdminController) DeactivateRider(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")
	email := ac.riderEmail(ctx, id, rider_model.StatusApproved)
	if err := ac.backend.DeactivateRider(ctx, id); err != nil {
		return response.Error(c, err, "Failed to deactivate rider")
	}
	ac.forgetRole(ctx, email)
	logger.Success("Rider deactivated: " + id)
	return response.Success(c, fiber.StatusOK, "Rider deactivated successfully", fiber.Map{"id": id, "status": rider_model.StatusDeactivated})
}

func (ac *AdminController) DeleteRider(c *fiber.Ctx) error {
	id := c.Params("id")
	deleted, err := ac.backend.DeleteRider(c.UserContext(), id)
	if err != nil {
		return response.Error(c, err, "Failed to delete rider")
	}
	if deleted == 0 {
		logger.Warning("Rider was already gone at the backend: " + id)
	}
	return response.Success(c, fiber.StatusOK, "Rider deleted successfully", fiber.Map{"deleted_count": deleted})
}

// riderEmail finds the rider in the listing they sit in before a status
// change; the backend has no lookup by id. Empty when not found.
func (ac *AdminController) riderEmail(ctx context.Context, id string, from rider_model.Status) string {
	riders, err := ac.backend.RidersByStatus(ctx, from)
	if err != nil {
		logger.Warning(fmt.Sprintf("Could not look up rider %s among %s riders: %v", id, from, err))
		return ""
	}
	for i := range riders {
		if riders[i].ID == id {
			return riders[i].Email
		}
	}
	logger.Warning(fmt.Sprintf("Rider %s is not among %s riders, cached role left as is", id, from))
	return ""
}

func (ac *AdminController) forgetRole(ctx context.Context, email string) {
	if email == "" || ac.roles == nil {
		return
	}
	if err := ac.roles.Invalidate(ctx, email); err != nil {
		logger.Warning(fmt.Sprintf("Failed to drop cached role for %s: %v", email, err))
	}
}
