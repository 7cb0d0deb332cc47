package response

import (
	"errors"

	"parcel-delivery/constants"
	"parcel-delivery/httpServices/backend"
	"parcel-delivery/httpServices/identity"
	"parcel-delivery/httpServices/imagehost"
	"parcel-delivery/logger"
	"parcel-delivery/services/booking"
	"parcel-delivery/services/checkout"
	"parcel-delivery/services/lifecycle"
	"parcel-delivery/services/rider"
	"parcel-delivery/services/session"
	"parcel-delivery/types"

	"github.com/gofiber/fiber/v2"
)

// Success writes the standard envelope.
func Success(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(types.ApiResponse{
		Message: message,
		Status:  status,
		Data:    data,
	})
}

// BadRequest is for bodies that could not be parsed at all.
func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
		Message: message,
		Status:  fiber.StatusBadRequest,
	})
}

// Unauthorized is used when a handler needs an identity the route did not provide.
func Unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
		Message:  "Authorization token missing",
		Status:   fiber.StatusUnauthorized,
		Redirect: constants.RouteLogin,
	})
}

// Error classifies err and writes the matching envelope. message is what the
// caller tried to do, e.g. "Failed to assign rider".
func Error(c *fiber.Ctx, err error, message string) error {
	status, body := Classify(err, message)
	if status >= fiber.StatusInternalServerError {
		logger.Error(message, err)
	} else {
		logger.Warning(message + ": " + err.Error())
	}
	return c.Status(status).JSON(body)
}

// Classify maps service and client errors onto HTTP statuses.
func Classify(err error, message string) (int, types.ApiResponse) {
	body := types.ApiResponse{Message: message}

	if fields := fieldErrors(err); fields != nil {
		body.Status = fiber.StatusBadRequest
		body.Errors = fields
		return body.Status, body
	}

	switch {
	case errors.Is(err, lifecycle.ErrInvalidInput):
		body.Status = fiber.StatusBadRequest
		body.Message = err.Error()

	case errors.Is(err, identity.ErrInvalidCredentials),
		errors.Is(err, identity.ErrUserDisabled):
		body.Status = fiber.StatusUnauthorized
		body.Message = err.Error()

	case errors.Is(err, identity.ErrSessionExpired),
		errors.Is(err, session.ErrSessionExpired),
		errors.Is(err, session.ErrInvalidToken),
		errors.Is(err, backend.ErrUnauthorized):
		body.Status = fiber.StatusUnauthorized
		body.Message = "Session expired. Login again."
		body.Redirect = constants.RouteLogin

	case errors.Is(err, identity.ErrEmailExists):
		body.Status = fiber.StatusConflict
		body.Message = err.Error()

	case errors.Is(err, lifecycle.ErrNotAssigned),
		errors.Is(err, booking.ErrNotOwner),
		errors.Is(err, checkout.ErrNotOwner),
		errors.Is(err, backend.ErrForbidden):
		body.Status = fiber.StatusForbidden
		body.Redirect = constants.RouteForbidden

	case lifecycle.IsPrecondition(err),
		errors.Is(err, booking.ErrNotDeletable),
		errors.Is(err, checkout.ErrAlreadyPaid),
		errors.Is(err, checkout.ErrInvalidAmount):
		body.Status = fiber.StatusConflict
		body.Message = err.Error()

	case errors.Is(err, backend.ErrNotFound):
		body.Status = fiber.StatusNotFound
		body.Message = "Not found"

	case errors.Is(err, backend.ErrPayment):
		body.Status = fiber.StatusPaymentRequired

	case errors.Is(err, backend.ErrBadRequest):
		body.Status = fiber.StatusBadRequest
		var re *backend.RemoteError
		if errors.As(err, &re) && re.Message != "" {
			body.Message = re.Message
		}

	case errors.Is(err, backend.ErrTimeout):
		body.Status = fiber.StatusGatewayTimeout
		body.Retryable = true

	case errors.Is(err, backend.ErrUnavailable),
		errors.Is(err, backend.ErrRemote),
		errors.Is(err, identity.ErrProvider),
		errors.Is(err, imagehost.ErrUpload):
		body.Status = fiber.StatusBadGateway
		body.Retryable = true

	case errors.Is(err, imagehost.ErrNotConfigured):
		body.Status = fiber.StatusServiceUnavailable

	default:
		body.Status = fiber.StatusInternalServerError
	}

	if backend.IsRetryable(err) {
		body.Retryable = true
	}
	return body.Status, body
}

func fieldErrors(err error) map[string]string {
	var be *booking.FieldError
	if errors.As(err, &be) {
		return be.Fields
	}
	var ae *rider.ApplicationError
	if errors.As(err, &ae) {
		return ae.Fields
	}
	return types.ValidationMessages(err)
}
