package payment

import (
	"context"
	"fmt"

	"parcel-delivery/controllers/response"
	"parcel-delivery/logger"
	"parcel-delivery/middleware"
	payment_model "parcel-delivery/models/payment"
	payment_type "parcel-delivery/types/payment"

	"github.com/gofiber/fiber/v2"
)

type Checkout interface {
	Start(ctx context.Context, parcelID, email string) (*payment_type.CheckoutResponse, error)
}

type History interface {
	Payments(ctx context.Context, email string) ([]payment_model.Payment, error)
}

type PaymentController struct {
	checkout Checkout
	history  History
}

func NewPaymentController(checkout Checkout, history History) *PaymentController {
	return &PaymentController{checkout: checkout, history: history}
}

// Checkout opens a payment intent for the caller's unpaid parcel. The amount
// always comes from the stored parcel.
func (pc *PaymentController) Checkout(c *fiber.Ctx) error {
	id := middleware.CurrentIdentity(c)
	if id == nil {
		return response.Unauthorized(c)
	}

	var req payment_type.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.Error(c, err, "Invalid checkout request")
	}

	res, err := pc.checkout.Start(c.UserContext(), req.ParcelID, id.Email)
	if err != nil {
		return response.Error(c, err, "Failed to start checkout")
	}

	logger.Info(fmt.Sprintf("Checkout started for parcel %s (%.2f)", res.ParcelID, res.Amount))
	return response.Success(c, fiber.StatusOK, "Checkout started", res)
}

func (pc *PaymentController) History(c *fiber.Ctx) error {
	id := middleware.CurrentIdentity(c)
	if id == nil {
		return response.Unauthorized(c)
	}

	payments, err := pc.history.Payments(c.UserContext(), id.Email)
	if err != nil {
		return response.Error(c, err, "Failed to fetch payments")
	}
	if payments == nil {
		payments = []payment_model.Payment{}
	}
	return response.Success(c, fiber.StatusOK, "Payments fetched successfully", payments)
}
