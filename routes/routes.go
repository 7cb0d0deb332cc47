package routes

import (
	"parcel-delivery/config"
	"parcel-delivery/constants"
	"parcel-delivery/controllers/admin"
	"parcel-delivery/controllers/auth"
	"parcel-delivery/controllers/dashboard"
	"parcel-delivery/controllers/parcel"
	"parcel-delivery/controllers/payment"
	"parcel-delivery/controllers/rider"
	"parcel-delivery/controllers/user"
	"parcel-delivery/database"
	"parcel-delivery/httpServices/backend"
	"parcel-delivery/httpServices/identity"
	"parcel-delivery/httpServices/imagehost"
	"parcel-delivery/logger"
	"parcel-delivery/middleware"
	"parcel-delivery/services/booking"
	"parcel-delivery/services/checkout"
	"parcel-delivery/services/lifecycle"
	"parcel-delivery/services/role"
	rider_service "parcel-delivery/services/rider"
	"parcel-delivery/services/session"
	"parcel-delivery/services/tracking"
	"parcel-delivery/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the long-lived clients built in main.
type Dependencies struct {
	Config      *config.Config
	Backend     *backend.Client
	Identity    *identity.Client
	Images      *imagehost.Client
	Sessions    *session.Manager
	Roles       *role.Resolver
	Sealer      *utils.Sealer
	Identities  *database.IdentityDirectory
	AsyncLogger *logger.AsyncLogger
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	secure := deps.Config.IsProduction()

	trackingLogger := tracking.NewLogger(deps.Backend, deps.AsyncLogger)
	lifecycleService := lifecycle.NewService(deps.Backend, deps.Backend, trackingLogger)

	var identities auth.IdentityRecorder
	if deps.Identities != nil {
		identities = deps.Identities
	}

	authController := auth.NewAuthController(deps.Identity, deps.Sessions, deps.Roles, deps.Sealer, identities, secure)
	parcelController := parcel.NewParcelController(booking.NewService(deps.Backend, trackingLogger), deps.Backend)
	riderController := rider.NewRiderController(rider_service.NewOnboarding(deps.Backend), lifecycleService, deps.Backend)
	adminController := admin.NewAdminController(lifecycleService, deps.Backend, deps.Roles)
	paymentController := payment.NewPaymentController(checkout.NewService(deps.Backend, deps.Config.Payment.PublishableKey), deps.Backend)
	dashboardController := dashboard.NewDashboardController(deps.Backend)
	userController := user.NewUserController(deps.Backend, deps.Roles, deps.Images)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/price/estimate", parcelController.Estimate)
	api.Get("/trackings/:trackingId", parcelController.Track)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authController.Register)
	authGroup.Post("/login", authController.Login)
	authGroup.Post("/login/federated", authController.FederatedLogin)
	authGroup.Post("/password/reset", authController.PasswordReset)
	authGroup.Post("/refresh", authController.Refresh)
	authGroup.Post("/logout", authController.LogOut)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	authn := middleware.IsAuthenticated(deps.Sessions, secure)
	signedIn := middleware.RequireAnyRole(deps.Roles)

	api.Get("/auth/profile", authn, authController.Profile)
	api.Get("/me/role", authn, authController.MyRole)
	api.Get("/dashboard", authn, signedIn, dashboardController.Show)
	api.Post("/uploads/image", authn, userController.UploadPhoto)
	api.Post("/riders/apply", authn, riderController.Apply)

	parcels := api.Group("/parcels", authn, signedIn)
	parcels.Post("/", parcelController.Store)
	parcels.Get("/", parcelController.Index)
	parcels.Get("/:id", parcelController.Show)
	parcels.Delete("/:id", parcelController.Destroy)

	payments := api.Group("/payments", authn)
	payments.Post("/checkout", paymentController.Checkout)
	payments.Get("/", paymentController.History)

	/*=============================================================================
	| Rider Routes
	===============================================================================*/
	riderGroup := api.Group("/rider", authn, middleware.RequireRole(deps.Roles, constants.RoleRider))
	riderGroup.Get("/parcels", riderController.Parcels)
	riderGroup.Patch("/parcels/:id/pickup", riderController.PickUp)
	riderGroup.Patch("/parcels/:id/deliver", riderController.Deliver)
	riderGroup.Patch("/parcels/:id/cashout", riderController.CashOut)
	riderGroup.Get("/completed", riderController.Completed)
	riderGroup.Get("/earnings", riderController.Earnings)

	/*=============================================================================
	| Admin Routes
	===============================================================================*/
	adminGroup := api.Group("/admin", authn, middleware.RequireRole(deps.Roles, constants.RoleAdmin))
	adminGroup.Get("/parcels/assignable", adminController.AssignableParcels)
	adminGroup.Patch("/parcels/:id/assign-rider", adminController.AssignRider)
	adminGroup.Get("/riders/available", adminController.AvailableRiders)
	adminGroup.Get("/riders/pending", adminController.PendingRiders)
	adminGroup.Get("/riders/approved", adminController.ApprovedRiders)
	adminGroup.Get("/riders/deactivated", adminController.DeactivatedRiders)
	adminGroup.Patch("/riders/:id/status", adminController.UpdateRiderStatus)
	adminGroup.Patch("/riders/:id/activate", adminController.ActivateRider)
	adminGroup.Patch("/riders/:id/deactivate", adminController.DeactivateRider)
	adminGroup.Delete("/riders/:id", adminController.DeleteRider)
	adminGroup.Get("/users/search", userController.Search)
	adminGroup.Patch("/users/:id/role", userController.UpdateRole)
}
