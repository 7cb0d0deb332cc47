package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcel-delivery/config"
	"parcel-delivery/database"
	"parcel-delivery/httpServices/backend"
	"parcel-delivery/httpServices/identity"
	"parcel-delivery/httpServices/imagehost"
	"parcel-delivery/logger"
	"parcel-delivery/middleware"
	"parcel-delivery/routes"
	"parcel-delivery/services/role"
	"parcel-delivery/services/session"
	"parcel-delivery/types"
	"parcel-delivery/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading .env file", err)
	}

	logCloser, err := logger.Setup(cfg.LogDir)
	if err != nil {
		fmt.Println("File logging disabled:", err)
	} else {
		defer logCloser.Close()
	}
	logger.SetDebug(!cfg.IsProduction())

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}

	asyncLogger := logger.NewAsyncLogger(db)
	go asyncLogger.ProcessLog()
	defer asyncLogger.Close()

	sealer, err := utils.NewSealer(cfg.EncryptionKey)
	if err != nil {
		logger.Error("Refresh cookie encryption is not configured", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := session.NewManager(cfg.Identity)
	if err := sessions.Init(ctx); err != nil {
		logger.Error("Failed to load identity signing keys", err)
		return
	}
	defer sessions.Close()

	backendClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	var roleCache role.Cache = role.NewMemoryCache()
	if cfg.Redis.Addr != "" {
		rdb, err := role.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warning("Redis unavailable, caching roles in memory: " + err.Error())
		} else {
			defer rdb.Close()
			roleCache = role.NewRedisCache(rdb)
			logger.Success("Role cache connected to redis at " + cfg.Redis.Addr)
		}
	}
	resolver := role.NewResolver(backendClient, roleCache, cfg.RoleCacheTTL)

	events, unsubscribe := sessions.Subscribe()
	defer unsubscribe()
	go resolver.Watch(ctx, events)

	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       10 * 1024 * 1024,
		ErrorHandler:    errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(asyncLogger))

	routes.SetupRoutes(app, routes.Dependencies{
		Config:      cfg,
		Backend:     backendClient,
		Identity:    identity.NewClient(cfg.Identity.BaseURL, cfg.Identity.TokenURL, cfg.Identity.APIKey),
		Images:      imagehost.NewClient(cfg.Image.UploadURL, cfg.Image.APIKey),
		Sessions:    sessions,
		Roles:       resolver,
		Sealer:      sealer,
		Identities:  database.NewIdentityDirectory(db),
		AsyncLogger: asyncLogger,
	})

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Server shutdown failed", err)
		}
	}()

	addr := cfg.Host + ":" + cfg.Port
	logger.Success("Server is running on " + addr +
		"\n\t\t\t\t\t\t******************************************************************************************\n")
	if err := app.Listen(addr); err != nil {
		logger.Error("Server stopped", err)
	}
}

// errorHandler keeps unmatched routes and fiber errors in the usual envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		message = fe.Message
	} else {
		logger.Error("Unhandled error", err)
	}

	return c.Status(status).JSON(types.ApiResponse{
		Message: message,
		Status:  status,
	})
}
