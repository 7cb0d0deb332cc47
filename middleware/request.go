package middleware

import (
	"strconv"
	"time"

	"parcel-delivery/constants"
	"parcel-delivery/services/metrics"
	"parcel-delivery/types"
	"parcel-delivery/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestID reuses a well-formed incoming X-Request-ID or mints one.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(constants.HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Locals(constants.LocalsRequestID, id)
		c.Set(constants.HeaderRequestID, id)
		return c.Next()
	}
}

// RequestLogSink receives one sanitised entry per request.
type RequestLogSink interface {
	Log(entry types.LogEntry)
}

// RequestLogger records duration metrics and queues the sanitised request log.
func RequestLogger(sink RequestLogSink) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// let the app's error handler write the response before we read it
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		status := c.Response().StatusCode()
		metrics.RequestDuration.
			WithLabelValues(c.Method(), route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())

		if sink != nil && route != "/metrics" && route != "/healthz" {
			sink.Log(utils.CreateSanitizedLogEntry(c))
		}
		return nil
	}
}
