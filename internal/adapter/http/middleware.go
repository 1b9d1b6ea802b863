package http

import (
	"time"

	"resume-builder/internal/adapter/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	localRequestID = "request_id"
	localToken     = "token"
)

// RequestLogger logs one line per request and tags it with a request id,
// taken from X-Request-Id when the client sent one.
func RequestLogger(l *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		reqID := c.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("X-Request-Id", reqID)
		c.Locals(localRequestID, reqID)

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		entry := l.WithFields(logrus.Fields{
			"request_id": reqID,
			"method":     c.Method(),
			"path":       c.Route().Path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.IP(),
		})

		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
		return nil
	}
}

// BearerToken stores the bearer token of the request, if any, for the
// handlers. Requests without one are anonymous and still allowed.
func BearerToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tok, ok := auth.BearerToken(c.Get(fiber.HeaderAuthorization)); ok {
			c.Locals(localToken, tok)
		}
		return c.Next()
	}
}

func tokenOf(c *fiber.Ctx) string {
	tok, _ := c.Locals(localToken).(string)
	return tok
}
