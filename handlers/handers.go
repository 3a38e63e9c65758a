package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	c "github.com/timeful/ics-server/calendar"
	t "github.com/timeful/ics-server/types"
)

type Handlers struct {
	Logger       *zap.Logger
	Calendar     *c.Calendar
	ClientConfig t.ClientConfig
}

// sendError maps calendar errors onto HTTP statuses. Only the fixed
// user-safe messages leave the server; diagnostics were already logged at
// the point of failure.
func (h Handlers) sendError(ctx *fiber.Ctx, err error) error {
	var (
		urlErr   *c.InvalidURLError
		parseErr *c.ParseError
		fetchErr *c.FetchError
	)

	switch {
	case errors.As(err, &urlErr):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": urlErr.Error()})
	case errors.As(err, &parseErr):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": parseErr.Error()})
	case errors.As(err, &fetchErr):
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": fetchErr.Error()})
	}

	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}
