package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (h Handlers) RootHandler(c *fiber.Ctx) error {
	h.Logger.Info("RootHandler", zap.String("ip", c.IP()))
	return c.SendString("Welcome to the Timeful ICS Server!")
}

// ConfigHandler serves the public runtime configuration the web client
// reads at boot.
func (h Handlers) ConfigHandler(c *fiber.Ctx) error {
	return c.JSON(h.ClientConfig)
}
