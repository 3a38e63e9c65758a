package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/timeful/ics-server/calendar"
	t "github.com/timeful/ics-server/types"
)

// ParseHandler extracts busy intervals from ICS content supplied inline.
func (h Handlers) ParseHandler(c *fiber.Ctx) error {
	var req t.ParseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	intervals, err := h.Calendar.ParseCalendar(req.ICSContent)
	if err != nil {
		return h.sendError(c, err)
	}

	return c.JSON(t.BaseResponse[[]t.BusyInterval]{Data: intervals})
}

// BusyHandler fetches an ICS subscription URL and returns its busy
// intervals.
func (h Handlers) BusyHandler(c *fiber.Ctx) error {
	var req t.IcsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	h.Logger.Info("BusyHandler", zap.String("url", req.ICSUrl))

	data, err := h.Calendar.DownloadCalendar(c.UserContext(), req.ICSUrl)
	if err != nil {
		return h.sendError(c, err)
	}

	intervals, err := h.Calendar.ParseCalendar(data)
	if err != nil {
		return h.sendError(c, err)
	}

	return c.JSON(t.BaseResponse[[]t.BusyInterval]{Data: intervals})
}

// NextEventHandler fetches an ICS subscription URL and returns the next
// upcoming event, with recurrences expanded.
func (h Handlers) NextEventHandler(c *fiber.Ctx) error {
	var req t.IcsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	h.Logger.Info("NextEventHandler", zap.String("url", req.ICSUrl))

	data, err := h.Calendar.DownloadCalendar(c.UserContext(), req.ICSUrl)
	if err != nil {
		return h.sendError(c, err)
	}

	events, err := h.Calendar.UpcomingBusy(data)
	if err != nil {
		return h.sendError(c, err)
	}

	next := h.Calendar.NextEvent(events)
	if next == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No upcoming events"})
	}

	return c.JSON(t.BaseResponse[*t.Event]{Data: next})
}

// CreateEventHandler turns an event draft into a serialized invite plus the
// bits a client needs to deliver it: a filename and a mailto link.
func (h Handlers) CreateEventHandler(c *fiber.Ctx) error {
	var draft t.EventDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	ics, err := h.Calendar.CreateInvite(draft)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(t.BaseResponse[t.CreateInviteResponse]{Data: t.CreateInviteResponse{
		ICS:      ics,
		Filename: calendar.DefaultInviteFilename,
		Mailto:   calendar.MailtoLink("Invitation: "+draft.Title, "You are invited to "+draft.Title+"."),
	}})
}

// DownloadEventHandler is CreateEventHandler delivered as a file: the
// invite comes back as a text/calendar attachment.
func (h Handlers) DownloadEventHandler(c *fiber.Ctx) error {
	var draft t.EventDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	ics, err := h.Calendar.CreateInvite(draft)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	filename := calendar.InviteFilename(c.Query("filename"))
	c.Set(fiber.HeaderContentType, calendar.InviteContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendString(ics)
}
