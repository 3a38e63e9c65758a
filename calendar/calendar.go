package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	duration "github.com/ChannelMeter/iso8601duration"
	"github.com/apognu/gocal"
	ical "github.com/arran4/golang-ical"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	t "github.com/timeful/ics-server/types"
)

// upcomingWindow bounds recurrence expansion for UpcomingBusy.
const upcomingWindow = 12 * 30 * 24 * time.Hour

// WindowsTZMap translates the Windows-style TZIDs that Outlook exports emit
// into IANA zone names.
var WindowsTZMap = map[string]string{
	"Hawaii Standard Time":     "Pacific/Honolulu",
	"Alaskan Standard Time":    "America/Anchorage",
	"Alaskan Daylight Time":    "America/Anchorage",
	"SA Pacific Standard Time": "America/Bogota",
	"Pacific Standard Time":    "America/Los_Angeles",
	"Pacific Daylight Time":    "America/Los_Angeles",
	"Central Standard Time":    "America/Chicago",
	"Central Daylight Time":    "America/Chicago",
	"Mountain Standard Time":   "America/Denver",
	"Mountain Daylight Time":   "America/Denver",
	"Eastern Standard Time":    "America/New_York",
	"Eastern Daylight Time":    "America/New_York",
}

// gocal's TZID mapper is package-global, so it is installed exactly once
// here; setting it per call would race under concurrent requests.
func init() {
	gocal.SetTZMapper(func(s string) (*time.Location, error) {
		if name, ok := WindowsTZMap[s]; ok {
			return time.LoadLocation(name)
		}
		return time.LoadLocation(s)
	})
}

// Calendar implements the ICS interchange operations: fetching, busy
// extraction, invite generation and export helpers. It holds no state
// between calls beyond its logger.
type Calendar struct {
	Logger *zap.Logger
}

// DownloadCalendar validates url and fetches its content in a single GET.
// Every failure mode is logged and returned as a *FetchError.
func (c *Calendar) DownloadCalendar(ctx context.Context, url string) (string, error) {
	normalized, err := ValidateCalendarURL(url)
	if err != nil {
		c.Logger.Warn("calendar url rejected", zap.String("url", url), zap.Error(err))
		return "", &FetchError{Err: err}
	}

	client := resty.New()

	resp, err := client.R().SetContext(ctx).Get(normalized)
	if err != nil {
		c.Logger.Error("calendar fetch failed", zap.String("url", normalized), zap.Error(err))
		return "", &FetchError{Err: err}
	}
	if !resp.IsSuccess() {
		c.Logger.Error("calendar fetch returned non-success status",
			zap.String("url", normalized), zap.Int("status", resp.StatusCode()))
		return "", &FetchError{Err: fmt.Errorf("unexpected status %s", resp.Status())}
	}

	return resp.String(), nil
}

// ParseCalendar extracts busy intervals from raw ICS content. Each VEVENT
// yields at most one interval, in document order. All-day events and events
// marked TRANSP:TRANSPARENT do not block availability and are skipped.
func (c *Calendar) ParseCalendar(data string) ([]t.BusyInterval, error) {
	cal, err := ical.ParseCalendar(strings.NewReader(data))
	if err != nil {
		c.Logger.Error("ics parse failed", zap.Error(err))
		return nil, &ParseError{Err: err}
	}

	intervals := make([]t.BusyInterval, 0)
	for _, ve := range cal.Events() {
		if isAllDay(ve) {
			continue
		}
		if p := ve.GetProperty("TRANSP"); p != nil && strings.EqualFold(strings.TrimSpace(p.Value), "TRANSPARENT") {
			continue
		}

		start, err := ve.GetStartAt()
		if err != nil {
			c.Logger.Error("ics event has unreadable DTSTART", zap.Error(err))
			return nil, &ParseError{Err: err}
		}
		end, err := eventEnd(ve, start)
		if err != nil {
			c.Logger.Error("ics event has unreadable end boundary", zap.Error(err))
			return nil, &ParseError{Err: err}
		}

		summary := "Busy"
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil && strings.TrimSpace(p.Value) != "" {
			summary = p.Value
		}

		intervals = append(intervals, t.BusyInterval{
			Summary:   summary,
			StartDate: start,
			EndDate:   end,
		})
	}

	return intervals, nil
}

// UpcomingBusy parses ICS content with recurrence expansion over the next
// twelve months, resolving Windows-style TZIDs through WindowsTZMap.
func (c *Calendar) UpcomingBusy(data string) ([]t.Event, error) {
	start, end := time.Now(), time.Now().Add(upcomingWindow)

	parser := gocal.NewParser(strings.NewReader(data))
	parser.Start, parser.End = &start, &end
	if err := parser.Parse(); err != nil {
		c.Logger.Error("ics windowed parse failed", zap.Error(err))
		return nil, &ParseError{Err: err}
	}

	events := make([]t.Event, 0, len(parser.Events))
	for _, e := range parser.Events {
		if e.Start == nil || e.End == nil {
			continue
		}
		location := e.Location
		events = append(events, t.Event{
			Name:      e.Summary,
			StartTime: e.Start.Unix(),
			EndTime:   e.End.Unix(),
			Location:  &location,
		})
	}

	return events, nil
}

// NextEvent returns the earliest event starting after now, or nil when the
// list holds none.
func (c *Calendar) NextEvent(events []t.Event) *t.Event {
	now := time.Now().Unix()

	var next *t.Event
	for i := range events {
		if events[i].StartTime <= now {
			continue
		}
		if next == nil || events[i].StartTime < next.StartTime {
			next = &events[i]
		}
	}

	return next
}

// eventEnd resolves an event's end boundary. DTEND wins when present;
// without it, DURATION is added to the start, and an event carrying
// neither occupies no time beyond its start.
func eventEnd(ve *ical.VEvent, start time.Time) (time.Time, error) {
	if ve.GetProperty(ical.ComponentPropertyDtEnd) != nil {
		return ve.GetEndAt()
	}
	if p := ve.GetProperty("DURATION"); p != nil {
		d, err := duration.FromString(p.Value)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid DURATION %q: %w", p.Value, err)
		}
		return start.Add(d.ToDuration()), nil
	}
	return start, nil
}

// isAllDay reports whether either event boundary is date-only. VALUE=DATE
// or a value without a time-of-day component both count.
func isAllDay(ve *ical.VEvent) bool {
	for _, name := range []ical.ComponentProperty{ical.ComponentPropertyDtStart, ical.ComponentPropertyDtEnd} {
		p := ve.GetProperty(name)
		if p == nil {
			continue
		}
		if params := p.ICalParameters; params != nil {
			if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
				return true
			}
		}
		if !strings.Contains(p.Value, "T") {
			return true
		}
	}
	return false
}
