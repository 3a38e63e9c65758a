package calendar

import (
	"errors"
	"fmt"
	mrand "math/rand"
	"net/url"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	t "github.com/timeful/ics-server/types"
)

const (
	inviteProdID = "-//Timeful//Timeful App//EN"
	uidPrefix    = "timeful-"
	uidDomain    = "@timeful.app"

	// DefaultInviteFilename is used when the caller does not name the file.
	DefaultInviteFilename = "event.ics"

	// InviteContentType is the MIME type for serialized invites.
	InviteContentType = "text/calendar; charset=utf-8"

	// civilTimeLayout is the zone-tagged wall-clock form: the TZID parameter
	// carries the zone, the value itself is floating local time.
	civilTimeLayout = "20060102T150405"
)

// CreateInvite serializes draft as a single-VEVENT METHOD:REQUEST document.
//
// Without a timezone, start and end are written as absolute UTC instants.
// With one, the instants are converted to wall-clock time in that zone and
// tagged with a TZID parameter, which survives DST transitions in more
// consumers than a raw UTC timestamp does.
func (c *Calendar) CreateInvite(draft t.EventDraft) (string, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return "", errors.New("event title is required")
	}

	cal := ical.NewCalendar()
	cal.SetProductId(inviteProdID)
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ical.MethodRequest)

	event := cal.AddEvent(inviteUID())
	event.SetSummary(draft.Title)
	event.SetDescription(draft.Description)
	event.SetLocation(draft.Location)

	now := time.Now().UTC()
	event.SetDtStampTime(now)
	event.SetCreatedTime(now)
	event.SetModifiedAt(now)

	if draft.Timezone != "" {
		loc, err := time.LoadLocation(draft.Timezone)
		if err != nil {
			return "", fmt.Errorf("unknown timezone %q: %w", draft.Timezone, err)
		}
		tzid := &ical.KeyValues{Key: string(ical.ParameterTzid), Value: []string{draft.Timezone}}
		event.SetProperty(ical.ComponentPropertyDtStart, draft.StartDate.In(loc).Format(civilTimeLayout), tzid)
		event.SetProperty(ical.ComponentPropertyDtEnd, draft.EndDate.In(loc).Format(civilTimeLayout), tzid)
	} else {
		event.SetStartAt(draft.StartDate.UTC())
		event.SetEndAt(draft.EndDate.UTC())
	}

	for _, attendee := range draft.Attendees {
		if attendee == "" {
			continue
		}
		event.AddAttendee(attendee,
			ical.ParticipationRoleReqParticipant,
			ical.ParticipationStatusNeedsAction,
			// WithRSVP would emit the lowercase form; calendar consumers
			// expect the RFC 5545 boolean spelling.
			&ical.KeyValues{Key: string(ical.ParameterRsvp), Value: []string{"TRUE"}},
		)
	}

	return toCRLF(cal.Serialize()), nil
}

// toCRLF normalizes serialized output to CRLF content lines as RFC 5545
// requires; strict consumers reject LF-only documents.
func toCRLF(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}

// InviteFilename sanitizes a download filename, falling back to
// DefaultInviteFilename and ensuring an .ics extension.
func InviteFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultInviteFilename
	}
	if !strings.HasSuffix(strings.ToLower(name), ".ics") {
		name += ".ics"
	}
	return name
}

// MailtoLink builds a mailto: URI with the given subject and body. Mail
// clients cannot attach files through mailto, so the body tells the
// recipient to attach the downloaded invite themselves.
func MailtoLink(subject, body string) string {
	body += "\n\n(Please attach the downloaded .ics file)"
	return "mailto:?subject=" + encodeMailtoParam(subject) + "&body=" + encodeMailtoParam(body)
}

// encodeMailtoParam matches encodeURIComponent: spaces become %20, not +.
func encodeMailtoParam(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// inviteUID returns a namespaced globally unique identifier. A random UUID
// is preferred; if the runtime cannot supply one, a timestamp plus random
// suffix stands in.
func inviteUID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return uidPrefix + id.String() + uidDomain
	}
	return fmt.Sprintf("%s%d-%s%s", uidPrefix, time.Now().UnixMilli(), randomSuffix(9), uidDomain)
}

func randomSuffix(n int) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[mrand.Intn(len(alphabet))]
	}
	return string(b)
}
