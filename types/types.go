package types

import "time"

// BusyInterval is one extracted calendar occupancy window. All-day and
// transparent events are filtered out at parse time, so an interval always
// blocks availability.
type BusyInterval struct {
	Summary   string    `json:"summary"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// EventDraft is the input to invite generation. StartDate and EndDate are
// absolute instants; when Timezone is set the generated document expresses
// them as wall-clock time in that zone instead of UTC.
type EventDraft struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Attendees   []string  `json:"attendees"`
	Timezone    string    `json:"timezone"`
}

// Event is a single occurrence inside the upcoming-events window, with
// Unix-epoch boundaries.
type Event struct {
	Name      string  `json:"name"`
	StartTime int64   `json:"startTime"`
	EndTime   int64   `json:"endTime"`
	Location  *string `json:"location"`
}

type BaseResponse[t any] struct {
	Data    t      `json:"data"`
	Message string `json:"message,omitempty"`
}

type IcsRequest struct {
	ICSUrl string `json:"icsUrl"`
}

type ParseRequest struct {
	ICSContent string `json:"icsContent"`
}

type CreateInviteResponse struct {
	ICS      string `json:"ics"`
	Filename string `json:"filename"`
	Mailto   string `json:"mailto"`
}

// ClientConfig is the public runtime configuration handed to the web client
// at boot. Only keys that are safe to expose belong here.
type ClientConfig struct {
	GoogleClientID    string `json:"googleClientId" yaml:"google_client_id"`
	MicrosoftClientID string `json:"microsoftClientId" yaml:"microsoft_client_id"`
	PosthogAPIKey     string `json:"posthogApiKey" yaml:"posthog_api_key"`
	MapboxAPIKey      string `json:"mapboxApiKey" yaml:"mapbox_api_key"`
	DisableAnalytics  bool   `json:"disableAnalytics" yaml:"disable_analytics"`
}
