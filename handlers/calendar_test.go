package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	c "github.com/timeful/ics-server/calendar"
	t "github.com/timeful/ics-server/types"
)

func testApp() *fiber.App {
	h := Handlers{
		Logger:   zap.NewNop(),
		Calendar: &c.Calendar{Logger: zap.NewNop()},
		ClientConfig: t.ClientConfig{
			GoogleClientID: "google-id",
		},
	}

	app := fiber.New()
	app.Get("/", h.RootHandler)
	app.Get("/config", h.ConfigHandler)
	app.Post("/ics/parse", h.ParseHandler)
	app.Post("/ics/busy", h.BusyHandler)
	app.Post("/ics/create", h.CreateEventHandler)
	app.Post("/ics/download", h.DownloadEventHandler)
	return app
}

func postJSON(app *fiber.App, path, body string) (int, []byte, error) {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	return resp.StatusCode, payload, err
}

func TestParseHandler(tt *testing.T) {
	app := testApp()

	doc := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"UID:one@test",
		"SUMMARY:Standup",
		"DTSTART:20250415T090000Z",
		"DTEND:20250415T093000Z",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	body, err := json.Marshal(t.ParseRequest{ICSContent: doc})
	if err != nil {
		tt.Fatal(err)
	}

	status, payload, err := postJSON(app, "/ics/parse", string(body))
	if err != nil {
		tt.Fatalf("app.Test returned error: %v", err)
	}
	if status != fiber.StatusOK {
		tt.Fatalf("status = %d, want 200: %s", status, payload)
	}

	var resp t.BaseResponse[[]t.BusyInterval]
	if err := json.Unmarshal(payload, &resp); err != nil {
		tt.Fatalf("response is not valid JSON: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Summary != "Standup" {
		tt.Errorf("unexpected intervals: %+v", resp.Data)
	}
}

func TestParseHandlerMalformed(tt *testing.T) {
	app := testApp()

	status, payload, err := postJSON(app, "/ics/parse", `{"icsContent":"not a calendar"}`)
	if err != nil {
		tt.Fatalf("app.Test returned error: %v", err)
	}
	if status != fiber.StatusBadRequest {
		tt.Fatalf("status = %d, want 400", status)
	}
	if !strings.Contains(string(payload), "Failed to parse ICS file") {
		tt.Errorf("body should carry the user-safe parse message: %s", payload)
	}
}

func TestBusyHandlerRejectsPrivateURL(tt *testing.T) {
	app := testApp()

	status, payload, err := postJSON(app, "/ics/busy", `{"icsUrl":"https://192.168.1.5/cal.ics"}`)
	if err != nil {
		tt.Fatalf("app.Test returned error: %v", err)
	}
	if status != fiber.StatusBadRequest {
		tt.Fatalf("status = %d, want 400: %s", status, payload)
	}
	if !strings.Contains(string(payload), "Invalid calendar URL") {
		tt.Errorf("body should name the URL rejection: %s", payload)
	}
}

func TestCreateEventHandler(tt *testing.T) {
	app := testApp()

	body := `{"title":"Planning","startDate":"2025-04-15T09:00:00Z","endDate":"2025-04-15T10:00:00Z","attendees":["a@x.com"]}`
	status, payload, err := postJSON(app, "/ics/create", body)
	if err != nil {
		tt.Fatalf("app.Test returned error: %v", err)
	}
	if status != fiber.StatusOK {
		tt.Fatalf("status = %d, want 200: %s", status, payload)
	}

	var resp t.BaseResponse[t.CreateInviteResponse]
	if err := json.Unmarshal(payload, &resp); err != nil {
		tt.Fatalf("response is not valid JSON: %v", err)
	}
	if !strings.Contains(resp.Data.ICS, "SUMMARY:Planning") {
		tt.Errorf("invite is missing the summary: %s", resp.Data.ICS)
	}
	if resp.Data.Filename != "event.ics" {
		tt.Errorf("Filename = %q, want event.ics", resp.Data.Filename)
	}
	if !strings.HasPrefix(resp.Data.Mailto, "mailto:?subject=") {
		tt.Errorf("Mailto = %q", resp.Data.Mailto)
	}
}

func TestDownloadEventHandler(tt *testing.T) {
	app := testApp()

	body := `{"title":"Planning","startDate":"2025-04-15T09:00:00Z","endDate":"2025-04-15T10:00:00Z"}`
	req := httptest.NewRequest("POST", "/ics/download", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		tt.Fatalf("app.Test returned error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		tt.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get(fiber.HeaderContentType); !strings.HasPrefix(got, "text/calendar") {
		tt.Errorf("Content-Type = %q, want text/calendar", got)
	}
	if got := resp.Header.Get(fiber.HeaderContentDisposition); !strings.Contains(got, `filename="event.ics"`) {
		tt.Errorf("Content-Disposition = %q", got)
	}

	payload, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(payload), "BEGIN:VCALENDAR") {
		tt.Errorf("body is not a calendar document: %s", payload)
	}
}

func TestConfigHandler(tt *testing.T) {
	app := testApp()

	req := httptest.NewRequest("GET", "/config", nil)
	resp, err := app.Test(req)
	if err != nil {
		tt.Fatalf("app.Test returned error: %v", err)
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(resp.Body)
	var cfg t.ClientConfig
	if err := json.Unmarshal(payload, &cfg); err != nil {
		tt.Fatalf("response is not valid JSON: %v", err)
	}
	if cfg.GoogleClientID != "google-id" {
		tt.Errorf("GoogleClientID = %q, want %q", cfg.GoogleClientID, "google-id")
	}
}
