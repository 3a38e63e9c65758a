package calendar

import (
	"errors"
	"testing"
)

func TestValidateCalendarURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"Plain https", "https://example.com/cal.ics", "https://example.com/cal.ics", false},
		{"Plain http", "http://example.com/cal.ics", "http://example.com/cal.ics", false},
		{"Webcal rewritten", "webcal://example.com/cal.ics", "https://example.com/cal.ics", false},
		{"Webcal uppercase", "WEBCAL://example.com/cal.ics", "https://example.com/cal.ics", false},
		{"Surrounding whitespace", "  https://example.com/cal.ics \n", "https://example.com/cal.ics", false},
		{"FTP scheme", "ftp://example.com/cal.ics", "", true},
		{"File scheme", "file:///etc/passwd", "", true},
		{"No scheme", "example.com/cal.ics", "", true},
		{"Localhost", "https://localhost/cal.ics", "", true},
		{"Localhost with port", "https://localhost:8080/cal.ics", "", true},
		{"Loopback", "https://127.0.0.1/cal.ics", "", true},
		{"Private 192.168", "https://192.168.1.5/cal.ics", "", true},
		{"Private 10", "https://10.0.0.1/cal.ics", "", true},
		{"Private 172.16", "https://172.16.0.1/cal.ics", "", true},
		{"Private 172.31", "https://172.31.255.1/cal.ics", "", true},
		{"Public 172.32 allowed", "https://172.32.0.1/cal.ics", "https://172.32.0.1/cal.ics", false},
		{"Webcal to private still rejected", "webcal://192.168.1.5/cal.ics", "", true},
		{"Empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateCalendarURL(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateCalendarURL(%q) = %q, want error", tt.url, got)
				}
				var urlErr *InvalidURLError
				if !errors.As(err, &urlErr) {
					t.Errorf("ValidateCalendarURL(%q) error type = %T, want *InvalidURLError", tt.url, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateCalendarURL(%q) returned error: %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("ValidateCalendarURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
