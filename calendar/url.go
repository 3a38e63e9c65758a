package calendar

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

const webcalScheme = "webcal://"

// ValidateCalendarURL normalizes and screens a calendar subscription URL.
// A webcal:// prefix is rewritten to https:// before anything else, since
// webcal is not a fetchable scheme. Only http and https pass, and hosts
// that point at loopback or RFC 1918 addresses are rejected so the fetcher
// cannot be used to probe internal network services.
func ValidateCalendarURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) >= len(webcalScheme) && strings.EqualFold(trimmed[:len(webcalScheme)], webcalScheme) {
		trimmed = "https://" + trimmed[len(webcalScheme):]
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", &InvalidURLError{Reason: "not a valid URL", Err: err}
	}

	switch u.Scheme {
	case "http", "https":
	default:
		return "", &InvalidURLError{Reason: fmt.Sprintf("scheme %q is not allowed, use http or https", u.Scheme)}
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", &InvalidURLError{Reason: "missing host"}
	}
	if host == "localhost" {
		return "", &InvalidURLError{Reason: "localhost is not allowed"}
	}
	if ip := net.ParseIP(host); ip != nil && (ip.IsLoopback() || ip.IsPrivate()) {
		return "", &InvalidURLError{Reason: fmt.Sprintf("host %s is a private or loopback address", host)}
	}

	return trimmed, nil
}
