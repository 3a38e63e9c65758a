package calendar

// User-facing error strings. The underlying cause is logged and kept
// reachable through Unwrap, but Error() never exposes raw parser or
// transport detail to the client.
const (
	parseErrorMessage = "Failed to parse ICS file. Please ensure it's a valid calendar file."
	fetchErrorMessage = "Failed to fetch calendar from URL. Please check the URL and try again."
)

// ParseError reports malformed calendar input.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return parseErrorMessage }
func (e *ParseError) Unwrap() error { return e.Err }

// FetchError reports any failure while retrieving a calendar over HTTP:
// URL validation, transport errors and non-success statuses all collapse
// into it.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return fetchErrorMessage }
func (e *FetchError) Unwrap() error { return e.Err }

// InvalidURLError reports a calendar URL rejected by validation. Reason is
// safe to show to the caller.
type InvalidURLError struct {
	Reason string
	Err    error
}

func (e *InvalidURLError) Error() string { return "Invalid calendar URL: " + e.Reason }
func (e *InvalidURLError) Unwrap() error { return e.Err }
