package practicum

import "fmt"

// FetchError reports a failed status request: transport failure, non-200
// response or an undecodable body.
type FetchError struct {
	Op         string // "request", "status" or "decode"
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("homework api %s failed for %s: %v", e.Op, e.URL, e.Err)
	case e.Body != "":
		return fmt.Sprintf("homework api %s failed for %s: http %d: %s", e.Op, e.URL, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("homework api %s failed for %s: http %d", e.Op, e.URL, e.StatusCode)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }
