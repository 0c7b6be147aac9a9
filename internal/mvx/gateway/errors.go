package gateway

import "fmt"

// GatewayError reports a failed gateway request: transport, HTTP status or envelope error.
type GatewayError struct {
	Path       string
	URL        string
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("error when getting from gateway url %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("error when getting from gateway url %s: %v", e.URL, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
