package relaysdk

import "fmt"

// APIError is a non-2xx response from the relay, decoded from either the
// error or message envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("relay returned %d: %s", e.StatusCode, e.Message)
}
