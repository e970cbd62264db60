package openai

import "fmt"

// StatusError is returned when the API answers with a non-success status.
// Body holds the response body verbatim.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d", e.StatusCode)
	}
	return fmt.Sprintf("Request failed with status code %s:\n\n%s", status, e.Body)
}

// APIError is an error object delivered inside the event stream.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *APIError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("API error: %s", e.Message)
	}
	return fmt.Sprintf("API error [%s]: %s", e.Type, e.Message)
}
