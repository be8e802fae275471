package dto

import "time"

// ErrorResponse is the standard JSON error body returned by the API.
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid start date"`
	ErrorDetails string    `json:"error_details,omitempty" example:"parsing time \"x\""`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse, copying err's text into ErrorDetails when present.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
