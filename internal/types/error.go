package types

import "fmt"

// ApiError is a domain error carrying the HTTP status code it should be
// answered with. The central Fiber error handler turns it into the JSON
// error envelope.
type ApiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NewApiError builds an ApiError.
func NewApiError(code int, message, errType string) *ApiError {
	return &ApiError{Code: code, Message: message, Type: errType}
}
