package domain

import (
	"errors"
	"fmt"
)

// TransportError is the single failure shape of the content API client.
// Code is the HTTP status when one was received, zero otherwise.
type TransportError struct {
	Code    int
	Message string
}

func (e *TransportError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("(%d) %s", e.Code, e.Message)
	}
	return e.Message
}

// ErrorMessage renders any fetch failure the way it is shown to the user.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Unknown error"
}
