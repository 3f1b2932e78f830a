// Package delivery sends generated documents and status messages to users
// over the Telegram Bot API.
package delivery

import "fmt"

// DeliveryError represents a failed send to Telegram.
type DeliveryError struct {
	Message string
	Cause   error
}

func (e *DeliveryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("delivery error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("delivery error: %s", e.Message)
}

func (e *DeliveryError) Unwrap() error {
	return e.Cause
}
