package toss

import "fmt"

// Error is a non-2xx answer from the gateway.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("toss: %d %s: %s", e.Status, e.Code, e.Message)
}

// GatewayMessage returns the human readable reason reported by the gateway.
func (e *Error) GatewayMessage() string {
	return e.Message
}
