package rpc

import (
	"errors"

	"connectrpc.com/connect"
)

// Structured reports whether err is a structured RPC error, i.e. one that
// carries a numeric code assigned by the server. Transport failures (refused
// connections, timeouts, dead proxies) are not structured: Connect wraps
// those in CodeUnavailable or leaves them bare, and the server never assigns
// that code, so they are treated as generic.
func Structured(err error) (*connect.Error, bool) {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return nil, false
	}
	if connectErr.Code() == connect.CodeUnavailable {
		return nil, false
	}
	return connectErr, true
}

// UserMessage renders err for a toast: "{code}: {message}" for structured
// errors, the bare message otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if connectErr, ok := Structured(err); ok {
		return connectErr.Code().String() + ": " + connectErr.Message()
	}
	return err.Error()
}
