// Package httpjson holds the small JSON response helpers shared by the
// feature handlers. Every API response carries the status/code envelope so
// callers can branch on machine-usable fields instead of parsing messages.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// Statuses used in response envelopes.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Write encodes v as JSON with the given HTTP status code.
func Write(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Envelope is the minimal response body for operations without a payload.
type Envelope struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK writes a success envelope with the given code and message.
func OK(w http.ResponseWriter, code int, message string) {
	Write(w, code, Envelope{Status: StatusSuccess, Code: code, Message: message})
}

// Fail writes a failure envelope with the given code and message.
func Fail(w http.ResponseWriter, code int, message string) {
	Write(w, code, Envelope{Status: StatusFailed, Code: code, Message: message})
}

// FailErr writes a 500 failure envelope carrying the error text, for
// unexpected storage or internal errors.
func FailErr(w http.ResponseWriter, err error) {
	Write(w, http.StatusInternalServerError, Envelope{
		Status:  StatusFailed,
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
		Error:   err.Error(),
	})
}
