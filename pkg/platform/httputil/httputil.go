// Package httputil centralizes JSON response writing for the registry API
// surface. Every response uses the uniform envelope
// {success: bool, data?, message?} so clients can decode failures the same
// way regardless of endpoint.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "partnerdesk/pkg/domain-errors"
)

// Envelope is the wire shape shared by all registry endpoints.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Status  string          `json:"status,omitempty"`
	Count   int             `json:"count,omitempty"`
}

// WriteJSON writes v with the given status code. Encoding failures are
// unrecoverable at this point; the status line is already committed.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a success envelope carrying data.
func WriteSuccess(w http.ResponseWriter, status int, data any, message string) {
	raw, err := json.Marshal(data)
	if err != nil {
		WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "encode response"))
		return
	}
	WriteJSON(w, status, Envelope{Success: true, Data: raw, Message: message})
}

// WriteMessage writes a success envelope with no data payload.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Success: true, Message: message})
}

// WriteFailure writes a failure envelope with an explicit status and message.
func WriteFailure(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Success: false, Message: message})
}

// WriteError translates a domain error into a failure envelope. Internal
// errors are masked with a generic message so infrastructure details never
// reach clients; any other code surfaces its domain message verbatim.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	message := dErrors.MessageOf(err)
	if code == dErrors.CodeInternal {
		message = "something went wrong"
	}
	WriteFailure(w, dErrors.ToHTTPStatus(code), message)
}
