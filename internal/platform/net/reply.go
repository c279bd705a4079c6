package net

import (
	"encoding/json"
	"net/http"

	perr "gymdesk/internal/platform/errors"
)

// Envelope is the JSON body every endpoint answers with
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Reply wraps data in a success envelope
func Reply(status int, data any, requestID string) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  requestID,
		Data:       data,
	}
}

// ErrorReply maps err onto its status and error envelope. Causes are never
// exposed, only the error's own message
func ErrorReply(err error, requestID string) (int, Envelope) {
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	env := Reply(status, nil, requestID)
	env.Code, env.Error, env.Field = w.Code, w.Message, w.Field
	return status, env
}

// WriteJSON writes v as the response body with status
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the error envelope for err
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, env := ErrorReply(err, RequestID(r.Context()))
	WriteJSON(w, status, env)
}
