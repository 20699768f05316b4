package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"corecrew/internal/transport/http/api"
)

// DecodeJSON decodes the request body into dst, rejecting unknown fields.
// It writes the failure response itself and reports whether decoding worked.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any, requestID string) bool {
	return decode(w, r, dst, requestID, false)
}

// DecodeOptionalJSON is DecodeJSON for endpoints whose body may be omitted.
// An empty body leaves dst untouched, whatever Content-Length was declared.
func DecodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst any, requestID string) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return true
	}
	return decode(w, r, dst, requestID, true)
}

func decode(w http.ResponseWriter, r *http.Request, dst any, requestID string, optional bool) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
			return false
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return false
	}
	return true
}

// IntParam parses a positive integer URL parameter.
func IntParam(w http.ResponseWriter, r *http.Request, name, requestID string) (int, bool) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || value <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_id", name+" must be a positive integer", requestID)
		return 0, false
	}
	return value, true
}
