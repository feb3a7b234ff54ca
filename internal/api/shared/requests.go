package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Shared validator instance; validator.Validate is safe for concurrent use.
var validate = validator.New()

// DecodeJSON decodes the request body into dst.
func DecodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// ValidateRequest validates a request struct. A type carrying its own
// Validate method takes precedence over struct tags.
func ValidateRequest(req interface{}) error {
	if v, ok := req.(interface{ Validate() error }); ok {
		return v.Validate()
	}

	return validate.Struct(req)
}
