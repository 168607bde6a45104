package shared

import (
	"encoding/json"
	"net/http"
)

// DecodeJSON decodes the request body into the given struct, rejecting
// bodies with fields the target does not know about.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
