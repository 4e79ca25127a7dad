package handlers

import (
	"encoding/json"
	"net/http"
)

const maxBodyBytes = 1 << 20

// decodeJSON decodes a size-limited request body into dst.
// Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
