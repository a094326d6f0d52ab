package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError writes an error in the response envelope shape with the
// correct Content-Type.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  false,
		"message": msg,
		"data":    nil,
		"errors":  nil,
	})
}
