package handler

import (
	"encoding/json"
	"net/http"
)

// Envelope is the fixed response contract: every endpoint, success or
// failure, returns this shape.
type Envelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Errors  interface{} `json:"errors"`
}

func respondSuccess(w http.ResponseWriter, code int, message string, data interface{}) {
	writeJSON(w, code, Envelope{Status: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, code int, message string, errs interface{}) {
	writeJSON(w, code, Envelope{Status: false, Message: message, Errors: errs})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
