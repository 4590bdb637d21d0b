package response

import (
	"encoding/json"
	"net/http"
	"time"
)

// Envelope is the wire format shared by every endpoint.
type Envelope struct {
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	StatusCode int         `json:"statusCode"`
	TimeStamp  string      `json:"timeStamp"`
	Success    bool        `json:"success"`
}

// JSON sends an enveloped JSON response.
func JSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(Envelope{
		Message:    message,
		Data:       data,
		StatusCode: status,
		TimeStamp:  time.Now().UTC().Format(time.RFC3339),
		Success:    status >= 200 && status < 300,
	})
}

// OK sends a 200 response.
func OK(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusOK, message, data)
}

// Created sends a 201 response.
func Created(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusCreated, message, data)
}

// BadRequest sends a 400 response.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, message, nil)
}

// Unauthorized sends a 401 response.
func Unauthorized(w http.ResponseWriter, message string) {
	JSON(w, http.StatusUnauthorized, message, nil)
}

// Forbidden sends a 403 response.
func Forbidden(w http.ResponseWriter, message string) {
	JSON(w, http.StatusForbidden, message, nil)
}

// NotFound sends a 404 response.
func NotFound(w http.ResponseWriter, message string) {
	JSON(w, http.StatusNotFound, message, nil)
}

// Conflict sends a 409 response.
func Conflict(w http.ResponseWriter, message string) {
	JSON(w, http.StatusConflict, message, nil)
}

// InternalError sends a 500 response.
func InternalError(w http.ResponseWriter, message string) {
	JSON(w, http.StatusInternalServerError, message, nil)
}
