package response

import (
	"encoding/json"
	"net/http"
	"time"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody is the structured error payload: status code, timestamp, request
// path and detail message.
type ErrorBody struct {
	StatusCode int         `json:"status_code"`
	Timestamp  time.Time   `json:"timestamp"`
	Path       string      `json:"path,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(w http.ResponseWriter, r *http.Request, statusCode int, message string, details interface{}) {
	var path string
	if r != nil {
		path = r.URL.Path
	}
	JSON(w, statusCode, Response{
		Success: false,
		Message: message,
		Error: &ErrorBody{
			StatusCode: statusCode,
			Timestamp:  time.Now().UTC(),
			Path:       path,
			Details:    details,
		},
	})
}

func ValidationError(w http.ResponseWriter, r *http.Request, errors interface{}) {
	Error(w, r, http.StatusBadRequest, "Validation failed", errors)
}

func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	if message == "" {
		message = "Bad request"
	}
	Error(w, r, http.StatusBadRequest, message, nil)
}

func Unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Error(w, r, http.StatusUnauthorized, message, nil)
}

func Forbidden(w http.ResponseWriter, r *http.Request, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(w, r, http.StatusForbidden, message, nil)
}

func NotFound(w http.ResponseWriter, r *http.Request, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, r, http.StatusNotFound, message, nil)
}

func Conflict(w http.ResponseWriter, r *http.Request, message string) {
	if message == "" {
		message = "Conflict"
	}
	Error(w, r, http.StatusConflict, message, nil)
}

func InternalServerError(w http.ResponseWriter, r *http.Request, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, r, http.StatusInternalServerError, message, nil)
}
