package response

import (
	"encoding/json"
	"net/http"
)

// Hints telling the client what to do after a failed request.
const (
	NextActionNone            = ""
	NextActionFixInput        = "fix_input"
	NextActionRetry           = "retry"
	NextActionRetryLater      = "retry_later"
	NextActionReselectSlot    = "reselect_slot"
	NextActionResetSelection  = "reset_selection"
	NextActionStartSession    = "start_session"
	NextActionCheckConfig     = "check_configuration"
	NextActionContactPractice = "contact_practice"
)

type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      interface{} `json:"error,omitempty"`
	NextAction string      `json:"next_action,omitempty"`
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

func Error(w http.ResponseWriter, statusCode int, message string, err interface{}, nextAction string) {
	JSON(w, statusCode, Response{
		Success:    false,
		Message:    message,
		Error:      err,
		NextAction: nextAction,
	})
}

// Failure reports an error that still carries a payload, such as a rejected booking.
func Failure(w http.ResponseWriter, statusCode int, message string, data interface{}, nextAction string) {
	JSON(w, statusCode, Response{
		Success:    false,
		Message:    message,
		Data:       data,
		NextAction: nextAction,
	})
}

func ValidationError(w http.ResponseWriter, errors interface{}) {
	JSON(w, http.StatusBadRequest, Response{
		Success:    false,
		Message:    "Validation failed",
		Error:      errors,
		NextAction: NextActionFixInput,
	})
}

func BadRequest(w http.ResponseWriter, message, nextAction string) {
	if message == "" {
		message = "Bad request"
	}
	Error(w, http.StatusBadRequest, message, nil, nextAction)
}

func NotFound(w http.ResponseWriter, message, nextAction string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, message, nil, nextAction)
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, message, nil, NextActionRetryLater)
}

func BadGateway(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Upstream service unavailable"
	}
	Error(w, http.StatusBadGateway, message, nil, NextActionRetry)
}

func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, "Too many requests", nil, NextActionRetryLater)
}
