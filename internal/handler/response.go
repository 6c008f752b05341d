package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/cipherloom-go/internal/errors"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

// RespondError writes a JSON error response with logging. Client errors are
// logged at warn level, everything else at error level.
func RespondError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.NewInternalWithCause("Internal server error", err)
	}

	ev := logger.Error()
	if appErr.HTTPStatus < http.StatusInternalServerError {
		ev = logger.Warn()
	}
	if appErr.Cause != nil {
		ev = ev.Err(appErr.Cause)
	}
	ev.Int("code", int(appErr.Code)).Msg(appErr.Message)

	RespondJSON(w, appErr.HTTPStatus, APIResponse{
		Code: int(appErr.Code),
		Msg:  appErr.Error(),
	})
}

// RespondSuccess writes a JSON success response
func RespondSuccess(w http.ResponseWriter, data interface{}) {
	RespondJSON(w, http.StatusOK, APIResponse{
		Code: 0,
		Data: data,
	})
}

// RespondJSON writes a raw JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
