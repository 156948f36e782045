package httputils

import (
	"encoding/json"
	"net/http"
	"zapzap/backend/api/response"
	"zapzap/backend/internal/pkg/apperr"

	log "github.com/sirupsen/logrus"
)

func ResponseError(w http.ResponseWriter, errorCode int, errorMessage string) {
	ResponseJSON(w, errorCode, response.ErrorResponse{
		Message: errorMessage,
	})
}

// ResponseAppError maps a service error onto the HTTP taxonomy. Untyped
// errors become opaque 500s, the cause goes to the log only.
func ResponseAppError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("internal error")
		ResponseError(w, status, "Internal Server Error")
		return
	}
	ResponseError(w, status, err.Error())
}

func ResponseJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Error("failed to encode JSON response")
	}
}
