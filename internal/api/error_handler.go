package api

import (
	stderrors "errors"
	"net/http"

	"github.com/vytor/pharmaflash/internal/errors"
	"github.com/vytor/pharmaflash/internal/logger"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(appErr *errors.AppError) map[string]errorPayload {
	return map[string]errorPayload{"error": {Code: appErr.Code, Message: appErr.Message}}
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.NewInternalError(err)
	}

	switch {
	case appErr.Status >= 500:
		log.Error("server error: %v", appErr)
	case appErr.Status >= 400:
		log.Warn("client error: %v", appErr)
	default:
		log.Debug("error: %v", appErr)
	}

	writeJSON(w, r, appErr.Status, errorBody(appErr))
}
