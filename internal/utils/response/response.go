package response

import (
	"encoding/json"
	"net/http"

	"github.com/SnapFood-Technologies/waveorder-catalog/internal/errors"
)

// ErrorResponse is the storefront error body. The message is the only
// field exposed; codes and causes stay in the logs.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJson(w http.ResponseWriter, statusCode int, data any) error {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(data)
}

// Error maps an AppError to its status and message; anything else
// becomes a generic 500 so internals never leak to the storefront.
func Error(w http.ResponseWriter, err error) {

	if appErr, ok := errors.IsAppError(err); ok {
		WriteJson(w, appErr.StatusCode, ErrorResponse{Error: appErr.Message})
		return
	}

	WriteJson(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}
