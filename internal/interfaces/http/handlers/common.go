package handlers

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// writeAppError maps err to a status through the error code table.  Errors
// without an AppError in their chain, and any 5xx, are masked.
func writeAppError(w http.ResponseWriter, logger logging.Logger, err error) {
	var ae *errors.AppError
	if !stderrors.As(err, &ae) {
		logger.Error("unhandled error", logging.Err(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Code:    string(errors.ErrCodeInternal),
			Message: errors.DefaultMessageForCode(errors.ErrCodeInternal),
		})
		return
	}

	status := ae.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", logging.String("code", string(ae.Code)), logging.Err(err))
		writeJSON(w, status, ErrorResponse{
			Code:    string(ae.Code),
			Message: errors.DefaultMessageForCode(ae.Code),
		})
		return
	}
	writeJSON(w, status, ErrorResponse{
		Code:    string(ae.Code),
		Message: ae.Message,
		Detail:  ae.Detail,
	})
}

// queryInt reads an integer query parameter, falling back to def when absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.InvalidArgument(name + " must be an integer").WithDetail(fmt.Sprintf("%s=%q", name, v))
	}
	return n, nil
}

// requireQuery reads a mandatory query parameter.
func requireQuery(r *http.Request, name string) (string, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", errors.InvalidArgument(name + " query parameter is required")
	}
	return v, nil
}

//Personal.AI order the ending
