package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/hypercuboid/pkg/errors"
)

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// statusFor maps an error to its HTTP status and response code.
func statusFor(err error) (int, errors.Code) {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, errors.ErrCodeInvalidInput
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, errors.ErrCodeInternal
	case stderrors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, errors.ErrCodeInternal
	}

	code := errors.GetCode(err)
	switch {
	case errors.IsContractViolation(err), code == errors.ErrCodeCellLimit:
		return http.StatusUnprocessableEntity, code
	case code == errors.ErrCodeInvalidInput, code == errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest, code
	case code == "":
		return http.StatusInternalServerError, errors.ErrCodeInternal
	}
	return http.StatusInternalServerError, code
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("internal error", "route", r.URL.Path, "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
