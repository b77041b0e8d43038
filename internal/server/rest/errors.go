package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// statusFor maps workflow errors to HTTP status codes. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidEmail),
		errors.Is(err, common.ErrInvalidNickname),
		errors.Is(err, common.ErrInvalidPassword),
		errors.Is(err, common.ErrInvalidIdentifier),
		errors.Is(err, common.ErrInvalidPagination):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrEmailTaken),
		errors.Is(err, common.ErrNicknameTaken),
		errors.Is(err, common.ErrConflictOnConfirm):
		return http.StatusConflict
	case errors.Is(err, common.ErrPendingNotFound),
		errors.Is(err, common.ErrNicknameNotFound),
		errors.Is(err, common.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrExpiredToken),
		errors.Is(err, common.ErrMalformedToken):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrNotificationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err as {"detail": ...}. Internal failures get a generic
// message; their cause is logged by the service.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)

	detail := err.Error()
	if status == http.StatusInternalServerError {
		detail = common.ErrorInternal.Error()
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	writeJSON(w, status, errorResponse{Detail: detail})
}
