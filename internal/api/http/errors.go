package httpapi

import (
	"errors"
	"net/http"

	"github.com/prashana14/StudyReuse-sub000/internal/domain/apperrors"
)

// respondAppError maps error kinds to HTTP statuses.
func respondAppError(w http.ResponseWriter, err error) {
	var e *apperrors.Error
	if errors.As(err, &e) {
		respondError(w, statusForKind(e.Kind), string(e.Kind), e.Message)
		return
	}
	respondError(w, http.StatusInternalServerError, string(apperrors.KindInternal), err.Error())
}

func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindInvalidOperation:
		return http.StatusBadRequest
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
