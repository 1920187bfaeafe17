package attendanceerrors

import (
	"net/http"

	"go-gym/internal/shared/apperror"
)

var (
	ErrMemberNotInGym = apperror.New(
		apperror.CodeForbidden,
		"Member does not belong to this gym",
		http.StatusForbidden,
	)

	ErrInvalidCredential = apperror.New(
		apperror.CodeInvalidCredential,
		"Invalid QR code, please scan your gym's official code",
		http.StatusForbidden,
	)

	ErrStoreUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Check-in store is temporarily unavailable, please retry",
		http.StatusServiceUnavailable,
	)

	ErrInconsistentState = apperror.New(
		apperror.CodeInconsistentState,
		"Check-in state could not be verified, please contact staff",
		http.StatusInternalServerError,
	)

	ErrReconcileInProgress = apperror.New(
		apperror.CodeConflict,
		"A check-in for this member is already being processed",
		http.StatusConflict,
	)

	ErrInvalidMemberID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid member ID",
		http.StatusBadRequest,
	)
)
