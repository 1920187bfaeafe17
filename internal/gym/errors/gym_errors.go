package gymerrors

import (
	"net/http"

	"go-gym/internal/shared/apperror"
)

var (
	ErrGymNotFound = apperror.New(
		apperror.CodeNotFound,
		"Gym not found",
		http.StatusNotFound,
	)

	ErrNoCredential = apperror.New(
		apperror.CodeNotFound,
		"No QR code has been generated for this gym",
		http.StatusNotFound,
	)

	ErrCredentialMismatch = apperror.New(
		apperror.CodeInvalidCredential,
		"Invalid QR code, please scan your gym's official code",
		http.StatusForbidden,
	)

	ErrInvalidGymID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid gym ID",
		http.StatusBadRequest,
	)
)
