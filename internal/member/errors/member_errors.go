package membererrors

import (
	"net/http"

	"go-gym/internal/shared/apperror"
)

var (
	ErrMemberNotFound = apperror.New(
		apperror.CodeNotFound,
		"Member not found",
		http.StatusNotFound,
	)

	ErrMemberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Member with the same email already exists",
		http.StatusConflict,
	)

	ErrInvalidMemberID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid member ID",
		http.StatusBadRequest,
	)

	ErrInvalidGymID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid gym ID",
		http.StatusBadRequest,
	)
)
