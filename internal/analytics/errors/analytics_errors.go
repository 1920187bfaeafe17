package analyticserrors

import (
	"net/http"

	"go-gym/internal/shared/apperror"
)

var ErrInvalidMemberID = apperror.New(
	apperror.CodeInvalidInput,
	"Invalid member ID",
	http.StatusBadRequest,
)
