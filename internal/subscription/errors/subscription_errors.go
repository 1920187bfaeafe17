package subscriptionerrors

import (
	"net/http"

	"go-gym/internal/shared/apperror"
)

var (
	ErrSubscriptionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Subscription not found",
		http.StatusNotFound,
	)

	ErrActiveSubscriptionExists = apperror.New(
		apperror.CodeConflict,
		"Member already has an active subscription",
		http.StatusConflict,
	)

	ErrInvalidSubscriptionID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid subscription ID",
		http.StatusBadRequest,
	)

	ErrInvalidMemberID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid member ID",
		http.StatusBadRequest,
	)
)
