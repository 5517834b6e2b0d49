package notification

import (
	"net/http"

	"github.com/Ejeanjules/capstone-project/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("NOTIFICATION")

// Error codes
var (
	CodeNotificationNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Notification not found")
	CodeNotRecipient         = ErrRegistry.Register("NOT_RECIPIENT", errx.TypeAuthorization, http.StatusForbidden, "Notification belongs to another user")
	CodeInvalidRequest       = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrNotificationNotFound() *errx.Error {
	return ErrRegistry.New(CodeNotificationNotFound)
}

func ErrNotRecipient() *errx.Error {
	return ErrRegistry.New(CodeNotRecipient)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
