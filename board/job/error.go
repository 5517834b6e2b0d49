package job

import (
	"net/http"

	"github.com/Ejeanjules/capstone-project/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeJobAlreadyInactive = ErrRegistry.Register("ALREADY_INACTIVE", errx.TypeBusiness, http.StatusConflict, "Job is already inactive")
	CodeJobNotAccepting    = ErrRegistry.Register("NOT_ACCEPTING", errx.TypeBusiness, http.StatusForbidden, "Job is not accepting applications")
	CodeNotJobOwner        = ErrRegistry.Register("NOT_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Only the job owner can perform this action")
	CodeInvalidJobType     = ErrRegistry.Register("INVALID_TYPE", errx.TypeValidation, http.StatusBadRequest, "Invalid job type")
	CodeInvalidRequest     = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeValidationFailed   = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Request validation failed")
	CodeDatabaseError      = ErrRegistry.Register("DATABASE_ERROR", errx.TypeInternal, http.StatusInternalServerError, "Database operation failed")
)

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrJobAlreadyInactive() *errx.Error {
	return ErrRegistry.New(CodeJobAlreadyInactive)
}

func ErrJobNotAccepting() *errx.Error {
	return ErrRegistry.New(CodeJobNotAccepting)
}

func ErrNotJobOwner() *errx.Error {
	return ErrRegistry.New(CodeNotJobOwner)
}

func ErrInvalidJobType() *errx.Error {
	return ErrRegistry.New(CodeInvalidJobType)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeValidationFailed)
}

func ErrDatabaseError(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeDatabaseError, cause)
}
