package application

import (
	"net/http"

	"github.com/Ejeanjules/capstone-project/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("APPLICATION")

// Error codes
var (
	CodeApplicationNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Application not found")
	CodeApplicationAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "You have already applied to this job")
	CodeJobNotAccepting          = ErrRegistry.Register("JOB_NOT_ACCEPTING", errx.TypeBusiness, http.StatusForbidden, "Job is not accepting applications")
	CodeCannotApplyOwnJob        = ErrRegistry.Register("CANNOT_APPLY_OWN_JOB", errx.TypeBusiness, http.StatusForbidden, "You cannot apply to your own job")
	CodeInsufficientPermissions  = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeInvalidStatus            = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid application status")
	CodeStatusUnchanged          = ErrRegistry.Register("STATUS_UNCHANGED", errx.TypeBusiness, http.StatusBadRequest, "Application already has this status")
	CodeResumeNotFound           = ErrRegistry.Register("RESUME_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "No resume file attached to this application")
	CodeAnalysisNotFound         = ErrRegistry.Register("ANALYSIS_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "No analysis available for this application")
	CodeAnalysisFailed           = ErrRegistry.Register("ANALYSIS_FAILED", errx.TypeBusiness, http.StatusUnprocessableEntity, "Resume analysis failed")
	CodeFileSizeTooLarge         = ErrRegistry.Register("FILE_SIZE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "File size exceeds maximum allowed")
	CodeInvalidFileType          = ErrRegistry.Register("INVALID_FILE_TYPE", errx.TypeValidation, http.StatusBadRequest, "Invalid resume file type")
	CodeInvalidRequest           = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeStorageError             = ErrRegistry.Register("STORAGE_ERROR", errx.TypeExternal, http.StatusBadGateway, "File storage operation failed")
	CodeQueueError               = ErrRegistry.Register("QUEUE_ERROR", errx.TypeExternal, http.StatusBadGateway, "Failed to enqueue analysis job")
)

// Helper functions
func ErrApplicationNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotFound)
}

func ErrApplicationAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeApplicationAlreadyExists)
}

func ErrJobNotAccepting() *errx.Error {
	return ErrRegistry.New(CodeJobNotAccepting)
}

func ErrCannotApplyOwnJob() *errx.Error {
	return ErrRegistry.New(CodeCannotApplyOwnJob)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrStatusUnchanged() *errx.Error {
	return ErrRegistry.New(CodeStatusUnchanged)
}

func ErrResumeNotFound() *errx.Error {
	return ErrRegistry.New(CodeResumeNotFound)
}

func ErrAnalysisNotFound() *errx.Error {
	return ErrRegistry.New(CodeAnalysisNotFound)
}

func ErrAnalysisFailed() *errx.Error {
	return ErrRegistry.New(CodeAnalysisFailed)
}

func ErrFileSizeTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileSizeTooLarge)
}

func ErrInvalidFileType() *errx.Error {
	return ErrRegistry.New(CodeInvalidFileType)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrStorageError(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeStorageError, cause)
}

func ErrQueueError(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeQueueError, cause)
}
