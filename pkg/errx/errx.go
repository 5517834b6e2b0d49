// Package errx provides registry-based application errors. Each domain owns a
// registry keyed by a short prefix; handlers translate *Error into HTTP
// responses without inspecting domain internals.
package errx

import (
	"fmt"
	"net/http"
)

// Type classifies an error for logging and transport mapping.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeExternal      Type = "EXTERNAL"
	TypeInternal      Type = "INTERNAL"
)

// Error is the canonical application error. It carries a stable code, a
// transport status and optional structured details.
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// WithDetail returns a copy of the error carrying an extra detail entry.
func (e *Error) WithDetail(key string, value any) *Error {
	clone := *e
	clone.Details = make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		clone.Details[k] = v
	}
	clone.Details[key] = value
	return &clone
}

// WithDetails returns a copy of the error with all entries merged in.
func (e *Error) WithDetails(details map[string]any) *Error {
	clone := *e
	clone.Details = make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		clone.Details[k] = v
	}
	for k, v := range details {
		clone.Details[k] = v
	}
	return &clone
}

// HTTPResponse is the wire shape written for failed requests.
type HTTPResponse struct {
	Error struct {
		Code    string         `json:"code"`
		Type    Type           `json:"type"`
		Message string         `json:"message"`
		Details map[string]any `json:"details,omitempty"`
	} `json:"error"`
}

func (e *Error) ToHTTPResponse() HTTPResponse {
	var resp HTTPResponse
	resp.Error.Code = e.Code
	resp.Error.Type = e.Type
	resp.Error.Message = e.Message
	resp.Error.Details = e.Details
	return resp
}

type definition struct {
	errType    Type
	httpStatus int
	message    string
}

// Registry holds the error definitions of one domain. Codes are namespaced by
// the registry prefix, e.g. "JOB_NOT_FOUND".
type Registry struct {
	prefix      string
	definitions map[string]definition
}

func NewRegistry(prefix string) *Registry {
	return &Registry{prefix: prefix, definitions: make(map[string]definition)}
}

// Register declares a code and returns it, so domains can keep the code in a
// package-level var. Registering is done once at package init.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) string {
	r.definitions[code] = definition{errType: t, httpStatus: httpStatus, message: message}
	return code
}

// New instantiates a registered error. Unknown codes yield a generic internal
// error rather than a panic.
func (r *Registry) New(code string) *Error {
	def, ok := r.definitions[code]
	if !ok {
		return &Error{
			Code:       r.prefix + "_UNKNOWN",
			Type:       TypeInternal,
			Message:    fmt.Sprintf("unregistered error code %q", code),
			HTTPStatus: http.StatusInternalServerError,
		}
	}
	return &Error{
		Code:       r.prefix + "_" + code,
		Type:       def.errType,
		Message:    def.message,
		HTTPStatus: def.httpStatus,
	}
}

// NewWithCause instantiates a registered error wrapping an underlying cause.
func (r *Registry) NewWithCause(code string, cause error) *Error {
	e := r.New(code)
	e.Cause = cause
	return e
}

var statusByType = map[Type]int{
	TypeValidation:    http.StatusBadRequest,
	TypeNotFound:      http.StatusNotFound,
	TypeConflict:      http.StatusConflict,
	TypeAuthorization: http.StatusForbidden,
	TypeBusiness:      http.StatusUnprocessableEntity,
	TypeExternal:      http.StatusBadGateway,
	TypeInternal:      http.StatusInternalServerError,
}

// Wrap adapts an arbitrary error into an *Error of the given type. Used at
// boundaries where no registry applies.
func Wrap(err error, message string, t Type) *Error {
	return &Error{
		Code:       string(t),
		Type:       t,
		Message:    message,
		HTTPStatus: statusByType[t],
		Cause:      err,
	}
}
