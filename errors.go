package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"paytracker/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type errorKind int

const (
	errValidation errorKind = iota
	errInvalidToken
	errBadCredentials
	errExistentUser
	errNotFound
	errInvalidEnum
	errInternal
)

// kindStatus is the single mapping from domain failure to HTTP status.
var kindStatus = map[errorKind]int{
	errValidation:     http.StatusBadRequest,
	errInvalidToken:   http.StatusUnauthorized,
	errBadCredentials: http.StatusUnauthorized,
	errExistentUser:   http.StatusConflict,
	errNotFound:       http.StatusNotFound,
	errInvalidEnum:    http.StatusBadRequest,
	errInternal:       http.StatusInternalServerError,
}

// apiError is a tagged domain failure raised at the point of detection and
// translated to an HTTP envelope only at the boundary.
type apiError struct {
	kind    errorKind
	message string
	details any
}

func (e *apiError) Error() string { return e.message }

func newError(kind errorKind, message string) *apiError {
	return &apiError{kind: kind, message: message}
}

func newErrorDetails(kind errorKind, message string, details any) *apiError {
	return &apiError{kind: kind, message: message, details: details}
}

// errorBody builds the uniform {timestamp, status, error, message[, details]}
// envelope.
func errorBody(status int, message string, details any) gin.H {
	body := gin.H{
		"timestamp": time.Now().Format(time.RFC3339),
		"status":    status,
		"error":     http.StatusText(status),
		"message":   message,
	}
	if details != nil {
		body["details"] = details
	}
	return body
}

// writeError converts any error into its HTTP envelope. Unknown errors leak
// nothing and become a generic 500.
func writeError(c *gin.Context, err error) {
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		c.JSON(http.StatusInternalServerError, errorBody(http.StatusInternalServerError, "Internal server error", nil))
		return
	}
	status := kindStatus[apiErr.kind]
	c.JSON(status, errorBody(status, apiErr.message, apiErr.details))
}

// writeBindingError maps a request-body decode failure to the right 400:
// enum values get the accepted list, validator failures get a field->message
// map, anything else is a malformed body.
func writeBindingError(c *gin.Context, err error) {
	var invType *models.InvalidTypeError
	if errors.As(err, &invType) {
		writeError(c, newErrorDetails(errInvalidEnum, "Invalid transaction type!", "Accepted values: "+models.AcceptedValues()))
		return
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[jsonFieldName(fe.Field())] = validationMessage(fe)
		}
		writeError(c, newErrorDetails(errValidation, "Validation error", details))
		return
	}
	writeError(c, newError(errValidation, "Wrong request!"))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}

// jsonFieldName lowercases the leading rune so details keys match the JSON
// body rather than the Go struct.
func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
