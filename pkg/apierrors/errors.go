// Package apierrors maps service failures onto HTTP responses. Bodies follow
// the {"detail": ...} shape existing clients of the paper API already parse.
package apierrors

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeNotFound            ErrorType = "NOT_FOUND"
	ErrorTypeMethodNotAllowed    ErrorType = "METHOD_NOT_ALLOWED"
	ErrorTypeValidation          ErrorType = "VALIDATION_ERROR"
	ErrorTypeInternalServerError ErrorType = "INTERNAL_SERVER_ERROR"
)

// Report validation failures under the JSON field names clients send.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(sf reflect.StructField) string {
			name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return sf.Name
			}
			return name
		})
	}
}

// FieldError describes one rejected part of a request body.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// CustomError represents an API error with its HTTP status code and type.
type CustomError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Fields     []FieldError
	Internal   error
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, strings.Join(f.Loc, ".")+": "+f.Msg)
		}
		return e.Message + ": " + strings.Join(parts, "; ")
	}
	return e.Message
}

func (e *CustomError) Unwrap() error { return e.Internal }

func newError(errType ErrorType, message string, statusCode int, internal error) *CustomError {
	return &CustomError{
		Type:       errType,
		Message:    message,
		StatusCode: statusCode,
		Internal:   internal,
	}
}

// NewNotFound creates a 404 error with a fixed human-readable message.
func NewNotFound(message string) *CustomError {
	return newError(ErrorTypeNotFound, message, http.StatusNotFound, nil)
}

func NewMethodNotAllowed() *CustomError {
	return newError(ErrorTypeMethodNotAllowed, "Method Not Allowed", http.StatusMethodNotAllowed, nil)
}

// NewValidation creates a 422 error listing the offending fields.
func NewValidation(fields ...FieldError) *CustomError {
	e := newError(ErrorTypeValidation, "Validation error", http.StatusUnprocessableEntity, nil)
	e.Fields = fields
	return e
}

// New500 creates a new internal server error
func New500(internal error) *CustomError {
	return newError(ErrorTypeInternalServerError, "Internal Server Error", http.StatusInternalServerError, internal)
}

// FromBindError turns a gin JSON binding failure into a 422 error.
func FromBindError(err error) *CustomError {
	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &verrs):
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldFromValidator(fe))
		}
		return withInternal(NewValidation(fields...), err)
	case errors.As(err, &typeErr):
		loc := []string{"body"}
		if typeErr.Field != "" {
			loc = append(loc, strings.Split(typeErr.Field, ".")...)
		}
		return withInternal(NewValidation(FieldError{
			Loc:  loc,
			Msg:  "Input should be a valid " + typeErr.Type.String(),
			Type: typeErr.Type.Kind().String() + "_type",
		}), err)
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return withInternal(NewValidation(FieldError{
			Loc:  []string{"body"},
			Msg:  "JSON decode error",
			Type: "json_invalid",
		}), err)
	case errors.Is(err, io.EOF):
		return withInternal(NewValidation(FieldError{
			Loc:  []string{"body"},
			Msg:  "Field required",
			Type: "missing",
		}), err)
	}
	return withInternal(NewValidation(FieldError{
		Loc:  []string{"body"},
		Msg:  err.Error(),
		Type: "value_error",
	}), err)
}

func withInternal(e *CustomError, internal error) *CustomError {
	e.Internal = internal
	return e
}

func fieldFromValidator(fe validator.FieldError) FieldError {
	loc := []string{"body", fe.Field()}
	switch fe.Tag() {
	case "required":
		return FieldError{Loc: loc, Msg: "Field required", Type: "missing"}
	}
	return FieldError{Loc: loc, Msg: "Failed on the '" + fe.Tag() + "' rule", Type: "value_error"}
}

// HandleError writes err as a JSON response. Errors that are not a
// *CustomError become 500s and are logged with the request logger.
func HandleError(c *gin.Context, err error) {
	var customErr *CustomError
	if !errors.As(err, &customErr) {
		customErr = New500(err)
	}

	if customErr.Type == ErrorTypeInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().
			Err(customErr.Internal).
			Str("url", c.Request.URL.String()).
			Msg("Internal Server Error")
	}

	if customErr.Type == ErrorTypeValidation {
		c.AbortWithStatusJSON(customErr.StatusCode, gin.H{"detail": customErr.Fields})
		return
	}
	c.AbortWithStatusJSON(customErr.StatusCode, gin.H{"detail": customErr.Message})
}
