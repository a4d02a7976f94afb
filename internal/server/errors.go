package server

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInvalidCSV     = "INVALID_CSV"
	CodeInternalError  = "INTERNAL_ERROR"
	CodeUnknownError   = "UNKNOWN_ERROR"
)

var (
	// ErrInvalidReq is returned when a request body or query cannot be used.
	ErrInvalidReq = NewError(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrInvalidCSV is returned when the submitted text is malformed.
	ErrInvalidCSV = NewError(fiber.StatusBadRequest, CodeInvalidCSV, "the submitted text is not valid delimited data")

	ErrNotFound      = NewError(fiber.StatusNotFound, CodeNotFound, "resource not found")
	ErrInternalError = NewError(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

// Violation is one failed field check.
type Violation struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

// Error is an API error rendered as {code, message[, violations]}.
// The package-level values are shared: Msg and WithViolations copy the
// receiver and never modify it.
type Error struct {
	StatusCode int
	Code       string
	Message    string
	Violations []Violation
}

func NewError(statusCode int, code, message string) *Error {
	return &Error{StatusCode: statusCode, Code: code, Message: message}
}

func (e *Error) Msg(format string, parts ...any) *Error {
	c := *e
	c.Message = fmt.Sprintf(format, parts...)
	return &c
}

func (e *Error) WithViolations(v []Violation) *Error {
	c := *e
	c.Violations = v
	return &c
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func handleError(ctx *fiber.Ctx, e *Error) error {
	log.Warn().
		Err(e).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Msg(e.Message)

	body := fiber.Map{
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Violations) > 0 {
		body["violations"] = e.Violations
	}
	return ctx.Status(e.StatusCode).JSON(body)
}

// ErrorHandler renders every error returned from a handler as JSON.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return handleError(ctx, e)
	}

	re := *ErrInternalError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		re.StatusCode = fe.Code
		re.Code = CodeUnknownError
		re.Message = fe.Message
		if fe.Code == fiber.StatusNotFound {
			re.Code = CodeNotFound
		}
	}

	if re.StatusCode >= fiber.StatusInternalServerError {
		log.Error().
			Stack().
			Err(err).
			Str("method", ctx.Method()).
			Str("path", ctx.Path()).
			Int("status", re.StatusCode).
			Msg("Internal Server Error")
	}
	return handleError(ctx, &re)
}
