package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

type HandlerError struct {
	Status int    `json:"status,omitempty"` // HTTP status code applicable to the error
	Title  string `json:"title,omitempty"`  // A summary of the problem
	Detail string `json:"detail,omitempty"` // An explanation specific to the problem
}

type ErrorResponse struct {
	Errors []HandlerError `json:"errors"`
}

func (er HandlerError) Error() string {
	return fmt.Sprintf("code=%d, title=%v, detail=%v", er.Status, er.Title, er.Detail)
}

func (er ErrorResponse) Error() string {
	var msg string
	for _, err := range er.Errors {
		msg += fmt.Sprintf("error: %s \n", err.Error())
	}
	return msg
}

func NewErrorResponse(code int, title string, detail string) ErrorResponse {
	return ErrorResponse{Errors: []HandlerError{
		{
			Status: code,
			Title:  title,
			Detail: detail,
		}},
	}
}

// NewErrorResponseFromError builds one HandlerError per error, deriving the
// status from the error type. Nil entries become empty HandlerErrors.
func NewErrorResponseFromError(title string, errs ...error) ErrorResponse {
	if len(errs) == 0 {
		return ErrorResponse{}
	}
	handlerErrors := make([]HandlerError, len(errs))
	for i, err := range errs {
		if err == nil {
			continue
		}
		handlerErrors[i] = HandlerError{
			Status: HttpCodeForError(err),
			Title:  title,
			Detail: err.Error(),
		}
	}
	return ErrorResponse{Errors: handlerErrors}
}

// NewErrorResponseFromEchoError creates a new ErrorResponse instance from an echo.HTTPError instance
func NewErrorResponseFromEchoError(echoErr *echo.HTTPError) ErrorResponse {
	var detail string
	if m, ok := echoErr.Message.(string); ok {
		detail = m
	} else {
		detail = echoErr.Error()
	}
	return NewErrorResponse(echoErr.Code, "", detail)
}

// HttpCodeForError maps dao and configuration errors to a status code,
// anything else is an internal error.
func HttpCodeForError(err error) int {
	var daoError *DaoError
	switch {
	case errors.As(err, &daoError):
		switch {
		case daoError.NotFound:
			return http.StatusNotFound
		case daoError.BadValidation:
			return http.StatusBadRequest
		case daoError.Conflict:
			return http.StatusConflict
		}
		return http.StatusInternalServerError
	case errors.Is(err, ErrConfigIncomplete):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetGeneralResponseCode returns the most common error code class in response
func GetGeneralResponseCode(response ErrorResponse) int {
	if len(response.Errors) == 0 {
		return http.StatusOK
	}
	if len(response.Errors) == 1 {
		return response.Errors[0].Status
	}

	highest := 0
	for _, err := range response.Errors {
		class := err.Status / 100
		if err.Status == 0 {
			class = 2
		}
		if class < 1 || class > 5 {
			class = 5
		}
		if class > highest {
			highest = class
		}
	}
	return highest * 100
}
